package features

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Vocabulary is a fixed set of single lower-case words matched as whole words.
type Vocabulary map[string]struct{}

func NewVocabulary(words ...string) Vocabulary {
	v := make(Vocabulary, len(words))
	for _, w := range words {
		v[w] = struct{}{}
	}
	return v
}

func (v Vocabulary) Contains(word string) bool {
	_, ok := v[word]
	return ok
}

var (
	URGENCY_WORDS  = NewVocabulary("breaking", "update", "latest", "alert", "warning", "today", "now", "live", "urgent")
	HYPE_WORDS     = NewVocabulary("viral", "trending", "trend", "massive", "huge", "record", "thriller")
	OFFICIAL_WORDS = NewVocabulary("official", "announced", "released", "statement", "report", "confirms", "results")
	EMOTION_WORDS  = NewVocabulary("emotional", "sad", "angry", "happy", "proud", "fear", "panic", "shocking")
)

// lower returns the full Unicode lower-case mapping of s. Casers keep state, so a new
// one is built per call rather than shared between requests.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// isWordRune reports whether r belongs to a word: letters, numbers and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isSpace extends unicode.IsSpace with the ASCII file, group, record and unit
// separators, which also separate words in the training-time tokenizer.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (0x1c <= r && r <= 0x1f)
}

// CleanText lower-cases text, drops everything that is neither a word rune nor
// whitespace, and collapses whitespace runs into single spaces.
func CleanText(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if isWordRune(r) || isSpace(r) {
			return r
		}
		return -1
	}, lower(text))
	return strings.Join(strings.FieldsFunc(stripped, isSpace), " ")
}

// CombinedText is the cleaned channel title, title, description and tags joined in
// that order. Both the text and psychology scorers read it.
func CombinedText(channelTitle, title, description, tags string) string {
	return CleanText(channelTitle + " " + title + " " + description + " " + tags)
}

// Words splits text into maximal runs of word runes.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) })
}

// HasAny returns 1 when any vocabulary word appears in text as a standalone word.
// A vocabulary word inside a longer word ("live" in "delivery") does not count.
func HasAny(text string, vocab Vocabulary) float64 {
	for _, w := range Words(text) {
		if vocab.Contains(w) {
			return 1
		}
	}
	return 0
}
