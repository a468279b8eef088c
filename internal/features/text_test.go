package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation and case", "BREAKING: Record Viral Moment!", "breaking record viral moment"},
		{"whitespace runs", "  a\t\tb \n\n c  ", "a b c"},
		{"ascii separators", "a\x1cb\x1fc\x1d\x1ed", "a b c d"},
		{"unicode separators", "a\u00a0b\u2028c\u0085d", "a b c d"},
		{"underscore kept", "snake_case #tag", "snake_case tag"},
		{"unicode letters kept", "Café ÜBER naïve", "café über naïve"},
		{"combining marks dropped", "नमस्ते दुनिया!", "नमसत दनय"},
		{"digits kept", "Top 10 (2024)", "top 10 2024"},
		{"only symbols", "!!! ??? ...", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestCleanTextIsIdempotent(t *testing.T) {
	once := CleanText("Hello, World!  It's LIVE")
	assert.Equal(t, once, CleanText(once))
}

func TestCombinedText(t *testing.T) {
	got := CombinedText("NewsCo", "BREAKING: Record!", "official report", "")
	assert.Equal(t, "newsco breaking record official report", got)
}

func TestHasAnyWholeWordsOnly(t *testing.T) {
	assert.Equal(t, 1.0, HasAny("watch live now", URGENCY_WORDS))
	assert.Equal(t, 0.0, HasAny("fast delivery service", URGENCY_WORDS))
	assert.Equal(t, 0.0, HasAny("nowhere to go", URGENCY_WORDS))
	assert.Equal(t, 0.0, HasAny("live_stream", URGENCY_WORDS))
	assert.Equal(t, 0.0, HasAny("live2", URGENCY_WORDS))
	assert.Equal(t, 1.0, HasAny("the trend", HYPE_WORDS))
	assert.Equal(t, 0.0, HasAny("trendy outfit", HYPE_WORDS))
	assert.Equal(t, 1.0, HasAny("live", URGENCY_WORDS))
	assert.Equal(t, 0.0, HasAny("", EMOTION_WORDS))
}

func TestHasAnyUnicodeBoundaries(t *testing.T) {
	// é is a letter, so "liveé" is one word.
	assert.Equal(t, 0.0, HasAny("liveé", URGENCY_WORDS))
	assert.Equal(t, 1.0, HasAny("café live", URGENCY_WORDS))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"a", "b_c", "d1"}, Words("a, b_c! d1"))
	assert.Empty(t, Words("  ... "))
}
