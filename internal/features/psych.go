package features

import (
	"strings"
	"unicode"
)

const PSYCH_FEATURE_COUNT = 8

// PsychFeatureNames is the column order the psychology scaler was fit on.
var PsychFeatureNames = []string{
	"has_urgency",
	"has_hype",
	"has_official",
	"has_emotion",
	"has_number",
	"has_qmark",
	"has_excl",
	"overlap_ratio",
}

// PsychSignals holds the lexical and structural signals of one video.
type PsychSignals struct {
	HasUrgency   float64 `json:"has_urgency"`
	HasHype      float64 `json:"has_hype"`
	HasOfficial  float64 `json:"has_official"`
	HasEmotion   float64 `json:"has_emotion"`
	HasNumber    float64 `json:"has_number"`
	HasQMark     float64 `json:"has_qmark"`
	HasExcl      float64 `json:"has_excl"`
	OverlapRatio float64 `json:"overlap_ratio"`
}

// ExtractPsych computes the signals. combined is the cleaned combined text; title and
// description are the raw request fields.
func ExtractPsych(combined, title, description string) PsychSignals {
	return PsychSignals{
		HasUrgency:   HasAny(combined, URGENCY_WORDS),
		HasHype:      HasAny(combined, HYPE_WORDS),
		HasOfficial:  HasAny(combined, OFFICIAL_WORDS),
		HasEmotion:   HasAny(combined, EMOTION_WORDS),
		HasNumber:    indicator(strings.IndexFunc(title, unicode.IsDigit) >= 0),
		HasQMark:     indicator(strings.Contains(title, "?")),
		HasExcl:      indicator(strings.Contains(title, "!")),
		OverlapRatio: OverlapRatio(title, description),
	}
}

// Vector returns the signals in PsychFeatureNames order.
func (p PsychSignals) Vector() []float64 {
	return []float64{
		p.HasUrgency,
		p.HasHype,
		p.HasOfficial,
		p.HasEmotion,
		p.HasNumber,
		p.HasQMark,
		p.HasExcl,
		p.OverlapRatio,
	}
}

// OverlapRatio is |title words ∩ description words| / max(1, |title words|). Words come
// from lower-casing and splitting on whitespace, punctuation included.
func OverlapRatio(title, description string) float64 {
	titleWords := wordSet(title)
	if len(titleWords) == 0 {
		return 0
	}
	descWords := wordSet(description)
	shared := 0
	for w := range titleWords {
		if _, ok := descWords[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(titleWords))
}

func wordSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(lower(s), isSpace)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
