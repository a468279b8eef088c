// Package artifactstest writes small, self-consistent artifact directories for tests.
package artifactstest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TEXT_DIM is the embedding width the default fixture is trained for.
const TEXT_DIM = 4

// Files returns the default artifact set keyed by file name. The tabular encoder knows
// categories 10, 24 and 25 and countries GB, IN and US, so the forest takes 6+8 inputs.
func Files(textDim int) map[string]any {
	ones := make([]float64, textDim)
	zeros := make([]float64, textDim)
	coef := make([]float64, textDim)
	for i := range ones {
		ones[i] = 1
		coef[i] = 0.5
	}

	return map[string]any{
		"text_scaler.json": map[string]any{
			"n_features_in": textDim,
			"mean":          zeros,
			"scale":         ones,
		},
		"text_lr.json": map[string]any{
			"n_features_in": textDim,
			"coef":          [][]float64{coef},
			"intercept":     []float64{-0.25},
			"classes":       []int{0, 1},
		},
		"ohe.json": map[string]any{
			"features":       []string{"video_category_id", "country"},
			"categories":     [][]string{{"10", "24", "25"}, {"GB", "IN", "US"}},
			"handle_unknown": "ignore",
		},
		"rf_calibrated.json": map[string]any{
			"n_features_in": 14,
			"method":        "sigmoid",
			"calibrated_classifiers": []map[string]any{{
				"forest": map[string]any{
					"n_features_in": 14,
					"trees": []map[string]any{{
						"children_left":  []int{1, -1, -1},
						"children_right": []int{2, -1, -1},
						"feature":        []int{8, -2, -2},
						"threshold":      []float64{12, -2, -2},
						"value":          [][]float64{{50, 50}, {40, 10}, {10, 40}},
					}},
				},
				"sigmoid": map[string]float64{"a": -3, "b": 1.5},
			}},
		},
		"psych_scaler.json": map[string]any{
			"n_features_in": 8,
			"mean":          []float64{0.1, 0.1, 0.2, 0.1, 0.3, 0.1, 0.2, 0.1},
			"scale":         []float64{0.3, 0.3, 0.4, 0.3, 0.5, 0.3, 0.4, 0.3},
		},
		"psych_lr.json": map[string]any{
			"n_features_in": 8,
			"coef":          [][]float64{{0.4, 0.3, 0.2, 0.1, 0.2, -0.1, 0.1, 0.3}},
			"intercept":     []float64{-0.2},
			"classes":       []int{0, 1},
		},
		"meta_lr.json": map[string]any{
			"n_features_in": 3,
			"coef":          [][]float64{{1.2, 2.5, 0.8}},
			"intercept":     []float64{-2.1},
			"classes":       []int{0, 1},
		},
		"clip_values.json": map[string]float64{
			"vpv_clip": 50000,
			"spv_clip": 2000,
		},
	}
}

// Write materialises Files(textDim) into a fresh temporary directory.
func Write(t testing.TB, textDim int) string {
	t.Helper()
	dir := t.TempDir()
	for name, v := range Files(textDim) {
		WriteFile(t, dir, name, v)
	}
	return dir
}

// WriteFile encodes v as JSON, or writes it verbatim when it is a string.
func WriteFile(t testing.TB, dir, name string, v any) {
	t.Helper()
	var data []byte
	switch raw := v.(type) {
	case string:
		data = []byte(raw)
	default:
		var err error
		data, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
