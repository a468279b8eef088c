// Package artifacts loads the trained parameter sets the scoring pipeline runs on and
// checks, once at startup, that they agree with each other and with the feature
// builders. A Bundle is never modified after Load returns.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/spacesedan/trendcast/internal/features"
	"github.com/spacesedan/trendcast/internal/ml"
	"github.com/spacesedan/trendcast/internal/models"
)

var ErrContractViolation = errors.New("artifact contract violation")

type Bundle struct {
	Manifest Manifest

	TextScaler     ml.Scaler
	TextClassifier ml.Classifier

	Encoder           ml.Encoder
	TabularClassifier ml.Classifier

	PsychScaler     ml.Scaler
	PsychClassifier ml.Classifier

	MetaClassifier ml.Classifier

	Clips features.ClipValues
}

type validator interface {
	Validate() error
}

func loadJSON(dir, file string, v validator) error {
	if file == "" {
		return fmt.Errorf("%w: no file configured", ml.ErrInvalidArtifact)
	}
	path := filepath.Join(dir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

type clipFile struct {
	features.ClipValues
}

func (c *clipFile) Validate() error {
	for _, clip := range []struct {
		name  string
		value float64
	}{{"vpv_clip", c.VPVClip}, {"spv_clip", c.SPVClip}} {
		if math.IsNaN(clip.value) || math.IsInf(clip.value, 0) || clip.value <= 0 {
			return fmt.Errorf("%w: %s must be a positive finite number, got %v", ml.ErrInvalidArtifact, clip.name, clip.value)
		}
	}
	return nil
}

// Load reads every artifact named by dir's manifest and validates the whole set.
func Load(dir string) (*Bundle, error) {
	m, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	textScaler := &ml.StandardScaler{Name: "text_scaler"}
	textLR := &ml.LogisticRegression{Name: "text_classifier"}
	encoder := &ml.OneHotEncoder{Name: "ohe"}
	rf := &ml.CalibratedClassifier{Name: "rf_calibrated"}
	psychScaler := &ml.StandardScaler{Name: "psych_scaler"}
	psychLR := &ml.LogisticRegression{Name: "psych_classifier"}
	metaLR := &ml.LogisticRegression{Name: "meta_classifier"}
	clips := &clipFile{}

	files := []struct {
		file string
		into validator
	}{
		{m.Text.Scaler, textScaler},
		{m.Text.Classifier, textLR},
		{m.Tabular.Encoder, encoder},
		{m.Tabular.Classifier, rf},
		{m.Psych.Scaler, psychScaler},
		{m.Psych.Classifier, psychLR},
		{m.Meta.Classifier, metaLR},
		{m.ClipValues, clips},
	}
	for _, f := range files {
		if err := loadJSON(dir, f.file, f.into); err != nil {
			return nil, fmt.Errorf("load artifacts: %w", err)
		}
	}

	if !slices.Equal(encoder.Features, m.Tabular.CategoricalFeatures) {
		return nil, fmt.Errorf("%w: encoder columns %v, manifest declares %v",
			ErrContractViolation, encoder.Features, m.Tabular.CategoricalFeatures)
	}

	b := &Bundle{
		Manifest:          m,
		TextScaler:        textScaler,
		TextClassifier:    textLR,
		Encoder:           encoder,
		TabularClassifier: rf,
		PsychScaler:       psychScaler,
		PsychClassifier:   psychLR,
		MetaClassifier:    metaLR,
		Clips:             clips.ClipValues,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	slog.Info("[Artifacts] Loaded model artifacts",
		slog.String("dir", dir),
		slog.Int("text_features", textScaler.NumFeatures()),
		slog.Int("rf_features", rf.NumFeatures()),
		slog.Int("psych_features", psychScaler.NumFeatures()),
		slog.Int("meta_features", metaLR.NumFeatures()),
		slog.Float64("vpv_clip", clips.VPVClip),
		slog.Float64("spv_clip", clips.SPVClip))
	return b, nil
}

// Validate checks every width contract between artifacts and feature builders. All
// violations are reported together.
func (b *Bundle) Validate() error {
	var errs []error
	if b.TextScaler == nil || b.TextClassifier == nil || b.Encoder == nil || b.TabularClassifier == nil ||
		b.PsychScaler == nil || b.PsychClassifier == nil || b.MetaClassifier == nil {
		return fmt.Errorf("%w: bundle is missing an artifact", ErrContractViolation)
	}
	mismatch := func(what string, got, want int) {
		if got != want {
			errs = append(errs, fmt.Errorf("%w: %s is %d, expected %d", ErrContractViolation, what, got, want))
		}
	}

	if err := b.Manifest.CheckFeatureOrder(); err != nil {
		errs = append(errs, err)
	}
	mismatch("text classifier width", b.TextClassifier.NumFeatures(), b.TextScaler.NumFeatures())
	mismatch("encoder inputs", b.Encoder.NumInputs(), len(features.CategoricalFeatureNames))
	mismatch("tabular classifier width", b.TabularClassifier.NumFeatures(), b.Encoder.NumOutputs()+features.TABULAR_NUMERIC_COUNT)
	mismatch("psych scaler width", b.PsychScaler.NumFeatures(), features.PSYCH_FEATURE_COUNT)
	mismatch("psych classifier width", b.PsychClassifier.NumFeatures(), features.PSYCH_FEATURE_COUNT)
	mismatch("meta classifier width", b.MetaClassifier.NumFeatures(), features.META_FEATURE_COUNT)
	if b.Clips.VPVClip <= 0 || b.Clips.SPVClip <= 0 {
		errs = append(errs, fmt.Errorf("%w: clip values must be positive", ErrContractViolation))
	}
	return errors.Join(errs...)
}

// Info reports the input width each stage expects.
func (b *Bundle) Info() models.ModelInfo {
	return models.ModelInfo{
		TextFeatures:  b.TextScaler.NumFeatures(),
		RFFeatures:    b.TabularClassifier.NumFeatures(),
		PsychFeatures: b.PsychScaler.NumFeatures(),
		MetaFeatures:  b.MetaClassifier.NumFeatures(),
	}
}
