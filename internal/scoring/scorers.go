package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/trendcast/internal/embedding"
	"github.com/spacesedan/trendcast/internal/features"
	"github.com/spacesedan/trendcast/internal/ml"
	"github.com/spacesedan/trendcast/internal/models"
)

// TextScorer scores the combined video text through its sentence embedding.
type TextScorer struct {
	Embedder   embedding.Embedder
	Scaler     ml.Scaler
	Classifier ml.Classifier
}

func (s *TextScorer) Score(ctx context.Context, combined string) (float64, error) {
	emb, err := s.Embedder.Embed(ctx, combined)
	if err != nil {
		return 0, fmt.Errorf("embed text: %w", err)
	}
	if want := s.Scaler.NumFeatures(); len(emb) != want {
		return 0, &ml.DimensionError{Component: "Text", Got: len(emb), Want: want}
	}
	if err := checkFinite("embedding", emb); err != nil {
		return 0, err
	}
	scaled, err := s.Scaler.Transform(emb)
	if err != nil {
		return 0, err
	}
	return s.Classifier.PredictPositiveProbability(scaled)
}

// TabularScorer scores channel and video statistics with the calibrated forest.
type TabularScorer struct {
	Encoder    ml.Encoder
	Classifier ml.Classifier
	Clips      features.ClipValues
}

// Vector builds one-hot categorical columns followed by the numeric features.
func (s *TabularScorer) Vector(ctx context.Context, in models.VideoInput) ([]float64, error) {
	onehot, fallbacks, err := s.Encoder.Encode(features.CategoricalValues(in))
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}
	for _, fb := range fallbacks {
		slog.DebugContext(ctx, "[TabularScorer] Unknown category, using encoder fallback",
			slog.String("feature", fb.Feature),
			slog.String("value", fb.Value))
	}

	numeric := features.TabularNumeric(in, s.Clips)
	if err := checkFinite("tabular features", numeric); err != nil {
		return nil, err
	}
	return append(onehot, numeric...), nil
}

func (s *TabularScorer) Score(ctx context.Context, in models.VideoInput) (float64, error) {
	x, err := s.Vector(ctx, in)
	if err != nil {
		return 0, err
	}
	if want := s.Classifier.NumFeatures(); len(x) != want {
		return 0, &ml.DimensionError{Component: "RF", Got: len(x), Want: want}
	}
	return s.Classifier.PredictPositiveProbability(x)
}

// PsychScorer scores the lexical attention cues of the title and description.
type PsychScorer struct {
	Scaler     ml.Scaler
	Classifier ml.Classifier
}

func (s *PsychScorer) Score(combined, title, description string) (float64, error) {
	x := features.ExtractPsych(combined, title, description).Vector()
	if err := checkFinite("psych features", x); err != nil {
		return 0, err
	}
	scaled, err := s.Scaler.Transform(x)
	if err != nil {
		return 0, err
	}
	return s.Classifier.PredictPositiveProbability(scaled)
}

// MetaCombiner stacks the three base probabilities into the final one.
type MetaCombiner struct {
	Classifier ml.Classifier
}

func (m *MetaCombiner) Combine(textProb, rfProb, psychProb float64) (float64, error) {
	return m.Classifier.PredictPositiveProbability(features.MetaVector(textProb, rfProb, psychProb))
}
