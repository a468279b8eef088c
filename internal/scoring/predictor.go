package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/trendcast/internal/artifacts"
	"github.com/spacesedan/trendcast/internal/embedding"
	"github.com/spacesedan/trendcast/internal/features"
	"github.com/spacesedan/trendcast/internal/logging"
	"github.com/spacesedan/trendcast/internal/models"
)

// Predictor runs the stacked pipeline for one video at a time. It holds only
// read-only state and is safe for concurrent use.
type Predictor struct {
	text    *TextScorer
	tabular *TabularScorer
	psych   *PsychScorer
	meta    *MetaCombiner
	info    models.ModelInfo
}

// NewPredictor wires the scorers to a validated artifact bundle.
func NewPredictor(bundle *artifacts.Bundle, embedder embedding.Embedder) (*Predictor, error) {
	if bundle == nil || embedder == nil {
		return nil, fmt.Errorf("predictor needs both artifacts and an embedder")
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &Predictor{
		text: &TextScorer{
			Embedder:   embedder,
			Scaler:     bundle.TextScaler,
			Classifier: bundle.TextClassifier,
		},
		tabular: &TabularScorer{
			Encoder:    bundle.Encoder,
			Classifier: bundle.TabularClassifier,
			Clips:      bundle.Clips,
		},
		psych: &PsychScorer{
			Scaler:     bundle.PsychScaler,
			Classifier: bundle.PsychClassifier,
		},
		meta: &MetaCombiner{Classifier: bundle.MetaClassifier},
		info: bundle.Info(),
	}, nil
}

func (p *Predictor) ModelInfo() models.ModelInfo {
	return p.info
}

const WARMUP_TEXT = "youtube trending predictor warmup"

// CheckEmbedder embeds WARMUP_TEXT once and compares the vector width with the text
// scaler, so a model that disagrees with the artifacts is caught before serving.
func (p *Predictor) CheckEmbedder(ctx context.Context) error {
	emb, err := p.text.Embedder.Embed(ctx, features.CleanText(WARMUP_TEXT))
	if err != nil {
		return fmt.Errorf("warm up embedder %s: %w", p.text.Embedder.ModelID(), err)
	}
	if want := p.text.Scaler.NumFeatures(); len(emb) != want {
		return fmt.Errorf("%w: embedder %s returns %d values, text scaler expects %d",
			artifacts.ErrContractViolation, p.text.Embedder.ModelID(), len(emb), want)
	}
	slog.Info("[Predictor] Embedder matches text artifacts",
		slog.String("model", p.text.Embedder.ModelID()),
		slog.Int("dim", len(emb)))
	return nil
}

// ValidateInput rejects inputs no stage can score.
func ValidateInput(in models.VideoInput) error {
	for _, f := range []struct {
		name  string
		value int64
	}{
		{"subs", in.Subs},
		{"views", in.Views},
		{"vids", in.Vids},
		{"duration", in.Duration},
	} {
		if f.value < 0 {
			return invalidRequest("%s must not be negative, got %d", f.name, f.value)
		}
	}
	return nil
}

// Predict scores in. Every failure, including a panic inside a stage, comes back as a
// *PipelineError and no partial result is returned.
func (p *Predictor) Predict(ctx context.Context, in models.VideoInput) (result models.PredictionResult, err error) {
	start := time.Now()
	stage := STAGE_INPUT
	logger := slog.Default().With(slog.String("request_id", logging.RequestID(ctx)))

	defer func() {
		if r := recover(); r != nil {
			result = models.PredictionResult{}
			err = &PipelineError{Kind: KIND_UNCLASSIFIED, Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			pe := err.(*PipelineError)
			logger.WarnContext(ctx, "[Predictor] Prediction failed",
				slog.String("kind", string(pe.Kind)),
				slog.String("stage", pe.Stage),
				slog.String("error", pe.Err.Error()),
				slog.Duration("elapsed", time.Since(start)))
			return
		}
		logger.InfoContext(ctx, "[Predictor] Prediction complete",
			slog.Float64("text_score", result.ModelBreakdown.TextScore),
			slog.Float64("numeric_score", result.ModelBreakdown.NumericScore),
			slog.Float64("psychology_score", result.ModelBreakdown.PsychologyScore),
			slog.Float64("trending_probability", result.TrendingProbability),
			slog.String("bucket", result.ConfidenceBucket),
			slog.Duration("elapsed", time.Since(start)))
	}()

	if verr := ValidateInput(in); verr != nil {
		return models.PredictionResult{}, classify(stage, verr)
	}
	combined := features.CombinedText(in.ChannelTitle, in.VideoTitle, in.VideoDescription, in.VideoTags)

	stage = STAGE_TEXT
	textProb, serr := p.text.Score(ctx, combined)
	if serr = orProbability("text probability", textProb, serr); serr != nil {
		return models.PredictionResult{}, classify(stage, serr)
	}

	stage = STAGE_TABULAR
	rfProb, serr := p.tabular.Score(ctx, in)
	if serr = orProbability("rf probability", rfProb, serr); serr != nil {
		return models.PredictionResult{}, classify(stage, serr)
	}

	stage = STAGE_PSYCHOLOGY
	psychProb, serr := p.psych.Score(combined, in.VideoTitle, in.VideoDescription)
	if serr = orProbability("psych probability", psychProb, serr); serr != nil {
		return models.PredictionResult{}, classify(stage, serr)
	}

	stage = STAGE_META
	final, serr := p.meta.Combine(textProb, rfProb, psychProb)
	if serr = orProbability("trending probability", final, serr); serr != nil {
		return models.PredictionResult{}, classify(stage, serr)
	}

	return models.PredictionResult{
		TrendingProbability: final,
		ConfidenceBucket:    Bucket(final),
		ModelBreakdown: models.ScoreBreakdown{
			TextScore:       textProb,
			NumericScore:    rfProb,
			PsychologyScore: psychProb,
		},
	}, nil
}

func orProbability(what string, p float64, err error) error {
	if err != nil {
		return err
	}
	return checkProbability(what, p)
}
