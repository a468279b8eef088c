package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spacesedan/trendcast/internal/models"
	"github.com/spacesedan/trendcast/internal/scoring"
	"github.com/spf13/cobra"
)

func newPredictCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var asTable bool

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score one video read as JSON from --input or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readVideoInput(cmd.InOrStdin(), inputPath)
			if err != nil {
				return err
			}

			bundle, err := ctx.bundle()
			if err != nil {
				return err
			}
			embedder, err := ctx.newEmbedder(ctx.settings.Embedder)
			if err != nil {
				return err
			}
			defer embedder.Close()

			predictor, err := scoring.NewPredictor(bundle, embedder)
			if err != nil {
				return err
			}

			result, err := predictor.Predict(cmd.Context(), in)
			out := cmd.OutOrStdout()
			if err != nil {
				var pe *scoring.PipelineError
				if errors.As(err, &pe) {
					_ = writeIndentedJSON(out, pe.Response())
				}
				return err
			}
			if asTable {
				fmt.Fprintln(out, renderTable(
					[]string{"Score", "Value"},
					[][]string{
						{"text_score", formatProbability(result.ModelBreakdown.TextScore)},
						{"numeric_score", formatProbability(result.ModelBreakdown.NumericScore)},
						{"psychology_score", formatProbability(result.ModelBreakdown.PsychologyScore)},
						{"trending_probability", formatProbability(result.TrendingProbability)},
						{"confidence_bucket", result.ConfidenceBucket},
					},
					1,
				))
				return nil
			}
			return writeIndentedJSON(out, result)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "VideoInput JSON file, - for stdin")
	cmd.Flags().BoolVar(&asTable, "table", false, "Render the scores as a table")
	return cmd
}

func readVideoInput(stdin io.Reader, path string) (models.VideoInput, error) {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return models.VideoInput{}, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req models.VideoInputRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return models.VideoInput{}, fmt.Errorf("decode input: %w", err)
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		return models.VideoInput{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return req.Input(), nil
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatProbability(p float64) string {
	return fmt.Sprintf("%.4f", p)
}
