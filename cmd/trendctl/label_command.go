package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spacesedan/trendcast/internal/labeling"
	"github.com/spf13/cobra"
)

func newLabelCommand(ctx *commandContext) *cobra.Command {
	cfg := labeling.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "label",
		Short: "Recompute will_trend for every stored video",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			cfg.BaseCountry = strings.ToUpper(strings.TrimSpace(cfg.BaseCountry))
			job := &labeling.Job{Store: store, Config: cfg}
			thresholds, err := job.Run(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(thresholds))
			for _, th := range thresholds {
				rows = append(rows, []string{
					th.Country,
					strconv.FormatFloat(th.ViewsMin, 'f', 0, 64),
					strconv.FormatFloat(th.LikesMin, 'f', 1, 64),
					strconv.FormatFloat(th.CommentsMin, 'f', 1, 64),
					fmt.Sprintf("%d / %d", th.PositiveRows, th.Videos),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Country", "Views ≥", "Likes ≥", "Comments ≥", "Trending"},
				rows,
				1,
			))

			total, positive, err := store.CountLabeled(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored labels: %d videos, %d trending\n", total, positive)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.BaseCountry, "base-country", labeling.DEFAULT_BASE_COUNTRY, "Country whose median views map to --base-views")
	cmd.Flags().Float64Var(&cfg.BaseViews, "base-views", labeling.DEFAULT_BASE_VIEWS, "View threshold for the base country")
	return cmd
}
