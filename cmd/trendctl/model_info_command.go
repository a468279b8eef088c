package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newModelInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "model-info",
		Short: "Validate the artifact directory and show each stage's input width",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := ctx.bundle()
			if err != nil {
				return err
			}
			info := bundle.Info()
			m := bundle.Manifest

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Stage", "Artifact", "Features"},
				[][]string{
					{"text", m.Text.Classifier, strconv.Itoa(info.TextFeatures)},
					{"tabular", m.Tabular.Classifier, strconv.Itoa(info.RFFeatures)},
					{"psychology", m.Psych.Classifier, strconv.Itoa(info.PsychFeatures)},
					{"meta", m.Meta.Classifier, strconv.Itoa(info.MetaFeatures)},
				},
				2,
			))
			return nil
		},
	}
}
