package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spacesedan/trendcast/internal/ingest"
	"github.com/spf13/cobra"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var country string
	var batchSize int

	cmd := &cobra.Command{
		Use:   "ingest <dir|file>...",
		Short: "Load trending-list CSV exports into the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			loader := &ingest.Loader{Store: store, BatchSize: batchSize}
			loaded := map[string]int64{}
			for _, path := range args {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				if info.IsDir() {
					counts, err := loader.LoadDir(cmd.Context(), path)
					for c, n := range counts {
						loaded[c] += n
					}
					if err != nil {
						return err
					}
					continue
				}

				code := strings.ToUpper(strings.TrimSpace(country))
				if code == "" {
					var ok bool
					if code, ok = ingest.CountryFromFilename(path); !ok {
						return fmt.Errorf("cannot infer country from %q, pass --country", path)
					}
				}
				n, err := loader.LoadFile(cmd.Context(), path, code)
				loaded[code] += n
				if err != nil {
					return err
				}
			}

			countries := make([]string, 0, len(loaded))
			for c := range loaded {
				countries = append(countries, c)
			}
			sort.Strings(countries)
			rows := make([][]string, 0, len(countries))
			for _, c := range countries {
				rows = append(rows, []string{c, strconv.FormatInt(loaded[c], 10)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Country", "Rows"}, rows, 1))
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country code for single-file loads when the file name is not recognised")
	cmd.Flags().IntVar(&batchSize, "batch-size", ingest.DEFAULT_BATCH_SIZE, "Rows per insert batch")
	return cmd
}
