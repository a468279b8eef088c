package main

import "github.com/spf13/cobra"

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "trendctl",
		Short:         "Score videos and prepare the trending dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ctx.artifactDir, "artifacts", "", "Model artifact directory (overrides ARTIFACT_DIR)")
	flags.StringVar(&ctx.driver, "driver", "", "Store driver: postgres or sqlite (overrides STORE_DRIVER)")
	flags.StringVar(&ctx.databaseURL, "database-url", "", "Postgres connection string (overrides DATABASE_URL)")
	flags.StringVar(&ctx.sqlitePath, "sqlite-path", "", "SQLite database file (overrides SQLITE_PATH)")
	flags.StringVar(&ctx.logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(newPredictCommand(ctx))
	rootCmd.AddCommand(newModelInfoCommand(ctx))
	rootCmd.AddCommand(newIngestCommand(ctx))
	rootCmd.AddCommand(newLabelCommand(ctx))

	return rootCmd
}
