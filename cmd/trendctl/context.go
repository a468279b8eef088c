package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spacesedan/trendcast/config"
	"github.com/spacesedan/trendcast/internal/artifacts"
	"github.com/spacesedan/trendcast/internal/db"
	"github.com/spacesedan/trendcast/internal/embedding"
	"github.com/spacesedan/trendcast/internal/logging"
)

type commandContext struct {
	settings config.Settings

	artifactDir string
	driver      string
	databaseURL string
	sqlitePath  string
	logLevel    string

	newEmbedder func(config.EmbedderSettings) (embedding.Embedder, error)
}

func newCommandContext() *commandContext {
	return &commandContext{
		newEmbedder: func(s config.EmbedderSettings) (embedding.Embedder, error) {
			return embedding.NewHugotEmbedder(s)
		},
	}
}

// load reads env settings and lets non-empty flags override them. Logs go to stderr so
// command output stays machine-readable.
func (c *commandContext) load() {
	config.LoadEnv(config.AppEnv())
	c.settings = config.GetSettings()
	if c.artifactDir != "" {
		c.settings.ArtifactDir = c.artifactDir
	}
	if c.driver != "" {
		c.settings.Store.Driver = c.driver
	}
	if c.databaseURL != "" {
		c.settings.Store.DatabaseURL = c.databaseURL
	}
	if c.sqlitePath != "" {
		c.settings.Store.SQLitePath = c.sqlitePath
	}
	if c.logLevel != "" {
		c.settings.LogLevel = c.logLevel
	}
	slog.SetDefault(logging.NewLogger(os.Stderr, c.settings.LogLevel))
}

func (c *commandContext) bundle() (*artifacts.Bundle, error) {
	return artifacts.Load(c.settings.ArtifactDir)
}

func (c *commandContext) store(ctx context.Context) (db.Store, error) {
	store, err := db.Open(ctx, c.settings.Store)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
