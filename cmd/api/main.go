package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/trendcast/config"
	"github.com/spacesedan/trendcast/internal/api"
	"github.com/spacesedan/trendcast/internal/artifacts"
	"github.com/spacesedan/trendcast/internal/embedding"
	"github.com/spacesedan/trendcast/internal/logging"
	"github.com/spacesedan/trendcast/internal/scoring"
)

func main() {
	config.LoadEnv(config.AppEnv())
	settings := config.GetSettings()
	logging.InitLogger(settings.LogLevel)

	if err := run(settings); err != nil {
		slog.Error("[Main] API server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(settings config.Settings) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bundle, err := artifacts.Load(settings.ArtifactDir)
	if err != nil {
		return fmt.Errorf("load artifacts: %w", err)
	}

	embedder, err := embedding.NewHugotEmbedder(settings.Embedder)
	if err != nil {
		return fmt.Errorf("init embedder: %w", err)
	}
	defer func() {
		if err := embedder.Close(); err != nil {
			slog.Warn("[Main] Failed to close embedder", slog.String("error", err.Error()))
		}
	}()

	predictor, err := scoring.NewPredictor(bundle, embedder)
	if err != nil {
		return fmt.Errorf("init predictor: %w", err)
	}
	if err := predictor.CheckEmbedder(ctx); err != nil {
		return err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", settings.Port),
		Handler:      api.NewRouter(api.NewHandler(predictor), settings.AllowedOrigins),
		ReadTimeout:  settings.ServerTimeout,
		WriteTimeout: settings.ServerTimeout,
		IdleTimeout:  2 * settings.ServerTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Main] API server listening",
			slog.String("addr", server.Addr),
			slog.String("env", settings.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Warn("[Main] Shutting down API server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.ShutdownWait)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("[Main] API server stopped")
	return nil
}
