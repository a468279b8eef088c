// Package embedding turns combined video text into the sentence embedding the text
// classifier was trained on.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/trendcast/config"
)

var ErrEmptyEmbedding = errors.New("embedder returned no vector")

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	ModelID() string
	Close() error
}

// HugotEmbedder runs a sentence-transformer ONNX export through a local ORT session.
// The pipeline is shared by all callers.
type HugotEmbedder struct {
	modelID  string
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
}

// ModelPath returns where the model for s lives on disk. ModelName may itself be a
// local directory; otherwise it is the path hugot.DownloadModel writes the hub model to.
func ModelPath(s config.EmbedderSettings) string {
	if info, err := os.Stat(s.ModelName); err == nil && info.IsDir() {
		return s.ModelName
	}
	return filepath.Join(s.ModelDir, strings.ReplaceAll(s.ModelName, "/", "_"))
}

func ensureModel(s config.EmbedderSettings) (string, error) {
	modelPath := ModelPath(s)
	if _, err := os.Stat(modelPath); err == nil {
		slog.Info("[Embedder] Using existing model", slog.String("path", modelPath))
		return modelPath, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat model dir: %w", err)
	}

	if err := os.MkdirAll(s.ModelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create model dir: %w", err)
	}
	slog.Info("[Embedder] Model not found, downloading...", slog.String("model", s.ModelName))
	downloaded, err := hugot.DownloadModel(s.ModelName, s.ModelDir, downloadOptions(s))
	if err != nil {
		return "", fmt.Errorf("download %s: %w", s.ModelName, err)
	}
	slog.Info("[Embedder] Model downloaded successfully", slog.String("path", downloaded))
	return downloaded, nil
}

// downloadOptions pins the hub download to OnnxFilename, a path inside the model repo.
// Hub repos often ship optimised and quantised exports next to the plain one.
func downloadOptions(s config.EmbedderSettings) hugot.DownloadOptions {
	opts := hugot.NewDownloadOptions()
	opts.OnnxFilePath = s.OnnxFilename
	return opts
}

// pipelineConfig selects the downloaded ONNX file by its base name, since the download
// flattens the repo layout, and the model output holding the sentence embedding.
func pipelineConfig(s config.EmbedderSettings, modelPath string) hugot.FeatureExtractionConfig {
	cfg := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "videoTextEmbedding",
	}
	if s.OnnxFilename != "" {
		cfg.OnnxFilename = path.Base(s.OnnxFilename)
	}
	if s.OutputName != "" {
		cfg.Options = append(cfg.Options, pipelines.WithOutputName(s.OutputName))
	}
	if s.Normalize {
		cfg.Options = append(cfg.Options, pipelines.WithNormalization())
	}
	return cfg
}

// NewHugotEmbedder prepares the model, downloading it on first use, and builds the
// feature-extraction pipeline.
func NewHugotEmbedder(s config.EmbedderSettings) (*HugotEmbedder, error) {
	modelPath, err := ensureModel(s)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("init hugot session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, pipelineConfig(s, modelPath))
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			slog.Warn("[Embedder] Failed to destroy session", slog.String("error", destroyErr.Error()))
		}
		return nil, fmt.Errorf("init embedding pipeline: %w", err)
	}

	slog.Info("[Embedder] Pipeline ready",
		slog.String("model", s.ModelName),
		slog.String("onnx_file", s.OnnxFilename),
		slog.String("output", s.OutputName),
		slog.Bool("normalize", s.Normalize))
	return &HugotEmbedder{
		modelID:  s.ModelName,
		session:  session,
		pipeline: pipeline,
	}, nil
}

func (e *HugotEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := e.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("run embedding pipeline: %w", err)
	}
	if len(out.Embeddings) == 0 || len(out.Embeddings[0]) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return Widen(out.Embeddings[0]), nil
}

func (e *HugotEmbedder) ModelID() string {
	return e.modelID
}

func (e *HugotEmbedder) Close() error {
	if e.session == nil {
		return nil
	}
	return e.session.Destroy()
}

// Widen converts a float32 embedding to the float64 vectors the scalers consume.
func Widen(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
