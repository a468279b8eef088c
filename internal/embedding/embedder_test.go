package embedding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/trendcast/config"
	"github.com/stretchr/testify/assert"
)

func TestModelPathForHubName(t *testing.T) {
	s := config.EmbedderSettings{ModelName: "sentence-transformers/LaBSE", ModelDir: "/var/models"}
	assert.Equal(t, filepath.Join("/var/models", "sentence-transformers_LaBSE"), ModelPath(s))
}

func TestModelPathForLocalDir(t *testing.T) {
	dir := t.TempDir()
	s := config.EmbedderSettings{ModelName: dir, ModelDir: "/var/models"}
	assert.Equal(t, dir, ModelPath(s))
}

func TestEnsureModelUsesExistingDir(t *testing.T) {
	root := t.TempDir()
	s := config.EmbedderSettings{ModelName: "org/model", ModelDir: root}
	want := ModelPath(s)
	assert.NoError(t, mkdir(want))

	got, err := ensureModel(s)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDownloadOptionsPinOnnxFile(t *testing.T) {
	s := config.EmbedderSettings{ModelName: "sentence-transformers/LaBSE", OnnxFilename: "onnx/model.onnx"}

	opts := downloadOptions(s)
	assert.Equal(t, "onnx/model.onnx", opts.OnnxFilePath)
	assert.Equal(t, "main", opts.Branch)
	assert.Positive(t, opts.MaxRetries)
}

func TestPipelineConfigSelectsSentenceOutput(t *testing.T) {
	s := config.EmbedderSettings{
		OnnxFilename: "onnx/model.onnx",
		OutputName:   "pooler_output",
		Normalize:    true,
	}

	cfg := pipelineConfig(s, "/var/models/sentence-transformers_LaBSE")
	assert.Equal(t, "/var/models/sentence-transformers_LaBSE", cfg.ModelPath)
	assert.Equal(t, "model.onnx", cfg.OnnxFilename)

	var p pipelines.FeatureExtractionPipeline
	for _, opt := range cfg.Options {
		opt(&p)
	}
	assert.Equal(t, "pooler_output", p.OutputName)
	assert.True(t, p.Normalization)
}

func TestPipelineConfigWithoutOverrides(t *testing.T) {
	cfg := pipelineConfig(config.EmbedderSettings{}, "/models/local")
	assert.Empty(t, cfg.OnnxFilename)
	assert.Empty(t, cfg.Options)
}

func TestWiden(t *testing.T) {
	assert.Equal(t, []float64{0.5, -1, 0}, Widen([]float32{0.5, -1, 0}))
	assert.Empty(t, Widen(nil))
}

func mkdir(path string) error {
	return os.MkdirAll(path, 0o755)
}
