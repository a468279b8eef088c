package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spacesedan/trendcast/config"
	"github.com/spacesedan/trendcast/internal/artifacts/artifactstest"
	"github.com/spacesedan/trendcast/internal/embedding"
	"github.com/spacesedan/trendcast/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleInput = `{"video_title": "BREAKING: Record Viral Moment!", "video_description": "official report confirms huge numbers",
"video_tags": "", "channel_title": "NewsCo", "video_category": "25", "country": "US",
"subs": 1000000, "views": 50000000, "vids": 3000, "duration": 600}`

type stubEmbedder struct{ dim int }

func (s stubEmbedder) Embed(context.Context, string) ([]float64, error) {
	return make([]float64, s.dim), nil
}

func (s stubEmbedder) ModelID() string { return "stub" }

func (s stubEmbedder) Close() error { return nil }

func execute(t *testing.T, dim int, stdin string, args ...string) (string, error) {
	t.Helper()
	ctx := newCommandContext()
	ctx.newEmbedder = func(config.EmbedderSettings) (embedding.Embedder, error) {
		return stubEmbedder{dim: dim}, nil
	}
	cmd := newRootCommand(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestModelInfoCommand(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)

	out, err := execute(t, 4, "", "model-info", "--artifacts", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "rf_calibrated.json")
	assert.Contains(t, out, "14")
	assert.Contains(t, out, "psychology")
}

func TestPredictCommandJSON(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)

	out, err := execute(t, 4, exampleInput, "predict", "--artifacts", dir)
	require.NoError(t, err)

	var result models.PredictionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.GreaterOrEqual(t, result.TrendingProbability, 0.0)
	assert.LessOrEqual(t, result.TrendingProbability, 1.0)
	assert.NotEmpty(t, result.ConfidenceBucket)
}

func TestPredictCommandTable(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)
	input := filepath.Join(t.TempDir(), "video.json")
	require.NoError(t, os.WriteFile(input, []byte(exampleInput), 0o644))

	out, err := execute(t, 4, "", "predict", "--artifacts", dir, "--input", input, "--table")
	require.NoError(t, err)
	assert.Contains(t, out, "trending_probability")
	assert.Contains(t, out, "confidence_bucket")
}

func TestPredictCommandMismatchPrintsPayload(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)

	out, err := execute(t, 3, exampleInput, "predict", "--artifacts", dir)
	require.Error(t, err)
	assert.Contains(t, out, `"error_kind": "dimension_mismatch"`)
}

func TestPredictCommandMissingFields(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)

	_, err := execute(t, 4, `{"video_title": "x"}`, "predict", "--artifacts", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
}

func TestIngestAndLabelCommands(t *testing.T) {
	exports := t.TempDir()
	header := "video_id,video_published_at,video_trending__date,channel_id,channel_title,channel_description," +
		"channel_custom_url,channel_published_at,channel_country,video_title,video_description,video_default_thumbnail," +
		"video_category_id,video_tags,video_duration,video_dimension,video_definition,video_licensed_content," +
		"video_view_count,video_like_count,video_comment_count,channel_view_count,channel_subscriber_count," +
		"channel_have_hidden_subscribers,channel_video_count,channel_localized_title,channel_localized_description," +
		"video_trending_country\n"
	row := func(id string, views string) string {
		return id + ",2024-03-01T00:00:00Z,2024-03-02,c,t,d,u,2015-01-01T00:00:00Z,IN,title,desc,img,24,tags,PT1M,2d,hd,False," +
			views + "," + views + "," + views + ",1,1,False,1,t,d,India\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(exports, "India_youtube.csv"),
		[]byte(header+row("a", "10")+row("b", "20")+row("c", "30")), 0o644))

	dbPath := filepath.Join(t.TempDir(), "trending.db")
	out, err := execute(t, 4, "", "ingest", exports, "--driver", "sqlite", "--sqlite-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "IN")
	assert.Contains(t, out, "3")

	out, err = execute(t, 4, "", "label", "--driver", "sqlite", "--sqlite-path", dbPath, "--base-views", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "2 / 3")
	assert.Contains(t, out, "Stored labels: 3 videos, 2 trending")
}

func TestIngestCommandNeedsCountry(t *testing.T) {
	file := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(file, []byte("video_id\n"), 0o644))

	_, err := execute(t, 4, "", "ingest", file, "--driver", "sqlite", "--sqlite-path", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--country")
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Name", "Count"}, [][]string{{"x"}, {"y", "12"}}, 1)
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "NAME")
	assert.Empty(t, renderTable(nil, nil, 0))
}
