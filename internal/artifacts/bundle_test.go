package artifacts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spacesedan/trendcast/internal/artifacts"
	"github.com/spacesedan/trendcast/internal/artifacts/artifactstest"
	"github.com/spacesedan/trendcast/internal/ml"
	"github.com/spacesedan/trendcast/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultFixture(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)

	b, err := artifacts.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, models.ModelInfo{
		TextFeatures:  4,
		RFFeatures:    14,
		PsychFeatures: 8,
		MetaFeatures:  3,
	}, b.Info())
	assert.Equal(t, 50000.0, b.Clips.VPVClip)
	assert.Equal(t, 2000.0, b.Clips.SPVClip)
	assert.Equal(t, 6, b.Encoder.NumOutputs())
}

func TestLoadMissingFile(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)
	require.NoError(t, os.Remove(filepath.Join(dir, "meta_lr.json")))

	_, err := artifacts.Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "meta_lr.json")
}

func TestLoadRejectsTextWidthMismatch(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)
	artifactstest.WriteFile(t, dir, "text_scaler.json", artifactstest.Files(5)["text_scaler.json"])

	_, err := artifacts.Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, artifacts.ErrContractViolation)
	assert.Contains(t, err.Error(), "text classifier width is 4, expected 5")
}

func TestLoadRejectsForestWidthMismatch(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)
	artifactstest.WriteFile(t, dir, "ohe.json", map[string]any{
		"features":       []string{"video_category_id", "country"},
		"categories":     [][]string{{"10", "24"}, {"GB", "IN", "US"}},
		"handle_unknown": "ignore",
	})

	_, err := artifacts.Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, artifacts.ErrContractViolation)
	assert.Contains(t, err.Error(), "tabular classifier width is 14, expected 13")
}

func TestLoadRejectsEncoderColumnOrder(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)
	artifactstest.WriteFile(t, dir, "ohe.json", map[string]any{
		"features":   []string{"country", "video_category_id"},
		"categories": [][]string{{"GB", "IN", "US"}, {"10", "24", "25"}},
	})

	_, err := artifacts.Load(dir)
	assert.ErrorIs(t, err, artifacts.ErrContractViolation)
}

func TestLoadRejectsBadClipValues(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)
	artifactstest.WriteFile(t, dir, "clip_values.json", `{"vpv_clip": 0, "spv_clip": 10}`)

	_, err := artifacts.Load(dir)
	assert.ErrorIs(t, err, ml.ErrInvalidArtifact)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)
	artifactstest.WriteFile(t, dir, "psych_lr.json", `{"coef": [[0.1, `)

	_, err := artifacts.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestManifestOverridesFileNames(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)
	require.NoError(t, os.Rename(filepath.Join(dir, "meta_lr.json"), filepath.Join(dir, "stacker.json")))
	artifactstest.WriteFile(t, dir, artifacts.MANIFEST_FILE, "version: 2\nmeta:\n  classifier: stacker.json\n")

	b, err := artifacts.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Manifest.Version)
	assert.Equal(t, "stacker.json", b.Manifest.Meta.Classifier)
	assert.Equal(t, "text_lr.json", b.Manifest.Text.Classifier)
}

func TestManifestFeatureOrderChecked(t *testing.T) {
	dir := artifactstest.Write(t, artifactstest.TEXT_DIM)
	artifactstest.WriteFile(t, dir, artifacts.MANIFEST_FILE, `
psych:
  scaler: psych_scaler.json
  classifier: psych_lr.json
  features: [has_hype, has_urgency, has_official, has_emotion, has_number, has_qmark, has_excl, overlap_ratio]
`)

	_, err := artifacts.Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, artifacts.ErrContractViolation)
	assert.Contains(t, err.Error(), "psych features")
}

func TestLoadManifestDefaultsWhenAbsent(t *testing.T) {
	m, err := artifacts.LoadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, artifacts.DefaultManifest(), m)
	assert.NoError(t, m.CheckFeatureOrder())
}

func TestLoadManifestMalformed(t *testing.T) {
	dir := t.TempDir()
	artifactstest.WriteFile(t, dir, artifacts.MANIFEST_FILE, "text: [unclosed")

	_, err := artifacts.LoadManifest(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode manifest")
}
