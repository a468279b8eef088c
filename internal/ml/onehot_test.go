package ml

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncoder(t *testing.T, raw string) *OneHotEncoder {
	t.Helper()
	enc := &OneHotEncoder{Name: "ohe"}
	require.NoError(t, json.Unmarshal([]byte(raw), enc))
	require.NoError(t, enc.Validate())
	return enc
}

func TestOneHotEncodeKnownValues(t *testing.T) {
	enc := newTestEncoder(t, `{"features":["video_category_id","country"],
		"categories":[[10,24,25],["GB","IN","US"]],"handle_unknown":"ignore"}`)

	assert.Equal(t, 2, enc.NumInputs())
	assert.Equal(t, 6, enc.NumOutputs())

	out, fallbacks, err := enc.Encode([]string{"25", "IN"})
	require.NoError(t, err)
	assert.Empty(t, fallbacks)
	assert.Equal(t, []float64{0, 0, 1, 0, 1, 0}, out)
}

func TestOneHotUnknownFallsBackToZeros(t *testing.T) {
	enc := newTestEncoder(t, `{"features":["video_category_id","country"],
		"categories":[["10","25"],["US"]],"handle_unknown":"ignore"}`)

	out, fallbacks, err := enc.Encode([]string{"99", "US"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, out)
	assert.Equal(t, []Fallback{{Feature: "video_category_id", Value: "99"}}, fallbacks)
}

func TestOneHotUnknownWithErrorPolicyStillFallsBack(t *testing.T) {
	enc := newTestEncoder(t, `{"features":["country"],"categories":[["US"]],"handle_unknown":"error"}`)
	out, fallbacks, err := enc.Encode([]string{"ZZ"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, out)
	assert.Len(t, fallbacks, 1)
}

func TestOneHotInfrequentColumn(t *testing.T) {
	enc := newTestEncoder(t, `{"features":["country"],"categories":[["AU","IE","US"]],
		"infrequent_categories":[["IE"]],"handle_unknown":"infrequent_if_exist"}`)
	assert.Equal(t, 3, enc.NumOutputs())

	out, fallbacks, err := enc.Encode([]string{"IE"})
	require.NoError(t, err)
	assert.Empty(t, fallbacks)
	assert.Equal(t, []float64{0, 0, 1}, out)

	out, fallbacks, err = enc.Encode([]string{"NZ"})
	require.NoError(t, err)
	assert.Len(t, fallbacks, 1)
	assert.Equal(t, []float64{0, 0, 1}, out)
}

func TestOneHotDroppedCategory(t *testing.T) {
	enc := newTestEncoder(t, `{"features":["country"],"categories":[["AU","US"]],"drop_idx":[0]}`)
	assert.Equal(t, 1, enc.NumOutputs())

	out, fallbacks, err := enc.Encode([]string{"AU"})
	require.NoError(t, err)
	assert.Empty(t, fallbacks)
	assert.Equal(t, []float64{0}, out)

	out, _, err = enc.Encode([]string{"US"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, out)
}

func TestOneHotWrongArity(t *testing.T) {
	enc := newTestEncoder(t, `{"features":["a","b"],"categories":[["x"],["y"]]}`)
	_, _, err := enc.Encode([]string{"x"})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestOneHotValidate(t *testing.T) {
	bad := []string{
		`{"features":[],"categories":[]}`,
		`{"features":["a"],"categories":[]}`,
		`{"features":["a"],"categories":[["x","x"]]}`,
		`{"features":["a"],"categories":[["x"]],"drop_idx":[3]}`,
		`{"features":["a"],"categories":[["x"]],"handle_unknown":"explode"}`,
	}
	for _, raw := range bad {
		enc := &OneHotEncoder{}
		require.NoError(t, json.Unmarshal([]byte(raw), enc))
		assert.ErrorIs(t, enc.Validate(), ErrInvalidArtifact, raw)
	}
}
