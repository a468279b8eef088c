package ml

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorAcceptsFlatAndSingleRow(t *testing.T) {
	var v Vector
	require.NoError(t, json.Unmarshal([]byte(`[1,2,3]`), &v))
	assert.Equal(t, Vector{1, 2, 3}, v)

	require.NoError(t, json.Unmarshal([]byte(`[[4,5]]`), &v))
	assert.Equal(t, Vector{4, 5}, v)

	assert.Error(t, json.Unmarshal([]byte(`[[1],[2]]`), &v))
}

func TestScalarAcceptsNumberOrArray(t *testing.T) {
	var s Scalar
	require.NoError(t, json.Unmarshal([]byte(`-0.5`), &s))
	assert.Equal(t, Scalar(-0.5), s)
	require.NoError(t, json.Unmarshal([]byte(`[2]`), &s))
	assert.Equal(t, Scalar(2), s)
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &s))
}

func TestLabelNormalisesNumbers(t *testing.T) {
	var labels []Label
	require.NoError(t, json.Unmarshal([]byte(`["US", 25, 10.0, "07"]`), &labels))
	assert.Equal(t, []Label{"US", "25", "10", "07"}, labels)
}
