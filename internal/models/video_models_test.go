package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoInputRequestMissingFields(t *testing.T) {
	var req VideoInputRequest
	require.NoError(t, json.Unmarshal([]byte(`{"video_title":"t","subs":0,"country":"US"}`), &req))

	assert.Equal(t, []string{
		"video_description", "video_tags", "channel_title", "video_category",
		"views", "vids", "duration",
	}, req.MissingFields())
}

func TestVideoInputRequestInputKeepsZeroValues(t *testing.T) {
	body := `{"video_title":"a","video_description":"b","video_tags":"","channel_title":"c",
		"video_category":"25","country":"US","subs":0,"views":10,"vids":0,"duration":0}`
	var req VideoInputRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Empty(t, req.MissingFields())

	in := req.Input()
	assert.Equal(t, "a", in.VideoTitle)
	assert.Equal(t, "", in.VideoTags)
	assert.Equal(t, int64(10), in.Views)
	assert.Equal(t, int64(0), in.Vids)
}

func TestCountAcceptsIntegralNumbersAndStrings(t *testing.T) {
	tests := map[string]int64{
		`5`:       5,
		`5.0`:     5,
		`"5"`:     5,
		`" 12 "`:  12,
		`"7.0"`:   7,
		`1e3`:     1000,
		`-3`:      -3,
		`"-3.00"`: -3,
	}
	for raw, want := range tests {
		var c Count
		require.NoError(t, json.Unmarshal([]byte(raw), &c), raw)
		assert.Equal(t, want, int64(c), raw)
	}
}

func TestCountRejectsNonIntegers(t *testing.T) {
	for _, raw := range []string{`5.5`, `"5.5"`, `"lots"`, `""`, `true`, `[]`, `"NaN"`, `"Inf"`, `1e30`} {
		var c Count
		assert.Error(t, json.Unmarshal([]byte(raw), &c), raw)
	}
}

func TestVideoInputRequestCoercesCounts(t *testing.T) {
	body := `{"video_title":"a","video_description":"b","video_tags":"","channel_title":"c",
		"video_category":"25","country":"US","subs":"1000","views":5.0,"vids":"3","duration":600}`
	var req VideoInputRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Empty(t, req.MissingFields())

	in := req.Input()
	assert.Equal(t, int64(1000), in.Subs)
	assert.Equal(t, int64(5), in.Views)
	assert.Equal(t, int64(3), in.Vids)
	assert.Equal(t, int64(600), in.Duration)
}
