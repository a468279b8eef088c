package features

import (
	"math"

	"github.com/spacesedan/trendcast/internal/models"
)

const (
	TABULAR_NUMERIC_COUNT = 8

	LARGE_CHANNEL_MIN_VIDS = 5000
	LARGE_CHANNEL_MIN_SUBS = 500_000

	SMALL_CHANNEL_VIDS  = 200
	MEDIUM_CHANNEL_VIDS = 1000
	LARGE_CHANNEL_VIDS  = 5000
)

// CategoricalFeatureNames are the one-hot encoded columns, in encoder order.
var CategoricalFeatureNames = []string{"video_category_id", "country"}

// TabularNumericFeatureNames is the order of the engineered numeric columns, which
// follow the one-hot block in the tabular feature vector.
var TabularNumericFeatureNames = []string{
	"log_duration",
	"log_subs",
	"log_views",
	"log_views_x_log_subs",
	"log_vpv",
	"log_spv",
	"is_large_channel",
	"channel_size_bucket",
}

// ClipValues bound the per-video ratios so outlier channels cannot dominate.
type ClipValues struct {
	VPVClip float64 `json:"vpv_clip"`
	SPVClip float64 `json:"spv_clip"`
}

// CategoricalValues returns the raw categorical fields in CategoricalFeatureNames order.
func CategoricalValues(in models.VideoInput) []string {
	return []string{in.VideoCategory, in.Country}
}

// PerVideoRatio is min(total / max(1, vids), clip).
func PerVideoRatio(total, vids int64, clip float64) float64 {
	ratio := float64(total) / math.Max(1, float64(vids))
	return math.Min(ratio, clip)
}

// ChannelSizeBucket maps a channel's video count to 0..3.
func ChannelSizeBucket(vids int64) float64 {
	switch {
	case vids < SMALL_CHANNEL_VIDS:
		return 0
	case vids < MEDIUM_CHANNEL_VIDS:
		return 1
	case vids < LARGE_CHANNEL_VIDS:
		return 2
	default:
		return 3
	}
}

// TabularNumeric builds the numeric columns in TabularNumericFeatureNames order.
func TabularNumeric(in models.VideoInput, clips ClipValues) []float64 {
	logViews := math.Log1p(float64(in.Views))
	logSubs := math.Log1p(float64(in.Subs))
	vpv := PerVideoRatio(in.Views, in.Vids, clips.VPVClip)
	spv := PerVideoRatio(in.Subs, in.Vids, clips.SPVClip)

	return []float64{
		math.Log1p(float64(in.Duration)),
		logSubs,
		logViews,
		logViews * logSubs,
		math.Log1p(vpv),
		math.Log1p(spv),
		indicator(in.Vids > LARGE_CHANNEL_MIN_VIDS && in.Subs > LARGE_CHANNEL_MIN_SUBS),
		ChannelSizeBucket(in.Vids),
	}
}
