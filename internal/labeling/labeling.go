// Package labeling derives the will_trend target: a video is positive when its views,
// likes and comments all reach its country's thresholds.
package labeling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spacesedan/trendcast/internal/db"
	"github.com/spacesedan/trendcast/internal/models"
)

const (
	DEFAULT_BASE_COUNTRY = "IN"
	DEFAULT_BASE_VIEWS   = 100_000
)

var (
	ErrNoRows         = errors.New("no engagement rows to label")
	ErrMissingBase    = errors.New("base country has no rows")
	ErrZeroBaseMedian = errors.New("base country median views is zero")
)

// Config scales view thresholds relative to BaseCountry, whose threshold is BaseViews.
type Config struct {
	BaseCountry string
	BaseViews   float64
}

func DefaultConfig() Config {
	return Config{BaseCountry: DEFAULT_BASE_COUNTRY, BaseViews: DEFAULT_BASE_VIEWS}
}

// Median of xs, averaging the middle pair for even lengths. xs is not modified.
func Median(xs []int64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]int64(nil), xs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return (float64(sorted[mid-1]) + float64(sorted[mid])) / 2
}

// Thresholds computes per-country cut-offs, sorted by country code.
func Thresholds(rows []models.EngagementRow, cfg Config) ([]models.CountryThresholds, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	type counts struct{ views, likes, comments []int64 }
	byCountry := map[string]*counts{}
	for _, r := range rows {
		c, ok := byCountry[r.Country]
		if !ok {
			c = &counts{}
			byCountry[r.Country] = c
		}
		c.views = append(c.views, r.Views)
		c.likes = append(c.likes, r.Likes)
		c.comments = append(c.comments, r.Comments)
	}

	base, ok := byCountry[cfg.BaseCountry]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingBase, cfg.BaseCountry)
	}
	baseMedian := Median(base.views)
	if baseMedian == 0 {
		return nil, fmt.Errorf("%w: %s", ErrZeroBaseMedian, cfg.BaseCountry)
	}

	out := make([]models.CountryThresholds, 0, len(byCountry))
	for country, c := range byCountry {
		median := Median(c.views)
		out = append(out, models.CountryThresholds{
			Country:     country,
			MedianViews: median,
			ViewsMin:    median / baseMedian * cfg.BaseViews,
			LikesMin:    Median(c.likes),
			CommentsMin: Median(c.comments),
			Videos:      len(c.views),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out, nil
}

// Label applies thresholds to rows and fills in PositiveRows on each threshold.
func Label(rows []models.EngagementRow, thresholds []models.CountryThresholds) []models.TrendLabel {
	index := make(map[string]int, len(thresholds))
	for i, th := range thresholds {
		index[th.Country] = i
		thresholds[i].PositiveRows = 0
	}

	labels := make([]models.TrendLabel, 0, len(rows))
	for _, r := range rows {
		i, ok := index[r.Country]
		if !ok {
			labels = append(labels, models.TrendLabel{ID: r.ID})
			continue
		}
		th := thresholds[i]
		trend := float64(r.Views) >= th.ViewsMin &&
			float64(r.Likes) >= th.LikesMin &&
			float64(r.Comments) >= th.CommentsMin
		if trend {
			thresholds[i].PositiveRows++
		}
		labels = append(labels, models.TrendLabel{ID: r.ID, WillTrend: trend})
	}
	return labels
}

// Job recomputes every label in the store.
type Job struct {
	Store  db.Store
	Config Config
}

func (j *Job) Run(ctx context.Context) ([]models.CountryThresholds, error) {
	rows, err := j.Store.EngagementRows(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("[Labeling] Read engagement rows", slog.Int("rows", len(rows)))

	thresholds, err := Thresholds(rows, j.Config)
	if err != nil {
		return nil, err
	}
	labels := Label(rows, thresholds)
	for _, th := range thresholds {
		slog.Info("[Labeling] Country thresholds",
			slog.String("country", th.Country),
			slog.Float64("views_min", th.ViewsMin),
			slog.Float64("likes_min", th.LikesMin),
			slog.Float64("comments_min", th.CommentsMin),
			slog.Int("positive", th.PositiveRows),
			slog.Int("videos", th.Videos))
	}

	if err := j.Store.UpdateLabels(ctx, labels); err != nil {
		return nil, err
	}
	return thresholds, nil
}
