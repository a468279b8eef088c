// Package db persists the trending-list exports the classifiers are trained on and
// the will_trend labels computed over them.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spacesedan/trendcast/config"
	"github.com/spacesedan/trendcast/internal/models"
)

const (
	TABLE_NAME      = "trending_videos"
	DRIVER_POSTGRES = "postgres"
	DRIVER_SQLITE   = "sqlite"
)

// Store is implemented by every backend. Schema creation is idempotent.
type Store interface {
	EnsureSchema(ctx context.Context) error
	InsertVideos(ctx context.Context, videos []models.TrendingVideo) (int64, error)
	EngagementRows(ctx context.Context) ([]models.EngagementRow, error)
	// UpdateLabels applies every label in one transaction.
	UpdateLabels(ctx context.Context, labels []models.TrendLabel) error
	CountLabeled(ctx context.Context) (total, positive int64, err error)
	Close() error
}

// Open connects to the backend named by s.Driver.
func Open(ctx context.Context, s config.StoreSettings) (Store, error) {
	switch s.Driver {
	case DRIVER_POSTGRES:
		return OpenPostgres(ctx, s.DatabaseURL)
	case DRIVER_SQLITE:
		return OpenSQLite(ctx, s.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", s.Driver)
	}
}

type column struct {
	name       string
	postgres   string
	sqlite     string
	value      func(v *models.TrendingVideo) any
	sqliteBind func(v *models.TrendingVideo) any
}

func timestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func sqliteTime(layout string) func(*time.Time) any {
	return func(t *time.Time) any {
		if t == nil {
			return nil
		}
		return t.Format(layout)
	}
}

var (
	sqliteTimestamp = sqliteTime("2006-01-02 15:04:05")
	sqliteDate      = sqliteTime(time.DateOnly)
)

// columns lists the stored export columns in insert order. country is the trending
// list the row came from.
var columns = []column{
	{name: "video_id", postgres: "TEXT NOT NULL", sqlite: "TEXT NOT NULL", value: func(v *models.TrendingVideo) any { return v.VideoID }},
	{name: "video_published_at", postgres: "TIMESTAMP", sqlite: "TEXT",
		value:      func(v *models.TrendingVideo) any { return timestamp(v.VideoPublishedAt) },
		sqliteBind: func(v *models.TrendingVideo) any { return sqliteTimestamp(v.VideoPublishedAt) }},
	{name: "video_trending_date", postgres: "DATE", sqlite: "TEXT",
		value:      func(v *models.TrendingVideo) any { return timestamp(v.VideoTrendingDate) },
		sqliteBind: func(v *models.TrendingVideo) any { return sqliteDate(v.VideoTrendingDate) }},
	{name: "channel_id", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.ChannelID }},
	{name: "channel_title", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.ChannelTitle }},
	{name: "channel_description", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.ChannelDescription }},
	{name: "channel_custom_url", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.ChannelCustomURL }},
	{name: "channel_published_at", postgres: "TIMESTAMP", sqlite: "TEXT",
		value:      func(v *models.TrendingVideo) any { return timestamp(v.ChannelPublishedAt) },
		sqliteBind: func(v *models.TrendingVideo) any { return sqliteTimestamp(v.ChannelPublishedAt) }},
	{name: "channel_country", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.ChannelCountry }},
	{name: "video_title", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.VideoTitle }},
	{name: "video_description", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.VideoDescription }},
	{name: "video_default_thumbnail", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.VideoDefaultThumbnail }},
	{name: "video_category_id", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.VideoCategoryID }},
	{name: "video_tags", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.VideoTags }},
	{name: "video_duration", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.VideoDuration }},
	{name: "video_dimension", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.VideoDimension }},
	{name: "video_definition", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.VideoDefinition }},
	{name: "video_licensed_content", postgres: "BOOLEAN NOT NULL DEFAULT FALSE", sqlite: "INTEGER NOT NULL DEFAULT 0", value: func(v *models.TrendingVideo) any { return v.VideoLicensedContent }},
	{name: "video_view_count", postgres: "BIGINT NOT NULL DEFAULT 0", sqlite: "INTEGER NOT NULL DEFAULT 0", value: func(v *models.TrendingVideo) any { return v.VideoViewCount }},
	{name: "video_like_count", postgres: "BIGINT NOT NULL DEFAULT 0", sqlite: "INTEGER NOT NULL DEFAULT 0", value: func(v *models.TrendingVideo) any { return v.VideoLikeCount }},
	{name: "video_comment_count", postgres: "BIGINT NOT NULL DEFAULT 0", sqlite: "INTEGER NOT NULL DEFAULT 0", value: func(v *models.TrendingVideo) any { return v.VideoCommentCount }},
	{name: "channel_view_count", postgres: "BIGINT NOT NULL DEFAULT 0", sqlite: "INTEGER NOT NULL DEFAULT 0", value: func(v *models.TrendingVideo) any { return v.ChannelViewCount }},
	{name: "channel_subscriber_count", postgres: "BIGINT NOT NULL DEFAULT 0", sqlite: "INTEGER NOT NULL DEFAULT 0", value: func(v *models.TrendingVideo) any { return v.ChannelSubscriberCount }},
	{name: "channel_have_hidden_subscribers", postgres: "BOOLEAN NOT NULL DEFAULT FALSE", sqlite: "INTEGER NOT NULL DEFAULT 0", value: func(v *models.TrendingVideo) any { return v.ChannelHaveHiddenSubscribers }},
	{name: "channel_video_count", postgres: "BIGINT NOT NULL DEFAULT 0", sqlite: "INTEGER NOT NULL DEFAULT 0", value: func(v *models.TrendingVideo) any { return v.ChannelVideoCount }},
	{name: "channel_localized_title", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.ChannelLocalizedTitle }},
	{name: "channel_localized_description", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.ChannelLocalizedDescription }},
	{name: "video_trending_country", postgres: "TEXT", sqlite: "TEXT", value: func(v *models.TrendingVideo) any { return v.VideoTrendingCountry }},
	{name: "country", postgres: "TEXT NOT NULL", sqlite: "TEXT NOT NULL", value: func(v *models.TrendingVideo) any { return v.Country }},
}

// ColumnNames returns the insert column order.
func ColumnNames() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
	}
	return names
}

func createTableSQL(idColumn string, typeOf func(column) string, labelType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n    %s", TABLE_NAME, idColumn)
	for _, c := range columns {
		fmt.Fprintf(&b, ",\n    %s %s", c.name, typeOf(c))
	}
	fmt.Fprintf(&b, ",\n    will_trend %s\n)", labelType)
	return b.String()
}

var countryIndexSQL = fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_country_idx ON %s (country)", TABLE_NAME, TABLE_NAME)

const engagementQuery = `
        SELECT id, country, video_view_count, video_like_count, video_comment_count
        FROM ` + TABLE_NAME + `
        ORDER BY id
    `

const countLabeledQuery = `
        SELECT COUNT(*), COALESCE(SUM(CASE WHEN will_trend = 1 THEN 1 ELSE 0 END), 0)
        FROM ` + TABLE_NAME + `
        WHERE will_trend IS NOT NULL
    `

func labelValue(willTrend bool) int16 {
	if willTrend {
		return 1
	}
	return 0
}
