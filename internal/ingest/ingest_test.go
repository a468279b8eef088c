package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spacesedan/trendcast/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "video_id,video_published_at,video_trending__date,channel_id,channel_title,channel_description," +
	"channel_custom_url,channel_published_at,channel_country,video_title,video_description,video_default_thumbnail," +
	"video_category_id,video_tags,video_duration,video_dimension,video_definition,video_licensed_content," +
	"video_view_count,video_like_count,video_comment_count,channel_view_count,channel_subscriber_count," +
	"channel_have_hidden_subscribers,channel_video_count,channel_localized_title,channel_localized_description," +
	"video_trending_country\n"

func row(id, views, likes, comments string) string {
	return id + ",2024-03-01T18:30:00+05:30,2024.03.02,UC1,Chan,\"multi\nline\",@chan,2015-06-01 00:00:00,IN," +
		"\"Title, with comma\",desc,http://img,24,\"a|b\",PT10M,2d,hd,True," +
		views + "," + likes + "," + comments + ",1000,,False,42,Chan,desc,India\n"
}

func TestParseTimestampDropsZone(t *testing.T) {
	got := ParseTimestamp("2024-03-01T18:30:00+05:30")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC), *got)

	assert.Equal(t, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC), *ParseTimestamp("2024-03-01 13:00:00"))
	assert.Nil(t, ParseTimestamp(""))
	assert.Nil(t, ParseTimestamp("yesterday"))
}

func TestParseDateKeepsCalendarDay(t *testing.T) {
	got := ParseDate("2024-03-02T23:30:00-08:00")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), *got)
	assert.Nil(t, ParseDate("2024.03.02"))
}

func TestParseCount(t *testing.T) {
	cases := map[string]int64{
		"42":    42,
		" 7 ":   7,
		"12.9":  12,
		"1e3":   1000,
		"":      0,
		"n/a":   0,
		"NaN":   0,
		"inf":   0,
		"-5":    -5,
		"1e30":  0,
		"1,234": 0,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseCount(raw), "raw=%q", raw)
	}
}

func TestParseFlag(t *testing.T) {
	assert.True(t, ParseFlag("True"))
	assert.True(t, ParseFlag("1"))
	assert.False(t, ParseFlag("False"))
	assert.False(t, ParseFlag(""))
	assert.False(t, ParseFlag("maybe"))
}

func TestCountryFromFilename(t *testing.T) {
	code, ok := CountryFromFilename("/data/United Kingdom_youtube.csv")
	assert.True(t, ok)
	assert.Equal(t, "GB", code)

	code, ok = CountryFromFilename("South Africa_youtube.csv")
	assert.True(t, ok)
	assert.Equal(t, "ZA", code)

	_, ok = CountryFromFilename("Narnia_youtube.csv")
	assert.False(t, ok)
	_, ok = CountryFromFilename("India.csv")
	assert.False(t, ok)
	assert.Len(t, COUNTRY_FILES, 9)
}

func TestReadVideosFixesTypes(t *testing.T) {
	videos, err := ReadVideos(strings.NewReader(header+row("v1", "1500", "x", "3.0")), "IN")
	require.NoError(t, err)
	require.Len(t, videos, 1)

	v := videos[0]
	assert.Equal(t, "v1", v.VideoID)
	assert.Equal(t, "IN", v.Country)
	assert.Equal(t, "Title, with comma", v.VideoTitle)
	assert.Equal(t, "multi\nline", v.ChannelDescription)
	assert.Equal(t, int64(1500), v.VideoViewCount)
	assert.Zero(t, v.VideoLikeCount)
	assert.Equal(t, int64(3), v.VideoCommentCount)
	assert.Zero(t, v.ChannelSubscriberCount)
	assert.Equal(t, int64(42), v.ChannelVideoCount)
	assert.True(t, v.VideoLicensedContent)
	assert.False(t, v.ChannelHaveHiddenSubscribers)
	require.NotNil(t, v.VideoPublishedAt)
	assert.Equal(t, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC), *v.VideoPublishedAt)
	assert.Nil(t, v.VideoTrendingDate)
	require.NotNil(t, v.ChannelPublishedAt)
}

func TestReadVideosMissingColumns(t *testing.T) {
	_, err := ReadVideos(strings.NewReader("video_id,video_title\nabc,hello\n"), "US")
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "video_view_count")
}

func TestReadVideosBOMHeader(t *testing.T) {
	videos, err := ReadVideos(strings.NewReader("\ufeff"+header+row("v1", "1", "1", "1")), "IN")
	require.NoError(t, err)
	assert.Len(t, videos, 1)
}

func TestLoaderBatchesIntoStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	var in strings.Builder
	in.WriteString(header)
	for i := 0; i < 5; i++ {
		in.WriteString(row("in"+string(rune('a'+i)), "100", "10", "1"))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "India_youtube.csv"), []byte(in.String()), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "United States_youtube.csv"), []byte(header+row("us1", "9", "9", "9")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))

	store, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "trending.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.EnsureSchema(ctx))

	loader := &Loader{Store: store, BatchSize: 2}
	loaded, err := loader.LoadDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"IN": 5, "US": 1}, loaded)

	rows, err := store.EngagementRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "IN", rows[0].Country)
	assert.Equal(t, "US", rows[5].Country)
	assert.Equal(t, int64(9), rows[5].Comments)
}
