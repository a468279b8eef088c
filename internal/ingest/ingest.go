// Package ingest loads the per-country trending-list CSV exports into the store,
// fixing the column types the exports get wrong.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spacesedan/trendcast/internal/db"
	"github.com/spacesedan/trendcast/internal/models"
)

const (
	DEFAULT_BATCH_SIZE = 1000
	FILE_SUFFIX        = "_youtube.csv"
)

// COUNTRY_FILES maps the country name each export file is named after to its code.
var COUNTRY_FILES = map[string]string{
	"Australia":      "AU",
	"Canada":         "CA",
	"India":          "IN",
	"Ireland":        "IE",
	"New Zealand":    "NZ",
	"Singapore":      "SG",
	"South Africa":   "ZA",
	"United Kingdom": "GB",
	"United States":  "US",
}

// columnRenames fixes header typos in the exports.
var columnRenames = map[string]string{
	"video_trending__date": "video_trending_date",
}

var ErrMissingColumns = errors.New("csv is missing required columns")

// CountryFromFilename resolves "United Kingdom_youtube.csv" to "GB".
func CountryFromFilename(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, FILE_SUFFIX) {
		return "", false
	}
	code, ok := COUNTRY_FILES[strings.TrimSuffix(base, FILE_SUFFIX)]
	return code, ok
}

type rowReader struct {
	csv     *csv.Reader
	index   map[string]int
	country string
	line    int
}

func newRowReader(r io.Reader, country string) (*rowReader, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if renamed, ok := columnRenames[name]; ok {
			name = renamed
		}
		index[name] = i
	}

	var missing []string
	for _, name := range db.ColumnNames() {
		if name == "country" {
			continue
		}
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return &rowReader{csv: cr, index: index, country: country, line: 1}, nil
}

func (r *rowReader) next() (models.TrendingVideo, error) {
	record, err := r.csv.Read()
	if err != nil {
		return models.TrendingVideo{}, err
	}
	r.line++
	get := func(name string) string {
		i := r.index[name]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	return models.TrendingVideo{
		VideoID:                      get("video_id"),
		VideoPublishedAt:             ParseTimestamp(get("video_published_at")),
		VideoTrendingDate:            ParseDate(get("video_trending_date")),
		ChannelID:                    get("channel_id"),
		ChannelTitle:                 get("channel_title"),
		ChannelDescription:           get("channel_description"),
		ChannelCustomURL:             get("channel_custom_url"),
		ChannelPublishedAt:           ParseTimestamp(get("channel_published_at")),
		ChannelCountry:               get("channel_country"),
		VideoTitle:                   get("video_title"),
		VideoDescription:             get("video_description"),
		VideoDefaultThumbnail:        get("video_default_thumbnail"),
		VideoCategoryID:              get("video_category_id"),
		VideoTags:                    get("video_tags"),
		VideoDuration:                get("video_duration"),
		VideoDimension:               get("video_dimension"),
		VideoDefinition:              get("video_definition"),
		VideoLicensedContent:         ParseFlag(get("video_licensed_content")),
		VideoViewCount:               ParseCount(get("video_view_count")),
		VideoLikeCount:               ParseCount(get("video_like_count")),
		VideoCommentCount:            ParseCount(get("video_comment_count")),
		ChannelViewCount:             ParseCount(get("channel_view_count")),
		ChannelSubscriberCount:       ParseCount(get("channel_subscriber_count")),
		ChannelHaveHiddenSubscribers: ParseFlag(get("channel_have_hidden_subscribers")),
		ChannelVideoCount:            ParseCount(get("channel_video_count")),
		ChannelLocalizedTitle:        get("channel_localized_title"),
		ChannelLocalizedDescription:  get("channel_localized_description"),
		VideoTrendingCountry:         get("video_trending_country"),
		Country:                      r.country,
	}, nil
}

// ReadVideos parses a whole export in memory.
func ReadVideos(r io.Reader, country string) ([]models.TrendingVideo, error) {
	rows, err := newRowReader(r, country)
	if err != nil {
		return nil, err
	}
	var out []models.TrendingVideo
	for {
		v, err := rows.next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rows.line+1, err)
		}
		out = append(out, v)
	}
}

// Loader streams exports into a store in fixed-size batches.
type Loader struct {
	Store     db.Store
	BatchSize int
}

func (l *Loader) batchSize() int {
	if l.BatchSize <= 0 {
		return DEFAULT_BATCH_SIZE
	}
	return l.BatchSize
}

// LoadFile appends every row of path, tagged with country, to the store.
func (l *Loader) LoadFile(ctx context.Context, path, country string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	slog.Info("[Ingest] Loading export", slog.String("file", filepath.Base(path)), slog.String("country", country))
	rows, err := newRowReader(f, country)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	var total int64
	batch := newBatchBuffer[models.TrendingVideo](l.batchSize())
	flush := func() error {
		if batch.Size() == 0 {
			return nil
		}
		slog.Debug("[Ingest] Flushing batch", slog.String("country", country), slog.Int("rows", batch.Size()))
		n, err := l.Store.InsertVideos(ctx, batch.GetAndClear())
		total += n
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		v, err := rows.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return total, fmt.Errorf("%s line %d: %w", path, rows.line+1, err)
		}
		if batch.Add(v) {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}

	slog.Info("[Ingest] Export loaded successfully", slog.String("country", country), slog.Int64("rows", total))
	return total, nil
}

// LoadDir loads every recognised "<Country>_youtube.csv" in dir, in country-code order.
func (l *Loader) LoadDir(ctx context.Context, dir string) (map[string]int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read export dir: %w", err)
	}

	type export struct{ path, country string }
	var exports []export
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		country, ok := CountryFromFilename(e.Name())
		if !ok {
			slog.Debug("[Ingest] Skipping unrecognised file", slog.String("file", e.Name()))
			continue
		}
		exports = append(exports, export{path: filepath.Join(dir, e.Name()), country: country})
	}
	sort.Slice(exports, func(i, j int) bool { return exports[i].country < exports[j].country })

	loaded := make(map[string]int64, len(exports))
	for _, ex := range exports {
		n, err := l.LoadFile(ctx, ex.path, ex.country)
		loaded[ex.country] += n
		if err != nil {
			return loaded, err
		}
	}
	return loaded, nil
}
