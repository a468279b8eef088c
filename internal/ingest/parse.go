package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
}

func parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTimestamp converts to UTC and drops the zone. Unparsable input yields nil.
func ParseTimestamp(raw string) *time.Time {
	t, ok := parseTime(raw)
	if !ok {
		return nil
	}
	t = t.UTC()
	return &t
}

// ParseDate keeps the calendar date as written, whatever the offset.
func ParseDate(raw string) *time.Time {
	t, ok := parseTime(raw)
	if !ok {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// ParseCount coerces a count column; anything unparsable or non-finite becomes 0 and
// fractional values are truncated.
func ParseCount(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

// ParseFlag reads a boolean column; blanks and unknown values are false.
func ParseFlag(raw string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && b
}
