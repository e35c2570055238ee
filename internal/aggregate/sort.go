package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/hyperifyio/leadhunt/internal/search"
)

// SortMode selects the ordering applied after filtering.
type SortMode string

const (
	// SortRelevance keeps provider order.
	SortRelevance SortMode = "relevance"
	// SortNewest orders by parsed date, newest first; undated records last.
	SortNewest SortMode = "newest"
)

// ParseSortMode accepts "relevance", "newest" or "" (relevance).
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortRelevance:
		return SortRelevance, nil
	case SortNewest:
		return SortNewest, nil
	default:
		return "", fmt.Errorf("%w: sort must be relevance or newest, got %q", ErrInvalidQuery, s)
	}
}

var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp converts a provider date to Unix seconds. Absent or unparsable
// dates yield 0. Dates without an offset are read as UTC.
func Timestamp(date string) int64 {
	t, ok := parseDate(date)
	if !ok {
		return 0
	}
	return t.Unix()
}

// parseDate tries the ISO layouts first and then dateparse. Results before
// year 1 come from fragments such as "10:" and count as failures.
func parseDate(date string) (time.Time, bool) {
	s := strings.TrimSuffix(strings.TrimSpace(date), "Z")
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || t.Year() < 1 {
		return time.Time{}, false
	}
	return t, true
}

// Sort orders records in place according to mode and returns them. Under
// SortNewest, records without a usable date follow every dated one. Ties keep
// their input order.
func Sort(records []search.Record, mode SortMode) []search.Record {
	if mode != SortNewest || len(records) < 2 {
		return records
	}
	type keyed struct {
		ts  int64
		ok  bool
		rec search.Record
	}
	tmp := make([]keyed, len(records))
	for i, r := range records {
		t, ok := parseDate(r.Date)
		tmp[i] = keyed{ts: t.Unix(), ok: ok, rec: r}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		if tmp[i].ok != tmp[j].ok {
			return tmp[i].ok
		}
		return tmp[i].ts > tmp[j].ts
	})
	for i := range tmp {
		records[i] = tmp[i].rec
	}
	return records
}
