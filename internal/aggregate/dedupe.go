package aggregate

import (
	"strings"

	"github.com/hyperifyio/leadhunt/internal/search"
)

// Dedupe drops records whose URL, ignoring any #fragment, was already seen.
// The first occurrence wins and order is preserved. Records without a URL
// have no identity and are always kept.
func Dedupe(records []search.Record) []search.Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]search.Record, 0, len(records))
	for _, r := range records {
		key := dedupeKey(r.URL)
		if key != "" {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}

func dedupeKey(u string) string {
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	return u
}
