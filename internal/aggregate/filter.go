package aggregate

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/hyperifyio/leadhunt/internal/search"
)

var phraseRe = regexp.MustCompile(`"([^"]+)"`)

// Terms is a parsed query. When Phrases is non-empty, Words is ignored.
type Terms struct {
	Phrases []string
	Words   []string
}

// ParseTerms extracts double-quoted phrases, or whitespace-separated words
// when the query has no phrases.
func ParseTerms(query string) Terms {
	text := strings.TrimSpace(query)
	var t Terms
	for _, m := range phraseRe.FindAllStringSubmatch(text, -1) {
		t.Phrases = append(t.Phrases, m[1])
	}
	if len(t.Phrases) == 0 {
		t.Words = strings.Fields(text)
	}
	return t
}

// FilterByTerms keeps records whose title and snippet contain every phrase,
// or every word when there are no phrases. Matching is case-insensitive. An
// empty query keeps everything.
func FilterByTerms(records []search.Record, query string) []search.Record {
	t := ParseTerms(query)
	needles := t.Words
	if len(t.Phrases) > 0 {
		needles = t.Phrases
	}
	// A Caser is stateful and must not be shared across goroutines.
	fold := cases.Fold()
	for i, n := range needles {
		needles[i] = fold.String(n)
	}

	out := make([]search.Record, 0, len(records))
	for _, r := range records {
		hay := fold.String(r.Title + " " + r.Snippet)
		if containsAll(hay, needles) {
			out = append(out, r)
		}
	}
	return out
}

func containsAll(hay string, needles []string) bool {
	for _, n := range needles {
		if !strings.Contains(hay, n) {
			return false
		}
	}
	return true
}
