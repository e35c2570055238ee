package search

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Candidate keys per canonical field, tried in order. The first key holding a
// non-empty value wins.
var (
	titleKeys   = []string{"title"}
	snippetKeys = []string{"snippet", "description"}
	urlKeys     = []string{"link", "url"}
	dateKeys    = []string{"date", "date_utc", "published"}
)

// Normalize maps a raw provider item onto a Record. Missing fields stay empty.
func Normalize(raw map[string]any, source string) Record {
	return Record{
		Title:   cleanText(pick(raw, titleKeys)),
		Snippet: cleanText(pick(raw, snippetKeys)),
		URL:     strings.TrimSpace(pick(raw, urlKeys)),
		Source:  source,
		Date:    strings.TrimSpace(pick(raw, dateKeys)),
	}
}

// NormalizeAll normalizes items in order.
func NormalizeAll(items []map[string]any, source string) []Record {
	out := make([]Record, 0, len(items))
	for _, it := range items {
		out = append(out, Normalize(it, source))
	}
	return out
}

func pick(raw map[string]any, keys []string) string {
	for _, k := range keys {
		if s := stringValue(raw[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// cleanText drops inline markup some engines use to highlight matches and
// decodes entities. Plain text passes through trimmed.
func cleanText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
