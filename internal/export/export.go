// Package export renders one aggregated page as JSON, Markdown or PDF.
package export

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/hyperifyio/leadhunt/internal/search"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format selects an output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ParseFormat accepts json, markdown (or md) and pdf, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, markdown or pdf)", s)
	}
}

// Page is one aggregated result page plus the parameters that produced it.
// Its JSON form matches the /search response body.
type Page struct {
	Query   string          `json:"query"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Total   int             `json:"total"`
	Count   int             `json:"count"`
	Items   []search.Record `json:"items"`
}

// NewPage fills Count and guarantees a non-nil Items slice.
func NewPage(query string, page, perPage, total int, items []search.Record) Page {
	if items == nil {
		items = []search.Record{}
	}
	return Page{Query: query, Page: page, PerPage: perPage, Total: total, Count: len(items), Items: items}
}

// Write encodes p to w in format f.
func Write(w io.Writer, f Format, p Page) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, p)
	case FormatMarkdown:
		return WriteMarkdown(w, p)
	case FormatPDF:
		return WritePDF(w, p)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// WriteJSON writes p as indented JSON followed by a newline.
func WriteJSON(w io.Writer, p Page) error {
	if p.Items == nil {
		p.Items = []search.Record{}
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
