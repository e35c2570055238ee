package export

import (
	"fmt"
	"io"
	"strings"
)

var (
	linkTextEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)
	linkURLEscaper  = strings.NewReplacer(`(`, `%28`, `)`, `%29`, ` `, `%20`)
)

// Markdown renders p as a numbered list of linked results.
func Markdown(p Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Results for %q\n\n", p.Query)
	fmt.Fprintf(&b, "Page %d, %d per page, %d of about %d results\n\n", p.Page, p.PerPage, len(p.Items), p.Total)
	if len(p.Items) == 0 {
		b.WriteString("No results.\n")
		return b.String()
	}
	for i, r := range p.Items {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = r.URL
		}
		if title == "" {
			title = "(untitled)"
		}
		if r.URL != "" {
			fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, linkTextEscaper.Replace(title), linkURLEscaper.Replace(r.URL))
		} else {
			fmt.Fprintf(&b, "%d. %s\n", i+1, title)
		}
		if meta := metaLine(r.Source, r.Date); meta != "" {
			fmt.Fprintf(&b, "   %s\n", meta)
		}
		if s := strings.TrimSpace(r.Snippet); s != "" {
			fmt.Fprintf(&b, "   > %s\n", s)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteMarkdown writes Markdown(p) to w.
func WriteMarkdown(w io.Writer, p Page) error {
	_, err := io.WriteString(w, Markdown(p))
	return err
}

func metaLine(source, date string) string {
	var parts []string
	if source != "" {
		parts = append(parts, "_"+source+"_")
	}
	if date != "" {
		parts = append(parts, date)
	}
	return strings.Join(parts, " | ")
}
