package search

import (
	"context"
	"strconv"
	"strings"
)

// WebProvider returns organic general-web results from the google engine.
type WebProvider struct {
	Client *Client
}

func (w *WebProvider) Name() string { return "google" }

func (w *WebProvider) Search(ctx context.Context, req Request) (Response, error) {
	return w.search(ctx, w.Name(), req)
}

// search runs the google engine, tagging upstream errors with provider.
func (w *WebProvider) search(ctx context.Context, provider string, req Request) (Response, error) {
	req = req.withDefaults()
	data, err := w.Client.Get(ctx, provider, engineParams(engineWeb, req))
	if err != nil {
		return Response{}, err
	}
	items := firstItems(data, "organic_results", "organic", "results")
	return Response{
		Records: NormalizeAll(items, w.Name()),
		Total:   totalResults(data),
	}, nil
}

// totalResults reads search_information.total_results, defaulting to 0.
func totalResults(data map[string]any) int {
	info, ok := data["search_information"].(map[string]any)
	if !ok {
		return 0
	}
	switch v := info["total_results"].(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case string:
		// some engines report "About 1,230,000 results (0.45 seconds)"
		digits := leadingNumber(v)
		if n, err := strconv.Atoi(digits); err == nil {
			return n
		}
	}
	return 0
}

// leadingNumber returns the digits of the first run of digits and thousands
// separators in s.
func leadingNumber(s string) string {
	start := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range s[start:] {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',':
		default:
			return b.String()
		}
	}
	return b.String()
}
