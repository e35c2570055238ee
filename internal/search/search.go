package search

import (
	"context"
)

// Record is the canonical shape every provider result is normalized into.
type Record struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
	Source  string `json:"source"` // provider tag, e.g. "google", "news", "twitter"
	Date    string `json:"date"`   // raw provider date, format not guaranteed
}

// Request is a single page request issued to one provider.
type Request struct {
	Query   string
	Page    int // 1-based
	PerPage int
	// OnlyAccounts narrows platform-scoped results to profile roots.
	// Providers that are not platform-scoped ignore it.
	OnlyAccounts bool
}

// Response holds the normalized records of one provider page and the
// provider's own estimate of the total number of results.
type Response struct {
	Records []Record
	Total   int
}

// Provider is the adapter contract for one upstream source.
type Provider interface {
	Search(ctx context.Context, req Request) (Response, error)
	Name() string
}

func (r Request) withDefaults() Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage < 1 {
		r.PerPage = 10
	}
	return r
}
