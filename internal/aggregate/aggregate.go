package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/leadhunt/internal/search"
)

// MaxPerPage bounds Query.PerPage.
const MaxPerPage = 50

// ErrInvalidQuery is returned for out-of-range query parameters.
var ErrInvalidQuery = errors.New("invalid query")

// Query holds the parameters of one aggregate call.
type Query struct {
	Text         string
	Platforms    []string // processed in order; duplicates are searched again
	Page         int      // 1-based, applied per provider
	PerPage      int      // 1..MaxPerPage, applied per provider
	Sort         SortMode
	OnlyAccounts bool
}

// Validate checks bounds before any provider is called.
func (q Query) Validate() error {
	if q.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidQuery, q.Page)
	}
	if q.PerPage < 1 || q.PerPage > MaxPerPage {
		return fmt.Errorf("%w: per_page must be in [1,%d], got %d", ErrInvalidQuery, MaxPerPage, q.PerPage)
	}
	if _, err := ParseSortMode(string(q.Sort)); err != nil {
		return err
	}
	return nil
}

// Result is the merged, deduplicated, filtered and sorted page.
//
// Total sums the providers' own hints before dedup and filtering, so it is an
// upper-bound estimate rather than len(Items).
type Result struct {
	Items []search.Record
	Total int
}

// Lookup resolves platform names to providers.
type Lookup interface {
	Lookup(name string) (search.Provider, bool)
}

// Observer receives per-call measurements. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveProvider(platform string, elapsed time.Duration, records int, err error)
	ObserveAggregate(items, total int)
}

// Aggregator fans a query out to providers and runs the merge pipeline.
// It holds no per-request state and may be shared between goroutines.
type Aggregator struct {
	Providers Lookup
	Observer  Observer // optional
	Logger    *zerolog.Logger
}

// New returns an Aggregator over providers using the global logger.
func New(providers Lookup) *Aggregator {
	return &Aggregator{Providers: providers}
}

func (a *Aggregator) logger() *zerolog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return &log.Logger
}

// Aggregate queries each platform in order, then applies Dedupe,
// FilterByTerms and Sort. The first provider error aborts the call.
func (a *Aggregator) Aggregate(ctx context.Context, q Query) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}
	mode, _ := ParseSortMode(string(q.Sort))
	lg := a.logger()

	req := search.Request{Query: q.Text, Page: q.Page, PerPage: q.PerPage, OnlyAccounts: q.OnlyAccounts}
	var items []search.Record
	total := 0
	for _, platform := range q.Platforms {
		p, ok := a.Providers.Lookup(platform)
		if !ok {
			lg.Debug().Str("platform", platform).Msg("unknown platform ignored")
			continue
		}
		start := time.Now()
		resp, err := p.Search(ctx, req)
		elapsed := time.Since(start)
		if a.Observer != nil {
			a.Observer.ObserveProvider(platform, elapsed, len(resp.Records), err)
		}
		if err != nil {
			return Result{}, fmt.Errorf("search %s: %w", platform, err)
		}
		lg.Debug().Str("platform", platform).Int("records", len(resp.Records)).Int("total", resp.Total).Dur("elapsed", elapsed).Msg("provider page")
		items = append(items, resp.Records...)
		total += resp.Total
	}

	items = Dedupe(items)
	items = FilterByTerms(items, q.Text)
	items = Sort(items, mode)

	if a.Observer != nil {
		a.Observer.ObserveAggregate(len(items), total)
	}
	return Result{Items: items, Total: total}, nil
}
