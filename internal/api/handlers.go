package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hyperifyio/leadhunt/internal/aggregate"
	"github.com/hyperifyio/leadhunt/internal/search"
)

// Defaults for omitted query parameters.
const (
	DefaultPlatform = "google"
	DefaultPage     = 1
	DefaultPerPage  = 10
)

// Searcher runs one aggregate query.
type Searcher interface {
	Search(ctx context.Context, q aggregate.Query) (aggregate.Result, error)
}

// SearchResponse is the body of a successful GET /search.
type SearchResponse struct {
	Query   string          `json:"query"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Total   int             `json:"total"`
	Count   int             `json:"count"`
	Items   []search.Record `json:"items"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleSearch(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.searcher.Search(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	items := res.Items
	if items == nil {
		items = []search.Record{}
	}
	c.JSON(http.StatusOK, SearchResponse{
		Query:   q.Text,
		Page:    q.Page,
		PerPage: q.PerPage,
		Total:   res.Total,
		Count:   len(items),
		Items:   items,
	})
}

// parseQuery reads and validates the /search parameters.
func parseQuery(c *gin.Context) (aggregate.Query, error) {
	q := aggregate.Query{
		Text:    c.Query("q"),
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
	}
	// Whitespace-only text is a valid query that keeps every record.
	if q.Text == "" {
		return q, fmt.Errorf("%w: q is required", aggregate.ErrInvalidQuery)
	}

	q.Platforms = parsePlatforms(c.QueryArray("platforms"))
	if len(q.Platforms) == 0 {
		q.Platforms = []string{DefaultPlatform}
	}

	var err error
	if q.Page, err = intParam(c, "page", DefaultPage); err != nil {
		return q, err
	}
	if q.PerPage, err = intParam(c, "per_page", DefaultPerPage); err != nil {
		return q, err
	}
	if q.Sort, err = aggregate.ParseSortMode(c.Query("sort")); err != nil {
		return q, err
	}
	if s := strings.TrimSpace(c.Query("only_accounts")); s != "" {
		if q.OnlyAccounts, err = strconv.ParseBool(s); err != nil {
			return q, fmt.Errorf("%w: only_accounts must be a boolean, got %q", aggregate.ErrInvalidQuery, s)
		}
	}
	return q, q.Validate()
}

// parsePlatforms accepts repeated and comma-separated values, in order.
func parsePlatforms(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func intParam(c *gin.Context, name string, def int) (int, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", aggregate.ErrInvalidQuery, name, s)
	}
	return n, nil
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var ce *search.ConfigError
	var ue *search.UpstreamError
	switch {
	case errors.Is(err, aggregate.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &ce):
		return http.StatusInternalServerError
	case errors.As(err, &ue):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
