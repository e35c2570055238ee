package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hyperifyio/leadhunt/internal/aggregate"
	"github.com/hyperifyio/leadhunt/internal/metrics"
	"github.com/hyperifyio/leadhunt/internal/search"
)

type searcherStub struct {
	calls []aggregate.Query
	res   aggregate.Result
	err   error
}

func (s *searcherStub) Search(_ context.Context, q aggregate.Query) (aggregate.Result, error) {
	s.calls = append(s.calls, q)
	return s.res, s.err
}

// aggregatorSearcher serves /search straight from an Aggregator.
type aggregatorSearcher struct{ agg *aggregate.Aggregator }

func (a aggregatorSearcher) Search(ctx context.Context, q aggregate.Query) (aggregate.Result, error) {
	return a.agg.Aggregate(ctx, q)
}

func newTestServer(s Searcher, m *metrics.Metrics) *Server {
	gin.SetMode(gin.TestMode)
	lg := zerolog.Nop()
	opt := Options{Searcher: s, Logger: &lg}
	if m != nil {
		opt.Metrics = m
		opt.MetricsHandler = m.Handler()
	}
	return NewServer(opt)
}

func do(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(&searcherStub{}, nil), http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != `{"ok":true}` {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestSearch_Defaults(t *testing.T) {
	stub := &searcherStub{}
	w := do(t, newTestServer(stub, nil), http.MethodGet, "/search?q=golang")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(stub.calls) != 1 {
		t.Fatalf("expected one call, got %d", len(stub.calls))
	}
	q := stub.calls[0]
	if q.Page != 1 || q.PerPage != 10 || q.Sort != "" || q.OnlyAccounts {
		t.Fatalf("unexpected defaults: %+v", q)
	}
	if len(q.Platforms) != 1 || q.Platforms[0] != "google" {
		t.Fatalf("platforms=%v", q.Platforms)
	}
	var body SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Items == nil || body.Count != 0 {
		t.Fatalf("expected empty items array, got %+v", body)
	}
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Fatalf("items must serialize as []: %s", w.Body.String())
	}
}

func TestSearch_PlatformsRepeatedAndCommaSeparated(t *testing.T) {
	stub := &searcherStub{}
	w := do(t, newTestServer(stub, nil), http.MethodGet, "/search?q=x&platforms=google,News&platforms=twitter&platforms=")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	got := strings.Join(stub.calls[0].Platforms, "|")
	if got != "google|news|twitter" {
		t.Fatalf("platforms=%s", got)
	}
}

func TestSearch_WhitespaceQueryAcceptedVerbatim(t *testing.T) {
	stub := &searcherStub{}
	w := do(t, newTestServer(stub, nil), http.MethodGet, "/search?q=%20%20")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(stub.calls) != 1 || stub.calls[0].Text != "  " {
		t.Fatalf("query text not passed through: %+v", stub.calls)
	}
	var body SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Query != "  " {
		t.Fatalf("query echo=%q, want two spaces", body.Query)
	}

	w = do(t, newTestServer(stub, nil), http.MethodGet, "/search?q=%20golang%20")
	if w.Code != http.StatusOK || stub.calls[1].Text != " golang " {
		t.Fatalf("surrounding spaces must be kept: %d %+v", w.Code, stub.calls)
	}
}

func TestSearch_ValidationErrors(t *testing.T) {
	targets := []string{
		"/search",
		"/search?q=",
		"/search?q=x&page=0",
		"/search?q=x&page=abc",
		"/search?q=x&per_page=0",
		"/search?q=x&per_page=51",
		"/search?q=x&sort=oldest",
		"/search?q=x&only_accounts=maybe",
	}
	for _, target := range targets {
		stub := &searcherStub{}
		w := do(t, newTestServer(stub, nil), http.MethodGet, target)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, w.Code)
		}
		if len(stub.calls) != 0 {
			t.Fatalf("%s: searcher must not be called", target)
		}
		if !strings.Contains(w.Body.String(), `"error"`) {
			t.Fatalf("%s: missing error body: %s", target, w.Body.String())
		}
	}
}

func TestSearch_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&search.ConfigError{Err: search.ErrMissingAPIKey}, http.StatusInternalServerError},
		{fmt.Errorf("search google: %w", &search.UpstreamError{Provider: "google", StatusCode: 429, Err: errors.New("too many")}), http.StatusBadGateway},
		{fmt.Errorf("search news: %w", &search.UpstreamError{Provider: "news", Err: context.DeadlineExceeded}), http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := do(t, newTestServer(&searcherStub{err: tc.err}, nil), http.MethodGet, "/search?q=x")
		if w.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, w.Code)
		}
	}
}

func TestSearch_SimulatedEndToEnd(t *testing.T) {
	reg := search.NewRegistry(search.RegistryOptions{Client: &search.Client{Simulate: true}})
	m := metrics.New("leadhunt_test", "v", "c")
	agg := aggregate.New(reg)
	agg.Observer = m
	srv := newTestServer(aggregatorSearcher{agg: agg}, m)

	w := do(t, srv, http.MethodGet, "/search?q=golang&platforms=google,twitter&per_page=5&sort=newest&only_accounts=true")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Query != "golang" || body.Page != 1 || body.PerPage != 5 {
		t.Fatalf("echoed params wrong: %+v", body)
	}
	if body.Total != 246 {
		t.Fatalf("total=%d, want 246", body.Total)
	}
	// 5 web results plus the 3 odd-indexed profile roots on page 1.
	if body.Count != 8 || len(body.Items) != 8 {
		t.Fatalf("count=%d items=%d, want 8", body.Count, len(body.Items))
	}
	for i := 1; i < len(body.Items); i++ {
		if aggregate.Timestamp(body.Items[i-1].Date) < aggregate.Timestamp(body.Items[i].Date) {
			t.Fatalf("items not sorted newest first at %d", i)
		}
	}

	mw := do(t, srv, http.MethodGet, "/metrics")
	if mw.Code != http.StatusOK {
		t.Fatalf("metrics status %d", mw.Code)
	}
	if !strings.Contains(mw.Body.String(), `leadhunt_test_http_requests_total{method="GET",route="/search",status="200"} 1`) {
		t.Fatalf("http metric missing:\n%s", mw.Body.String())
	}
	if !strings.Contains(mw.Body.String(), `leadhunt_test_provider_requests_total{outcome="ok",platform="twitter"} 1`) {
		t.Fatalf("provider metric missing")
	}
}
