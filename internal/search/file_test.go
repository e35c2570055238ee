package search

import (
    "context"
    "errors"
    "math"
    "os"
    "path/filepath"
    "testing"
)

func TestFileProvider_PaginatesFixture(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "fixture.json")
    body := `[
      {"title": "One", "link": "https://a.example/1", "snippet": "first"},
      {"title": "Two", "url": "https://a.example/2", "description": "second"},
      {"title": "Three", "link": "https://a.example/3"}
    ]`
    if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
        t.Fatalf("write fixture: %v", err)
    }
    p := &FileProvider{Path: path}

    got, err := p.Search(context.Background(), Request{Query: "ignored", Page: 1, PerPage: 2})
    if err != nil {
        t.Fatalf("search: %v", err)
    }
    if got.Total != 3 || len(got.Records) != 2 {
        t.Fatalf("page 1: expected 2 records total 3, got %d/%d", len(got.Records), got.Total)
    }
    if got.Records[1].Snippet != "second" || got.Records[1].Source != "file" {
        t.Fatalf("unexpected record: %+v", got.Records[1])
    }

    got, _ = p.Search(context.Background(), Request{Page: 2, PerPage: 2})
    if len(got.Records) != 1 || got.Records[0].Title != "Three" {
        t.Fatalf("page 2: %+v", got.Records)
    }
    got, _ = p.Search(context.Background(), Request{Page: 5, PerPage: 2})
    if len(got.Records) != 0 {
        t.Fatalf("past the end should be empty, got %+v", got.Records)
    }
}

func TestFileProvider_MissingFileIsConfigError(t *testing.T) {
    p := &FileProvider{Path: filepath.Join(t.TempDir(), "missing.json")}
    _, err := p.Search(context.Background(), Request{})
    var ce *ConfigError
    if !errors.As(err, &ce) || !errors.Is(err, os.ErrNotExist) {
        t.Fatalf("expected ConfigError wrapping not-exist, got %v", err)
    }
}

func TestFileProvider_HugePageIsEmpty(t *testing.T) {
    path := filepath.Join(t.TempDir(), "fixture.json")
    if err := os.WriteFile(path, []byte(`[{"title": "One", "link": "https://a.example/1"}]`), 0o644); err != nil {
        t.Fatalf("write fixture: %v", err)
    }
    p := &FileProvider{Path: path}
    for _, req := range []Request{
        {Page: math.MaxInt64, PerPage: 50},
        {Page: math.MaxInt64 / 2, PerPage: 3},
        {Page: 1, PerPage: math.MaxInt64},
    } {
        got, err := p.Search(context.Background(), req)
        if err != nil {
            t.Fatalf("page %d/%d: %v", req.Page, req.PerPage, err)
        }
        if got.Total != 1 {
            t.Fatalf("total=%d, want 1", got.Total)
        }
        if req.Page == 1 && len(got.Records) != 1 {
            t.Fatalf("first page with huge per_page should hold the item, got %d", len(got.Records))
        }
        if req.Page > 1 && len(got.Records) != 0 {
            t.Fatalf("page %d should be empty, got %d", req.Page, len(got.Records))
        }
    }
}

func TestPageBounds(t *testing.T) {
    cases := []struct{ n, page, per, start, end int }{
        {3, 1, 2, 0, 2},
        {3, 2, 2, 2, 3},
        {3, 3, 2, 3, 3},
        {4, 3, 2, 4, 4},
        {0, 1, 10, 0, 0},
        {5, math.MaxInt, 10, 5, 5},
    }
    for _, c := range cases {
        s, e := pageBounds(c.n, c.page, c.per)
        if s != c.start || e != c.end {
            t.Fatalf("pageBounds(%d,%d,%d)=%d,%d want %d,%d", c.n, c.page, c.per, s, e, c.start, c.end)
        }
    }
}
