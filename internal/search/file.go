package search

import (
    "context"
    "errors"
    "fmt"
    "os"
    "strings"
)

// FileProvider serves raw provider-shaped items from a local JSON fixture for
// offline demos. The file is an array of objects using any of the keys the
// normalizer understands, e.g. {"title": "...", "link": "...", "snippet": "..."}.
// Pages are sliced locally; the total hint is the number of items in the file.
type FileProvider struct {
    Path string
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Search(_ context.Context, req Request) (Response, error) {
    if strings.TrimSpace(f.Path) == "" {
        return Response{}, &ConfigError{Err: errors.New("file provider path is empty")}
    }
    b, err := os.ReadFile(f.Path)
    if err != nil {
        return Response{}, &ConfigError{Err: fmt.Errorf("read fixture: %w", err)}
    }
    var raw []map[string]any
    if err := json.Unmarshal(b, &raw); err != nil {
        return Response{}, &ConfigError{Err: fmt.Errorf("parse fixture %s: %w", f.Path, err)}
    }
    req = req.withDefaults()
    start, end := pageBounds(len(raw), req.Page, req.PerPage)
    return Response{
        Records: NormalizeAll(raw[start:end], f.Name()),
        Total:   len(raw),
    }, nil
}

// pageBounds returns the slice bounds of a 1-based page over n items without
// overflowing for very large page or perPage values.
func pageBounds(n, page, perPage int) (int, int) {
    if page-1 > n/perPage {
        return n, n
    }
    start := (page - 1) * perPage
    if start > n {
        start = n
    }
    if perPage > n-start {
        return start, n
    }
    return start, start + perPage
}
