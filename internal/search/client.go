package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBaseURL is the searchapi.io endpoint serving the google engines.
const DefaultBaseURL = "https://www.searchapi.io/api/v1/search"

// DefaultTimeout bounds a single upstream round trip.
const DefaultTimeout = 30 * time.Second

// Client is the transport shared by the engine-backed adapters. It issues one
// GET per call, or answers from the deterministic simulator when Simulate is
// set. A Client is safe for concurrent use once constructed.
type Client struct {
	BaseURL    string
	APIKey     string
	Simulate   bool
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string // optional
}

// Get performs the engine request described by params and returns the decoded
// JSON object. provider tags any UpstreamError.
func (c *Client) Get(ctx context.Context, provider string, params url.Values) (map[string]any, error) {
	if c.Simulate {
		return simulate(params), nil
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, &ConfigError{Err: ErrMissingAPIKey}
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("parse base url: %w", err)}
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.APIKey)
	u.RawQuery = q.Encode()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &UpstreamError{Provider: provider, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &UpstreamError{Provider: provider, StatusCode: resp.StatusCode}
	}
	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &UpstreamError{Provider: provider, Err: fmt.Errorf("decode response: %w", err)}
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func engineParams(engine string, req Request) url.Values {
	p := url.Values{}
	p.Set("engine", engine)
	p.Set("q", req.Query)
	p.Set("page", fmt.Sprintf("%d", req.Page))
	p.Set("num", fmt.Sprintf("%d", req.PerPage))
	return p
}

// firstItems returns the first populated array among keys.
func firstItems(data map[string]any, keys ...string) []map[string]any {
	for _, k := range keys {
		arr, ok := data[k].([]any)
		if !ok || len(arr) == 0 {
			continue
		}
		out := make([]map[string]any, 0, len(arr))
		for _, v := range arr {
			if m, ok := v.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
