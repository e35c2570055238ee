package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// SSL verification is enabled unless explicitly disabled.
func TestNewUpstreamHTTPClient_SSLVerifyEnabled(t *testing.T) {
	client := newUpstreamHTTPClient(time.Second, true)

	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", client.Transport)
	}
	if transport.TLSClientConfig != nil && transport.TLSClientConfig.InsecureSkipVerify {
		t.Errorf("expected SSL verification to be enabled, but InsecureSkipVerify=true")
	}
}

func TestNewUpstreamHTTPClient_SSLVerifyDisabled(t *testing.T) {
	client := newUpstreamHTTPClient(time.Second, false)

	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", client.Transport)
	}
	if transport.TLSClientConfig == nil || !transport.TLSClientConfig.InsecureSkipVerify {
		t.Errorf("expected InsecureSkipVerify=true when SSL verification is disabled")
	}
}

// A self-signed upstream is reachable only with verification disabled.
func TestNewUpstreamHTTPClient_SelfSignedUpstream(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if resp, err := newUpstreamHTTPClient(time.Second, true).Get(srv.URL); err == nil {
		_ = resp.Body.Close()
		t.Fatalf("expected certificate error with verification enabled")
	}
	resp, err := newUpstreamHTTPClient(time.Second, false).Get(srv.URL)
	if err != nil {
		t.Fatalf("expected success with verification disabled: %v", err)
	}
	_ = resp.Body.Close()
}

func TestInsecureSkipVerify_FromEnv(t *testing.T) {
	t.Setenv("SEARCH_INSECURE_SKIP_VERIFY", "true")
	var cfg Config
	ApplyEnvToConfig(&cfg)
	if !cfg.InsecureSkipVerify {
		t.Fatalf("expected InsecureSkipVerify from env")
	}
}
