package app

import (
	"time"

	"github.com/hyperifyio/leadhunt/internal/search"
)

// Defaults applied by WithDefaults for fields left unset by file, env and flags.
const (
	DefaultListenAddr = ":8000"
	DefaultUserAgent  = "leadhunt/1.0 (+https://github.com/hyperifyio/leadhunt)"
	DefaultTimeout    = search.DefaultTimeout
)

// Config holds runtime configuration for the application.
type Config struct {
	// Search upstream
	APIKey    string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// InsecureSkipVerify disables TLS verification for self-hosted upstreams
	// behind self-signed certificates.
	InsecureSkipVerify bool
	// Simulate answers every engine request from the deterministic offline
	// generator; no API key is needed.
	Simulate bool

	// Providers
	FixturePath string            // enables the "file" platform
	Sites       map[string]string // extra platform -> domain pairs

	// Server
	ListenAddr string

	// Behavior
	Verbose bool
}

// WithDefaults returns a copy of cfg with zero fields set to defaults.
func (cfg Config) WithDefaults() Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = search.DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	return cfg
}
