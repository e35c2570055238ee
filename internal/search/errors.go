package search

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is reported when a real upstream call is attempted without
// a credential and simulation mode is off.
var ErrMissingAPIKey = errors.New("missing search api key (set SEARCHAPI_IO_KEY)")

// ConfigError is a fatal configuration problem discovered at first use.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "search config: " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// UpstreamError reports a transport failure or a non-2xx response from a
// provider. StatusCode is zero for transport failures.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s upstream status: %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s upstream: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
