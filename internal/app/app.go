package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/leadhunt/internal/aggregate"
	"github.com/hyperifyio/leadhunt/internal/metrics"
	"github.com/hyperifyio/leadhunt/internal/search"
)

// App wires configuration, the provider registry, the aggregator and the
// metrics collectors. It is safe for concurrent use once built.
type App struct {
	cfg      Config
	registry *search.Registry
	agg      *aggregate.Aggregator
	metrics  *metrics.Metrics
	http     *http.Client
}

// New validates cfg, applies defaults and builds the pipeline.
func New(cfg Config) (*App, error) {
	cfg = cfg.WithDefaults()
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	hc := newUpstreamHTTPClient(cfg.Timeout, !cfg.InsecureSkipVerify)
	client := &search.Client{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Simulate:   cfg.Simulate,
		Timeout:    cfg.Timeout,
		HTTPClient: hc,
		UserAgent:  cfg.UserAgent,
	}
	registry := search.NewRegistry(search.RegistryOptions{
		Client:      client,
		Sites:       cfg.Sites,
		FixturePath: cfg.FixturePath,
	})
	m := metrics.New("leadhunt", BuildVersion, BuildCommit)
	agg := aggregate.New(registry)
	agg.Observer = m

	if cfg.InsecureSkipVerify {
		log.Warn().Msg("TLS verification disabled for upstream search requests")
	}
	if cfg.Simulate {
		log.Info().Msg("simulation mode: upstream search API is not contacted")
	} else if cfg.APIKey == "" {
		log.Warn().Msg("no search API key configured; engine-backed platforms will fail")
	}
	log.Debug().Strs("platforms", registry.Names()).Str("base_url", cfg.BaseURL).Dur("timeout", cfg.Timeout).Msg("search providers ready")

	return &App{cfg: cfg, registry: registry, agg: agg, metrics: m, http: hc}, nil
}

// Search runs one aggregate query.
func (a *App) Search(ctx context.Context, q aggregate.Query) (aggregate.Result, error) {
	if a == nil || a.agg == nil {
		return aggregate.Result{}, fmt.Errorf("app not initialized")
	}
	return a.agg.Aggregate(ctx, q)
}

// Probe queries a single provider directly, skipping dedup, filtering and
// sorting.
func (a *App) Probe(ctx context.Context, platform string, req search.Request) (search.Response, error) {
	p, ok := a.registry.Lookup(platform)
	if !ok {
		return search.Response{}, fmt.Errorf("unknown platform %q (have %v)", platform, a.registry.Names())
	}
	return p.Search(ctx, req)
}

// Platforms lists the registered platform names.
func (a *App) Platforms() []string { return a.registry.Names() }

// Metrics returns the collectors shared with the HTTP layer.
func (a *App) Metrics() *metrics.Metrics { return a.metrics }

// Config returns the effective configuration after defaults.
func (a *App) Config() Config { return a.cfg }

// Close releases idle upstream connections.
func (a *App) Close() {
	if a != nil && a.http != nil {
		a.http.CloseIdleConnections()
	}
}
