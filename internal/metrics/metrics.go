package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyperifyio/leadhunt/internal/search"
)

// Metrics owns a private Prometheus registry so several instances can coexist
// in one process (tests, multiple servers).
type Metrics struct {
	reg *prometheus.Registry

	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	providerRecords  *prometheus.CounterVec
	aggregateItems   prometheus.Histogram
	aggregateTotal   prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	serviceInfo  *prometheus.GaugeVec
}

// New builds and registers all collectors under namespace.
func New(namespace, version, commit string) *Metrics {
	ns := strings.ReplaceAll(namespace, "-", "_")
	m := &Metrics{reg: prometheus.NewRegistry()}

	m.providerRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "provider_requests_total",
		Help:      "Provider calls by platform and outcome.",
	}, []string{"platform", "outcome"})
	m.providerDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "provider_request_duration_seconds",
		Help:      "Provider call latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"platform"})
	m.providerRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "provider_records_total",
		Help:      "Normalized records returned by providers before dedup and filtering.",
	}, []string{"platform"})
	m.aggregateItems = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "aggregate_items",
		Help:      "Items returned per aggregate call after dedup and filtering.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})
	m.aggregateTotal = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "aggregate_total_estimate",
		Help:      "Summed provider total hints per aggregate call.",
		Buckets:   prometheus.ExponentialBuckets(1, 10, 8),
	})
	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	m.serviceInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: ns,
		Name:      "service_info",
		Help:      "Build information.",
	}, []string{"version", "commit"})

	m.reg.MustRegister(
		m.providerRequests, m.providerDuration, m.providerRecords,
		m.aggregateItems, m.aggregateTotal,
		m.httpRequests, m.httpDuration, m.serviceInfo,
		collectors.NewGoCollector(),
	)
	m.serviceInfo.WithLabelValues(version, commit).Set(1)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveProvider implements aggregate.Observer.
func (m *Metrics) ObserveProvider(platform string, elapsed time.Duration, records int, err error) {
	m.providerRequests.WithLabelValues(platform, outcome(err)).Inc()
	m.providerDuration.WithLabelValues(platform).Observe(elapsed.Seconds())
	if err == nil {
		m.providerRecords.WithLabelValues(platform).Add(float64(records))
	}
}

// ObserveAggregate implements aggregate.Observer.
func (m *Metrics) ObserveAggregate(items, total int) {
	m.aggregateItems.Observe(float64(items))
	m.aggregateTotal.Observe(float64(total))
}

// ObserveHTTP records one served request. route should be the matched
// pattern, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	var ce *search.ConfigError
	var ue *search.UpstreamError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ce):
		return "config_error"
	case errors.As(err, &ue):
		return "upstream_error"
	default:
		return "error"
	}
}
