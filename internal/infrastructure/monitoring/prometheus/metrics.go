// Package prometheus registers and exposes the service's operational
// metrics: HTTP request counters/latency and dataset fetch/cache activity.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "country_innovation"

// DefaultHTTPDurationBuckets covers the expected latency range of a render:
// sub-millisecond cache hits up to multi-second cold dataset fetches.
var DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Metrics holds every metric the service emits.  A single instance is
// created at startup and injected into the HTTP middleware and the dataset
// cache.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Dataset layer
	DatasetFetchTotal    *prometheus.CounterVec
	DatasetFetchDuration *prometheus.HistogramVec
	DatasetCacheHits     *prometheus.CounterVec
	DatasetCacheMisses   *prometheus.CounterVec

	// Render layer
	ProfileRendersTotal *prometheus.CounterVec
}

// NewMetrics constructs and registers all service metrics on a private
// registry, keeping the default global registry untouched (important for
// tests that build multiple instances).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by method and route.",
			Buckets:   DefaultHTTPDurationBuckets,
		}, []string{"method", "route"}),
		DatasetFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_fetch_total",
			Help:      "Object-store dataset fetches by dataset key and outcome.",
		}, []string{"dataset", "outcome"}),
		DatasetFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_fetch_duration_seconds",
			Help:      "Object-store dataset fetch duration by dataset key.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"dataset"}),
		DatasetCacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_cache_hits_total",
			Help:      "Dataset cache hits by dataset key.",
		}, []string{"dataset"}),
		DatasetCacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_cache_misses_total",
			Help:      "Dataset cache misses by dataset key.",
		}, []string{"dataset"}),
		ProfileRendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_renders_total",
			Help:      "Profile renders by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DatasetFetchTotal,
		m.DatasetFetchDuration,
		m.DatasetCacheHits,
		m.DatasetCacheMisses,
		m.ProfileRendersTotal,
	)
	return m
}

// Handler returns the /metrics HTTP handler for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveFetch records one object-store fetch attempt.
func (m *Metrics) ObserveFetch(dataset, outcome string, elapsed time.Duration) {
	m.DatasetFetchTotal.WithLabelValues(dataset, outcome).Inc()
	m.DatasetFetchDuration.WithLabelValues(dataset).Observe(elapsed.Seconds())
}
