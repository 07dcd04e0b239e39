// Package metrics exposes pipeline and HTTP counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "minebench"

// PrometheusMetrics implements ports.Metrics. All collectors live in their
// own registry so several instances can coexist in tests.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	droppedRecords  *prometheus.CounterVec
	sourceFailures  *prometheus.CounterVec
	staleSuppressed *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		droppedRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_dropped_total",
				Help:      "Raw benchmark records rejected by the normalizer.",
			},
			[]string{"source"},
		),
		sourceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "source_failures_total",
				Help:      "Failed reads from an upstream source.",
			},
			[]string{"source"},
		),
		staleSuppressed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stale_results_suppressed_total",
				Help:      "Computed snapshots discarded because a newer one was already applied.",
			},
			[]string{"view"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (pm *PrometheusMetrics) RecordDropped(source string, n int) {
	if n <= 0 {
		return
	}
	pm.droppedRecords.WithLabelValues(source).Add(float64(n))
}

func (pm *PrometheusMetrics) RecordSourceFailure(source string) {
	pm.sourceFailures.WithLabelValues(source).Inc()
}

func (pm *PrometheusMetrics) RecordStaleSuppressed(view string) {
	pm.staleSuppressed.WithLabelValues(view).Inc()
}

// ObserveRequest records one served HTTP request. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (pm *PrometheusMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	pm.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	pm.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (pm *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(pm.registry, promhttp.HandlerOpts{Registry: pm.registry})
}

func (pm *PrometheusMetrics) Registry() *prometheus.Registry {
	return pm.registry
}
