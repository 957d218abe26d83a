// Package metrics holds the Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bourbonvault/backend/internal/domain"
)

const namespace = "bourbonvault"

// Metrics groups every collector registered on one registry
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	RecommendationsTotal  *prometheus.CounterVec
	RecommendationResults *prometheus.HistogramVec
	MarkupRecordsAnalyzed prometheus.Gauge
	RateLimitedTotal      prometheus.Counter
}

// New creates the collectors on a fresh registry, plus the Go and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		),

		RecommendationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommendations_total",
				Help:      "Recommendation rankings served, by mode and whether they came from cache",
			},
			[]string{"mode", "cached"},
		),

		RecommendationResults: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recommendation_results",
				Help:      "Number of positively scored items per ranking",
				Buckets:   []float64{0, 1, 2, 4, 8, 12, 25, 50, 100},
			},
			[]string{"mode"},
		),

		MarkupRecordsAnalyzed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "markup_records_analyzed",
			Help:      "Catalog entries with parseable MSRP and secondary price in the last markup report",
		}),

		RateLimitedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-IP rate limiter",
		}),
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one finished request
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecommendationComputed implements usecase.Observer
func (m *Metrics) RecommendationComputed(mode domain.RecommendationMode, cached bool, results int) {
	m.RecommendationsTotal.WithLabelValues(string(mode), strconv.FormatBool(cached)).Inc()
	m.RecommendationResults.WithLabelValues(string(mode)).Observe(float64(results))
}

// MarkupReportBuilt implements usecase.Observer
func (m *Metrics) MarkupReportBuilt(records int) {
	m.MarkupRecordsAnalyzed.Set(float64(records))
}
