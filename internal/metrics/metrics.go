package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the airports API
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec
	RateLimitedTotal     prometheus.Counter
	RateLimitClients     prometheus.Gauge
	PanicsRecoveredTotal prometheus.Counter

	// Dataset Metrics
	DatasetAirports     prometheus.Gauge
	DatasetLoadSeconds  prometheus.Gauge
	DatasetLoadFailures prometheus.Counter

	// Query Metrics
	QueryResultSize *prometheus.HistogramVec
}

// NewMetricsRegistry creates all metrics and registers them with reg.
// Passing prometheus.DefaultRegisterer exposes them on promhttp.Handler().
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airports_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airports_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airports_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "airports_http_rate_limited_total",
				Help: "Requests rejected by the per-client rate limiter",
			},
		),
		RateLimitClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "airports_http_rate_limit_clients",
				Help: "Client IPs currently holding a rate limit bucket",
			},
		),
		PanicsRecoveredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "airports_http_panics_recovered_total",
				Help: "Handler panics converted to 500 responses",
			},
		),

		// Dataset Metrics
		DatasetAirports: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "airports_dataset_records",
				Help: "Number of airports held in memory",
			},
		),
		DatasetLoadSeconds: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "airports_dataset_load_seconds",
				Help: "Time taken to parse the airports table",
			},
		),
		DatasetLoadFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "airports_dataset_load_failures_total",
				Help: "Failed attempts to load the airports table",
			},
		),

		// Query Metrics
		QueryResultSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airports_query_result_size",
				Help:    "Number of airports returned per query",
				Buckets: []float64{0, 1, 5, 10, 25, 50},
			},
			[]string{"query"},
		),
	}
}
