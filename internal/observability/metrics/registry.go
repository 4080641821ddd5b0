// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration buckets span fast cached lookups up to translator-bound searches.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Search metrics track the pairing engine
var (
	// SearchRequestsTotal counts search and listing calls by outcome: ok, invalid, degraded
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search and listing requests",
		},
		[]string{"operation", "outcome"},
	)

	// SearchDuration measures end-to-end usecase latency, translation included
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Search usecase duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	// SearchPairsTotal counts emitted pairs by how they were matched
	SearchPairsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_pairs_total",
			Help: "Total number of bilingual pairs returned",
		},
		[]string{"translation_source"},
	)

	// QueryTranslationTotal counts query expansion attempts by result:
	// success, error, empty, same, disabled
	QueryTranslationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_translation_total",
			Help: "Total number of query translation attempts",
		},
		[]string{"result"},
	)
)

// Catalog metrics are refreshed by the stats worker
var (
	QuotesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quotes_total",
			Help: "Total number of quotes in the database",
		},
	)

	BilingualGroupsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bilingual_groups_total",
			Help: "Number of distinct bilingual groups in the database",
		},
	)

	DBConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of database connections currently in use",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// Worker metrics track the scheduled stats refresh
var (
	WorkerJobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Total number of worker job runs by job and status",
		},
		[]string{"job", "status"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of worker job runs",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30},
		},
		[]string{"job"},
	)

	WorkerLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_last_success_timestamp_seconds",
			Help: "Unix time of the last successful worker job run",
		},
		[]string{"job"},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}
