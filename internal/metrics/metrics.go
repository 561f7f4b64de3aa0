package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spine_db_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spine_db_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spine_db_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spine_db_db_queries_total",
			Help: "Total number of catalog database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spine_db_db_query_duration_seconds",
			Help:    "Catalog database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spine_db_db_connections_open",
			Help: "Number of open catalog database connections",
		},
	)
)

// Indexer metrics
var (
	IndexerRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spine_db_indexer_runs_total",
			Help: "Total number of indexing batches",
		},
	)

	IndexerLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spine_db_indexer_last_run_timestamp",
			Help: "Timestamp of the last indexing batch",
		},
	)

	IndexerLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spine_db_indexer_last_run_duration_seconds",
			Help: "Duration of the last indexing batch in seconds",
		},
	)

	IndexerFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spine_db_indexer_files_total",
			Help: "Files processed by the indexer, by outcome",
		},
		[]string{"outcome"}, // inserted, updated, skipped, failed
	)

	IndexerExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spine_db_indexer_extraction_duration_seconds",
			Help:    "Per-file metadata extraction duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	IndexerWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spine_db_indexer_workers",
			Help: "Number of extraction workers in the current batch",
		},
	)
)
