// Package metrics defines Prometheus metrics for the spine-db catalog.
//
// All metrics are registered with the default registry using promauto.
// To expose them, mount promhttp.Handler() on an HTTP mux:
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// Metric families:
//   - spine_db_http_*: request counts, durations, in-flight gauge
//   - spine_db_db_*: query counts/durations, open connections
//   - spine_db_indexer_*: batch runs, per-file outcomes, durations
package metrics
