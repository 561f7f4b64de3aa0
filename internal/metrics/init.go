package metrics

// InitializeMetrics pre-populates expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, outcome := range []string{"inserted", "updated", "skipped", "failed"} {
		IndexerFilesTotal.WithLabelValues(outcome)
	}

	for _, op := range []string{"setup", "verify", "exists", "upsert", "update",
		"query", "count", "count_all", "distinct"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}
}
