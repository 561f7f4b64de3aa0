// Package workers computes worker pool sizes for indexing tasks.
//
// Sizing respects container CPU limits via GOMAXPROCS and can be pinned
// with the INDEX_WORKERS environment variable.
package workers
