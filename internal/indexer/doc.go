// Package indexer drives batch ingestion of SPINE output files into
// the catalog.
//
// An ingestion run resolves its input set (explicit paths, glob
// patterns, list files), extracts metadata from each file with a
// worker pool, and upserts the results through a single database
// writer. Per-file failures are recorded in the batch result and never
// abort the run; only database-level errors are fatal.
package indexer
