// Package catalog provides relational storage for SPINE production-run
// metadata.
//
// It owns the spine_files table: one row per indexed output file,
// uniquely keyed by absolute file path. The same code runs against an
// embedded SQLite file (local testing) and a PostgreSQL server (shared
// multi-site deployments); the backend is selected from the connection
// URL. The unique constraint on file_path is the only concurrency
// control: concurrent indexers inserting the same path resolve to
// exactly one inserted row, with the losers observing a skip.
//
// Schema creation is a separate idempotent Setup operation; readers and
// writers verify the schema exists rather than creating it implicitly.
package catalog
