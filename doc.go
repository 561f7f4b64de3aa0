// Command spine-db maintains and serves a catalog of SPINE
// reconstruction output files.
//
// The catalog is a single spine_files table in SQLite or PostgreSQL,
// keyed by absolute file path. Three subcommands cover the lifecycle:
//
//	spine-db setup  --db <url>              create the schema
//	spine-db inject --db <url> <files...>   extract metadata and catalog it
//	spine-db serve  --db <url>              run the browsing web server
//
// Injection is idempotent: re-running it over the same files leaves
// existing rows untouched unless --skip-existing=false asks for an
// overwrite. The browse server exposes a filterable JSON API over the
// catalog plus Prometheus metrics on a separate listener.
package main
