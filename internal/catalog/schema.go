package catalog

import (
	"context"
	"fmt"
	"time"

	"spine-db/internal/logging"
)

// DDL per dialect. Everything is IF NOT EXISTS so Setup can run any
// number of times without touching existing data or duplicating
// indices.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS spine_files (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file_path TEXT NOT NULL UNIQUE,
	spine_version TEXT,
	spine_prod_version TEXT,
	model_name TEXT,
	dataset_name TEXT,
	run INTEGER,
	subrun INTEGER,
	event_min INTEGER,
	event_max INTEGER,
	num_events INTEGER,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS spine_files (
	id BIGSERIAL PRIMARY KEY,
	file_path TEXT NOT NULL UNIQUE,
	spine_version TEXT,
	spine_prod_version TEXT,
	model_name TEXT,
	dataset_name TEXT,
	run BIGINT,
	subrun BIGINT,
	event_min BIGINT,
	event_max BIGINT,
	num_events BIGINT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Index DDL is identical across both engines.
const schemaIndices = `
CREATE INDEX IF NOT EXISTS idx_spine_files_created_at ON spine_files(created_at);
CREATE INDEX IF NOT EXISTS idx_spine_files_model_name ON spine_files(model_name);
CREATE INDEX IF NOT EXISTS idx_spine_files_dataset_name ON spine_files(dataset_name);
CREATE INDEX IF NOT EXISTS idx_spine_files_run ON spine_files(run);
CREATE INDEX IF NOT EXISTS idx_spine_files_subrun ON spine_files(subrun);
`

// Setup creates the spine_files table and its indices. Safe to invoke
// repeatedly.
func (c *Catalog) Setup(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("setup", start, err) }()

	schema := schemaSQLite
	if c.dialect == dialectPostgres {
		schema = schemaPostgres
	}

	if _, err = c.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create spine_files table: %w", err)
	}
	if _, err = c.db.ExecContext(ctx, schemaIndices); err != nil {
		return fmt.Errorf("failed to create spine_files indices: %w", err)
	}

	logging.Info("Catalog schema ready (spine_files)")
	return nil
}

// Verify checks that the spine_files table exists. A reachable database
// without the table yields ErrSchemaMissing, so callers can distinguish
// a missing setup step from a connection problem.
func (c *Catalog) Verify(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("verify", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var present bool
	switch c.dialect {
	case dialectPostgres:
		err = c.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'spine_files')`,
		).Scan(&present)
	default:
		var count int
		err = c.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'spine_files'`,
		).Scan(&count)
		present = count > 0
	}

	if err != nil {
		return fmt.Errorf("failed to inspect catalog schema: %w", err)
	}
	if !present {
		err = fmt.Errorf("%w (run \"spine-db setup --db %s\")", ErrSchemaMissing, MaskURL(c.url))
		return err
	}
	return nil
}

// Tables lists the user tables present in the database. Used by the
// setup command to confirm what was created.
func (c *Catalog) Tables(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	if c.dialect == dialectPostgres {
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name`
	}

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}
