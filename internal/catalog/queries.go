package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// rebind rewrites ?-style placeholders to the $n form PostgreSQL
// expects. Queries in this package are written with ? throughout.
func (c *Catalog) rebind(query string) string {
	if c.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Exists reports whether a row for filePath is already cataloged.
func (c *Catalog) Exists(ctx context.Context, filePath string) (bool, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("exists", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var one int
	err = c.db.QueryRowContext(ctx,
		c.rebind(`SELECT 1 FROM spine_files WHERE file_path = ? LIMIT 1`),
		filePath,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check for existing path: %w", err)
	}
	return true, nil
}

// Upsert proposes rec to the store. A new path is inserted. An existing
// path is left untouched (OutcomeSkipped) unless overwrite is set, in
// which case every extracted column is replaced by rec's values
// (OutcomeUpdated) while created_at keeps its original insertion time.
//
// The unique constraint on file_path arbitrates concurrent inserts: the
// conflict branch is how a losing writer observes "already exists", it
// is never surfaced as an error.
func (c *Catalog) Upsert(ctx context.Context, rec *FileRecord, overwrite bool) (RowOutcome, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("upsert", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.db.ExecContext(ctx, c.rebind(`
		INSERT INTO spine_files
			(file_path, spine_version, spine_prod_version, model_name, dataset_name,
			 run, subrun, event_min, event_max, num_events)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (file_path) DO NOTHING`),
		rec.FilePath,
		rec.SpineVersion,
		rec.SpineProdVersion,
		rec.ModelName,
		rec.DatasetName,
		rec.Run,
		rec.Subrun,
		rec.EventMin,
		rec.EventMax,
		rec.NumEvents,
	)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("failed to insert %s: %w", rec.FilePath, err)
	}

	if rows, raErr := res.RowsAffected(); raErr == nil && rows > 0 {
		return OutcomeInserted, nil
	}

	if !overwrite {
		return OutcomeSkipped, nil
	}

	return c.overwriteRow(ctx, rec)
}

// overwriteRow replaces every extracted column of an existing row.
// Full-record replace: fields the new extraction resolved to null are
// nulled out too.
func (c *Catalog) overwriteRow(ctx context.Context, rec *FileRecord) (RowOutcome, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("update", start, err) }()

	_, err = c.db.ExecContext(ctx, c.rebind(`
		UPDATE spine_files SET
			spine_version = ?,
			spine_prod_version = ?,
			model_name = ?,
			dataset_name = ?,
			run = ?,
			subrun = ?,
			event_min = ?,
			event_max = ?,
			num_events = ?
		WHERE file_path = ?`),
		rec.SpineVersion,
		rec.SpineProdVersion,
		rec.ModelName,
		rec.DatasetName,
		rec.Run,
		rec.Subrun,
		rec.EventMin,
		rec.EventMax,
		rec.NumEvents,
		rec.FilePath,
	)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("failed to overwrite %s: %w", rec.FilePath, err)
	}
	return OutcomeUpdated, nil
}

const selectColumns = `id, file_path, spine_version, spine_prod_version, model_name,
	dataset_name, run, subrun, event_min, event_max, num_events, created_at`

// filterClause builds the conjunctive WHERE clause for opts. An empty
// clause means no filters were requested.
func filterClause(opts QueryOptions) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if opts.SpineVersion != "" {
		conds = append(conds, "spine_version = ?")
		args = append(args, opts.SpineVersion)
	}
	if opts.ModelName != "" {
		conds = append(conds, "model_name = ?")
		args = append(args, opts.ModelName)
	}
	if opts.DatasetName != "" {
		conds = append(conds, "dataset_name = ?")
		args = append(args, opts.DatasetName)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Query returns cataloged rows matching opts, newest first.
func (c *Catalog) Query(ctx context.Context, opts QueryOptions) ([]FileRecord, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("query", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if opts.Limit < 1 {
		opts.Limit = DefaultQueryLimit
	}

	where, args := filterClause(opts)
	query := `SELECT ` + selectColumns + ` FROM spine_files` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, opts.Limit)

	rows, err := c.db.QueryContext(ctx, c.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var rec FileRecord
		if err = rows.Scan(
			&rec.ID, &rec.FilePath, &rec.SpineVersion, &rec.SpineProdVersion,
			&rec.ModelName, &rec.DatasetName, &rec.Run, &rec.Subrun,
			&rec.EventMin, &rec.EventMax, &rec.NumEvents, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}

// Get returns the row for filePath, or sql.ErrNoRows if absent.
func (c *Catalog) Get(ctx context.Context, filePath string) (*FileRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec FileRecord
	err := c.db.QueryRowContext(ctx,
		c.rebind(`SELECT `+selectColumns+` FROM spine_files WHERE file_path = ?`),
		filePath,
	).Scan(
		&rec.ID, &rec.FilePath, &rec.SpineVersion, &rec.SpineProdVersion,
		&rec.ModelName, &rec.DatasetName, &rec.Run, &rec.Subrun,
		&rec.EventMin, &rec.EventMax, &rec.NumEvents, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Count returns the number of rows matching opts' filters (the limit is
// ignored).
func (c *Catalog) Count(ctx context.Context, opts QueryOptions) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("count", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where, args := filterClause(opts)
	var count int64
	err = c.db.QueryRowContext(ctx,
		c.rebind(`SELECT COUNT(*) FROM spine_files`+where), args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

// CountAll returns the total number of cataloged rows.
func (c *Catalog) CountAll(ctx context.Context) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("count_all", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var count int64
	err = c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spine_files`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("total count query failed: %w", err)
	}
	return count, nil
}

// filterColumns whitelists the columns DistinctValues may touch.
var filterColumns = map[string]bool{
	"spine_version": true,
	"model_name":    true,
	"dataset_name":  true,
}

// DistinctValues returns the distinct non-null values of one of the
// filterable columns, sorted. Used to populate browser filter choices.
func (c *Catalog) DistinctValues(ctx context.Context, column string) ([]string, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("distinct", start, err) }()

	if !filterColumns[column] {
		err = fmt.Errorf("column %q is not filterable", column)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx,
		`SELECT DISTINCT `+column+` FROM spine_files WHERE `+column+` IS NOT NULL ORDER BY `+column)
	if err != nil {
		return nil, fmt.Errorf("distinct query failed: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err = rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
