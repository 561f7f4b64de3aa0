package indexer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spine-db/internal/catalog"
	"spine-db/internal/extractor"
	"spine-db/internal/logging"
	"spine-db/internal/metrics"
	"spine-db/internal/workers"
)

// Options configures an ingestion batch.
type Options struct {
	// SkipExisting leaves files already in the catalog untouched.
	// When false, existing rows are overwritten with fresh metadata.
	SkipExisting bool
	// Workers is the extraction worker count (0 = auto based on CPU,
	// overridable with INDEX_WORKERS).
	Workers int
}

// DefaultOptions returns the standard batch configuration:
// skip-existing semantics with an auto-sized worker pool.
func DefaultOptions() Options {
	return Options{SkipExisting: true}
}

// Failure records one file that could not be ingested.
type Failure struct {
	Path string
	Err  error
}

// BatchResult is the accounting for one ingestion batch.
type BatchResult struct {
	Inserted int
	Updated  int
	Skipped  int
	Failed   int
	Failures []Failure
}

// Total returns the number of files the batch attempted.
func (r *BatchResult) Total() int {
	return r.Inserted + r.Updated + r.Skipped + r.Failed
}

func (r *BatchResult) String() string {
	return fmt.Sprintf("%d inserted, %d updated, %d skipped, %d failed",
		r.Inserted, r.Updated, r.Skipped, r.Failed)
}

// fileJob is one path queued for extraction.
type fileJob struct {
	path string
}

// fileResult is the extraction outcome for one path. Exactly one of
// rec/err is set unless the file was skipped without extraction.
type fileResult struct {
	path    string
	rec     *extractor.Record
	skipped bool
	err     error
}

// Indexer runs ingestion batches against a catalog.
type Indexer struct {
	store *catalog.Catalog
	opts  Options
}

// New creates an Indexer writing to the given catalog.
func New(store *catalog.Catalog, opts Options) *Indexer {
	return &Indexer{store: store, opts: opts}
}

// Index ingests the given file paths into the catalog. Per-file
// extraction failures are recorded in the result and do not stop the
// batch; a non-nil error means the batch itself failed (database
// unavailable, context canceled) and the result covers only the files
// processed up to that point.
func (ix *Indexer) Index(ctx context.Context, paths []string) (*BatchResult, error) {
	numWorkers := ix.opts.Workers
	if numWorkers <= 0 {
		numWorkers = workers.ForIO(16)
	}
	if numWorkers > len(paths) && len(paths) > 0 {
		numWorkers = len(paths)
	}

	logging.Info("Indexing %d files with %d workers (skip existing: %v)",
		len(paths), numWorkers, ix.opts.SkipExisting)
	startTime := time.Now()

	metrics.IndexerRunsTotal.Inc()
	metrics.IndexerWorkers.Set(float64(numWorkers))

	jobs := make(chan fileJob)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			ix.worker(ctx, id, jobs, results)
		}(i)
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- fileJob{path: path}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single writer: all catalog mutations happen here, in arrival
	// order. The unique index on file_path makes duplicate inputs
	// within one batch resolve to a single row regardless of order.
	result := &BatchResult{}
	var batchErr error
	for res := range results {
		if batchErr != nil {
			continue // drain
		}
		batchErr = ix.apply(ctx, res, result)
	}
	// A canceled batch is a batch failure, not a short success.
	if batchErr == nil && ctx.Err() != nil {
		batchErr = ctx.Err()
	}

	duration := time.Since(startTime)
	metrics.IndexerLastRunTimestamp.SetToCurrentTime()
	metrics.IndexerLastRunDuration.Set(duration.Seconds())

	logging.Info("Indexing complete in %v: %s", duration.Round(time.Millisecond), result)
	return result, batchErr
}

// worker extracts metadata for queued files. When skip-existing is in
// effect it consults the catalog first so already-ingested files never
// pay the extraction cost.
func (ix *Indexer) worker(ctx context.Context, id int, jobs <-chan fileJob, results chan<- fileResult) {
	logging.Debug("Extraction worker %d started", id)

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := fileResult{path: job.path}

		if ix.opts.SkipExisting {
			exists, err := ix.store.Exists(ctx, job.path)
			if err == nil && exists {
				res.skipped = true
				select {
				case results <- res:
				case <-ctx.Done():
					return
				}
				continue
			}
			// A failed existence check falls through to the upsert,
			// which settles it authoritatively.
		}

		extractStart := time.Now()
		rec, err := extractor.Extract(job.path)
		metrics.IndexerExtractionDuration.Observe(time.Since(extractStart).Seconds())

		res.rec, res.err = rec, err
		select {
		case results <- res:
		case <-ctx.Done():
			return
		}
	}

	logging.Debug("Extraction worker %d finished", id)
}

// apply folds one extraction result into the catalog and the batch
// accounting. Extraction errors are per-file; upsert errors fail the
// batch.
func (ix *Indexer) apply(ctx context.Context, res fileResult, result *BatchResult) error {
	if res.skipped {
		result.Skipped++
		metrics.IndexerFilesTotal.WithLabelValues("skipped").Inc()
		logging.Debug("SKIP %s (already cataloged)", res.path)
		return nil
	}
	if res.err != nil {
		result.Failed++
		result.Failures = append(result.Failures, Failure{Path: res.path, Err: res.err})
		metrics.IndexerFilesTotal.WithLabelValues("failed").Inc()
		logging.Warn("FAILED %s: %v", res.path, res.err)
		return nil
	}

	rec := toFileRecord(res.rec)
	outcome, err := ix.store.Upsert(ctx, rec, !ix.opts.SkipExisting)
	if err != nil {
		return fmt.Errorf("upserting %s: %w", rec.FilePath, err)
	}

	metrics.IndexerFilesTotal.WithLabelValues(outcome.String()).Inc()
	switch outcome {
	case catalog.OutcomeInserted:
		result.Inserted++
		logging.Debug("INSERTED %s", rec.FilePath)
	case catalog.OutcomeUpdated:
		result.Updated++
		logging.Debug("UPDATED %s", rec.FilePath)
	case catalog.OutcomeSkipped:
		result.Skipped++
		logging.Debug("SKIP %s (already cataloged)", rec.FilePath)
	}
	return nil
}

// toFileRecord maps an extraction record onto a catalog row.
func toFileRecord(rec *extractor.Record) *catalog.FileRecord {
	return &catalog.FileRecord{
		FilePath:         rec.FilePath,
		SpineVersion:     rec.SpineVersion,
		SpineProdVersion: rec.SpineProdVersion,
		ModelName:        rec.ModelName,
		DatasetName:      rec.DatasetName,
		Run:              rec.Run,
		Subrun:           rec.Subrun,
		EventMin:         rec.EventMin,
		EventMax:         rec.EventMax,
		NumEvents:        rec.NumEvents,
	}
}
