package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spine-db/internal/catalog"
	"spine-db/internal/indexer"
	"spine-db/internal/logging"
)

// runInject implements the inject command: resolve the input file set,
// extract metadata, and upsert it into the catalog.
func runInject(args []string) {
	fs := flag.NewFlagSet("inject", flag.ExitOnError)
	dbFlag := fs.String("db", "", "catalog database URL or SQLite path (default: DATABASE_URL)")
	sourceList := fs.String("source-list", "", "file with one path or glob per line")
	skipExisting := fs.Bool("skip-existing", true, "leave already-cataloged files untouched (false overwrites)")
	workerCount := fs.Int("workers", 0, "extraction workers (0 = auto)")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, `Usage: spine-db inject [flags] <file|glob>...

Extracts metadata from SPINE HDF5 output files and upserts it into the
catalog. Paths may be explicit files or glob patterns; --source-list
adds paths from a file. Per-file failures are reported and do not stop
the batch.

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	inputs := fs.Args()
	if *sourceList != "" {
		listed, err := indexer.ReadListFile(*sourceList)
		if err != nil {
			logging.Fatal("inject: %v", err)
		}
		inputs = append(inputs, listed...)
	}
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "inject: no input files given")
		fs.Usage()
		os.Exit(2)
	}

	dbURL, err := databaseURL(*dbFlag)
	if err != nil {
		logging.Fatal("inject: %v", err)
	}

	paths, err := indexer.Resolve(inputs)
	if err != nil {
		logging.Fatal("inject: %v", err)
	}
	if len(paths) == 0 {
		logging.Warn("inject: input patterns matched no files")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := catalog.Open(ctx, dbURL)
	if err != nil {
		logging.Fatal("inject: %v", err)
	}
	defer store.Close()

	if err := store.Verify(ctx); err != nil {
		logging.Fatal("inject: %v", err)
	}

	ix := indexer.New(store, indexer.Options{
		SkipExisting: *skipExisting,
		Workers:      *workerCount,
	})

	result, err := ix.Index(ctx, paths)
	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", failure.Path, failure.Err)
	}
	fmt.Printf("inject: %s\n", result)
	if err != nil {
		logging.Fatal("inject: batch aborted: %v", err)
	}
}
