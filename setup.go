package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"spine-db/internal/catalog"
	"spine-db/internal/logging"
)

// runSetup implements the setup command: create the catalog schema.
func runSetup(args []string) {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)
	dbFlag := fs.String("db", "", "catalog database URL or SQLite path (default: DATABASE_URL)")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	dbURL, err := databaseURL(*dbFlag)
	if err != nil {
		logging.Fatal("setup: %v", err)
	}

	ctx := context.Background()
	logging.Info("Setting up catalog schema at %s", catalog.MaskURL(dbURL))

	store, err := catalog.Open(ctx, dbURL)
	if err != nil {
		logging.Fatal("setup: %v", err)
	}
	defer store.Close()

	if err := store.Setup(ctx); err != nil {
		logging.Fatal("setup: %v", err)
	}

	tables, err := store.Tables(ctx)
	if err != nil {
		logging.Warn("setup: could not list tables: %v", err)
		return
	}
	fmt.Printf("setup: tables present: %s\n", strings.Join(tables, ", "))
}
