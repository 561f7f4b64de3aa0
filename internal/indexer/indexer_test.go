package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"spine-db/internal/catalog"
)

var hdf5Signature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	ctx := context.Background()

	c, err := catalog.Open(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("opening catalog: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	if err := c.Setup(ctx); err != nil {
		t.Fatalf("setting up schema: %v", err)
	}
	return c
}

// writeHDF5 creates a minimal file carrying the HDF5 signature.
func writeHDF5(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	buf := make([]byte, 64)
	copy(buf, hdf5Signature)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestIndexInsertsNewFiles(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()
	ctx := context.Background()

	paths := []string{
		writeHDF5(t, dir, "icarus_run1_v1.h5"),
		writeHDF5(t, dir, "icarus_run2_v1.h5"),
		writeHDF5(t, dir, "sbnd_run3_v2.h5"),
	}

	ix := New(c, DefaultOptions())
	result, err := ix.Index(ctx, paths)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if result.Inserted != 3 || result.Failed != 0 {
		t.Errorf("result = %s, want 3 inserted", result)
	}

	total, err := c.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll failed: %v", err)
	}
	if total != 3 {
		t.Errorf("catalog has %d rows, want 3", total)
	}
}

func TestIndexIsIdempotent(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()
	ctx := context.Background()

	paths := []string{
		writeHDF5(t, dir, "a_run1.h5"),
		writeHDF5(t, dir, "b_run2.h5"),
	}

	ix := New(c, DefaultOptions())
	if _, err := ix.Index(ctx, paths); err != nil {
		t.Fatalf("first Index failed: %v", err)
	}

	result, err := ix.Index(ctx, paths)
	if err != nil {
		t.Fatalf("second Index failed: %v", err)
	}
	if result.Skipped != 2 || result.Inserted != 0 {
		t.Errorf("second pass = %s, want 2 skipped", result)
	}

	total, _ := c.CountAll(ctx)
	if total != 2 {
		t.Errorf("catalog has %d rows after reindex, want 2", total)
	}
}

func TestIndexOverwriteUpdates(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()
	ctx := context.Background()

	paths := []string{writeHDF5(t, dir, "nd-lar_run5_v1.h5")}

	ix := New(c, DefaultOptions())
	if _, err := ix.Index(ctx, paths); err != nil {
		t.Fatalf("first Index failed: %v", err)
	}

	overwrite := New(c, Options{SkipExisting: false})
	result, err := overwrite.Index(ctx, paths)
	if err != nil {
		t.Fatalf("overwrite Index failed: %v", err)
	}
	if result.Updated != 1 {
		t.Errorf("overwrite pass = %s, want 1 updated", result)
	}

	total, _ := c.CountAll(ctx)
	if total != 1 {
		t.Errorf("catalog has %d rows after overwrite, want 1", total)
	}
}

func TestIndexDuplicateInputsYieldOneRow(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()
	ctx := context.Background()

	path := writeHDF5(t, dir, "fsd_run8.h5")
	paths := []string{path, path, path}

	ix := New(c, Options{SkipExisting: true, Workers: 4})
	result, err := ix.Index(ctx, paths)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if result.Total() != 3 {
		t.Errorf("accounted %d files, want 3", result.Total())
	}
	if result.Failed != 0 {
		t.Errorf("duplicates reported as failures: %s", result)
	}

	total, _ := c.CountAll(ctx)
	if total != 1 {
		t.Errorf("catalog has %d rows for one file, want 1", total)
	}
}

func TestIndexIsolatesPerFileFailures(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()
	ctx := context.Background()

	bad := filepath.Join(dir, "not_hdf5.h5")
	if err := os.WriteFile(bad, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	paths := []string{
		writeHDF5(t, dir, "good_run1.h5"),
		bad,
		filepath.Join(dir, "missing.h5"),
		writeHDF5(t, dir, "good_run2.h5"),
	}

	ix := New(c, DefaultOptions())
	result, err := ix.Index(ctx, paths)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if result.Inserted != 2 {
		t.Errorf("inserted %d, want 2", result.Inserted)
	}
	if result.Failed != 2 || len(result.Failures) != 2 {
		t.Errorf("failed %d (%d recorded), want 2", result.Failed, len(result.Failures))
	}

	total, _ := c.CountAll(ctx)
	if total != 2 {
		t.Errorf("catalog has %d rows, want 2", total)
	}
}

func TestIndexThenQuery(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()
	ctx := context.Background()

	bad := filepath.Join(dir, "c.h5")
	if err := os.WriteFile(bad, []byte("not hdf5"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	a := writeHDF5(t, dir, "icarus_bnb_run1_v1.h5")
	paths := []string{
		a,
		writeHDF5(t, dir, "sbnd_mc_run2_v1.h5"),
		bad,
	}

	ix := New(c, DefaultOptions())
	result, err := ix.Index(ctx, paths)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if result.Inserted != 2 || result.Failed != 1 {
		t.Fatalf("result = %s, want 2 inserted 1 failed", result)
	}

	records, err := c.Query(ctx, catalog.QueryOptions{ModelName: "icarus"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(records) != 1 || records[0].FilePath != a {
		t.Errorf("Query(model=icarus) = %+v, want only %s", records, a)
	}
	if records[0].SpineVersion == nil || *records[0].SpineVersion != "v1" {
		t.Errorf("SpineVersion = %v, want v1", records[0].SpineVersion)
	}
}

func TestIndexCanceledContextFailsBatch(t *testing.T) {
	// An interrupted run must not report success with partial
	// accounting.
	c := newTestCatalog(t)
	dir := t.TempDir()

	paths := []string{
		writeHDF5(t, dir, "icarus_run1.h5"),
		writeHDF5(t, dir, "icarus_run2.h5"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ix := New(c, DefaultOptions())
	result, err := ix.Index(ctx, paths)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Index error = %v, want context.Canceled", err)
	}
	if result == nil {
		t.Fatal("Index returned nil result")
	}
}

func TestIndexEmptyInput(t *testing.T) {
	c := newTestCatalog(t)

	ix := New(c, DefaultOptions())
	result, err := ix.Index(context.Background(), nil)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if result.Total() != 0 {
		t.Errorf("empty batch accounted %d files", result.Total())
	}
}
