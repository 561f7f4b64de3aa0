package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeFixture creates a file whose contents start with the HDF5
// signature at the given offset, padded with zeros before it.
func writeFixture(t *testing.T, name string, offset int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	buf := make([]byte, offset+len(hdf5Signature)+16)
	copy(buf[offset:], hdf5Signature)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestExtractSparseFileSucceeds(t *testing.T) {
	// A file carrying only the signature has no readable metadata, but
	// that is not an error.
	path := writeFixture(t, "icarus_run2_data_run00123_subrun4_v2.1.0.h5", 0)

	rec, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if rec.FilePath != path {
		t.Errorf("FilePath = %q, want %q", rec.FilePath, path)
	}
	if rec.Subrun == nil || *rec.Subrun != 4 {
		t.Errorf("Subrun = %v, want 4", rec.Subrun)
	}
	if rec.SpineVersion == nil || *rec.SpineVersion != "v2.1.0" {
		t.Errorf("SpineVersion = %v, want v2.1.0", rec.SpineVersion)
	}
	if rec.ModelName == nil || *rec.ModelName != "icarus" {
		t.Errorf("ModelName = %v, want icarus", rec.ModelName)
	}
}

func TestExtractBareFileYieldsOnlyPath(t *testing.T) {
	path := writeFixture(t, "output.h5", 0)

	rec, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if rec.FilePath == "" {
		t.Error("FilePath not populated")
	}
	if rec.SpineVersion != nil || rec.ModelName != nil || rec.DatasetName != nil ||
		rec.Run != nil || rec.NumEvents != nil {
		t.Errorf("bare file produced metadata: %+v", rec)
	}
}

func TestExtractUserblockSignature(t *testing.T) {
	path := writeFixture(t, "userblock.h5", 512)

	if _, err := Extract(path); err != nil {
		t.Fatalf("Extract failed on userblock file: %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "no-such-file.h5"))
	if err == nil {
		t.Fatal("Extract succeeded on a missing file")
	}

	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("error is %T, want *ExtractionError", err)
	}
	if xerr.Kind != KindUnreadable {
		t.Errorf("Kind = %v, want unreadable", xerr.Kind)
	}
}

func TestExtractDirectory(t *testing.T) {
	// A directory opens fine but cannot hold an HDF5 file; it is an I/O
	// failure, not a malformed file.
	_, err := Extract(t.TempDir())
	if err == nil {
		t.Fatal("Extract succeeded on a directory")
	}

	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("error is %T, want *ExtractionError", err)
	}
	if xerr.Kind != KindUnreadable {
		t.Errorf("Kind = %v, want unreadable", xerr.Kind)
	}
}

func TestExtractNotHDF5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.h5")
	if err := os.WriteFile(path, []byte("this is a plain text file, not HDF5 data"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	_, err := Extract(path)
	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("error is %T, want *ExtractionError", err)
	}
	if xerr.Kind != KindMalformed {
		t.Errorf("Kind = %v, want malformed", xerr.Kind)
	}
}

func TestExtractTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.h5")
	if err := os.WriteFile(path, []byte{0x89, 'H'}, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	_, err := Extract(path)
	var xerr *ExtractionError
	if !errors.As(err, &xerr) || xerr.Kind != KindMalformed {
		t.Fatalf("truncated file: got %v, want malformed ExtractionError", err)
	}
}

func TestMergePrefersEarlierStrategy(t *testing.T) {
	v1, v2 := "v1", "v2"
	run := int64(7)

	dst := Record{SpineVersion: &v1}
	merge(&dst, Record{SpineVersion: &v2, Run: &run})

	if *dst.SpineVersion != "v1" {
		t.Errorf("merge overwrote SpineVersion: %s", *dst.SpineVersion)
	}
	if dst.Run == nil || *dst.Run != 7 {
		t.Errorf("merge did not fill Run: %v", dst.Run)
	}
}

func TestErrorKindString(t *testing.T) {
	if KindUnreadable.String() != "unreadable" || KindMalformed.String() != "malformed" {
		t.Errorf("ErrorKind strings: %s, %s", KindUnreadable, KindMalformed)
	}
}
