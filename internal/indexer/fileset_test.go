package indexer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePassesPlainPathsThrough(t *testing.T) {
	inputs := []string{"/data/a.h5", "/data/does-not-exist.h5"}

	paths, err := Resolve(inputs)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/data/a.h5" || paths[1] != "/data/does-not-exist.h5" {
		t.Errorf("Resolve = %v", paths)
	}
}

func TestResolveExpandsGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"run1.h5", "run2.h5", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}

	paths, err := Resolve([]string{filepath.Join(dir, "*.h5")})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("glob matched %d files, want 2: %v", len(paths), paths)
	}
}

func TestResolveDeduplicatesPreservingOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.h5")
	if err := os.WriteFile(a, nil, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	// Explicit path first, then a glob that matches it again.
	paths, err := Resolve([]string{a, filepath.Join(dir, "*.h5")})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(paths) != 1 || paths[0] != a {
		t.Errorf("Resolve = %v, want [%s]", paths, a)
	}
}

func TestResolveBadPattern(t *testing.T) {
	if _, err := Resolve([]string{"[unclosed"}); err == nil {
		t.Error("Resolve accepted a malformed glob pattern")
	}
}

func TestReadListFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")
	content := "/data/a.h5\n\n# a comment\n/data/b.h5\n  /data/c.h5  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing list file: %v", err)
	}

	inputs, err := ReadListFile(path)
	if err != nil {
		t.Fatalf("ReadListFile failed: %v", err)
	}
	want := []string{"/data/a.h5", "/data/b.h5", "/data/c.h5"}
	if len(inputs) != len(want) {
		t.Fatalf("ReadListFile = %v, want %v", inputs, want)
	}
	for i := range want {
		if inputs[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, inputs[i], want[i])
		}
	}
}

func TestReadListFileMissing(t *testing.T) {
	if _, err := ReadListFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("ReadListFile succeeded on a missing file")
	}
}
