package indexer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve expands the given inputs into a concrete, deduplicated list
// of file paths. Inputs containing glob metacharacters are expanded
// with filepath.Glob; everything else passes through verbatim, whether
// or not it exists (missing files surface later as per-file failures).
// Order is preserved: first occurrence wins.
func Resolve(inputs []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, input := range inputs {
		if !strings.ContainsAny(input, "*?[") {
			add(input)
			continue
		}
		matches, err := filepath.Glob(input)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", input, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return paths, nil
}

// ReadListFile reads a source list: one path or glob pattern per line.
// Blank lines and lines starting with # are skipped.
func ReadListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source list: %w", err)
	}
	defer f.Close()

	var inputs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source list: %w", err)
	}
	return inputs, nil
}
