package extractor

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Production filenames follow loose conventions like
// icarus_run2_data_run12345_subrun3_v3.2.1_spine.h5; these patterns
// pull the structured pieces out of the stem and the directory chain.
var (
	runRe     = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])run[_-]?(\d+)`)
	subrunRe  = regexp.MustCompile(`(?i)(?:^|[^a-z])subrun[_-]?(\d+)`)
	versionRe = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(v\d+(?:\.\d+)*)`)
)

// detectorTokens are the experiment names that identify a model from a
// filename or directory segment.
var detectorTokens = map[string]bool{
	"icarus": true,
	"sbnd":   true,
	"2x2":    true,
	"nd-lar": true,
	"fsd":    true,
}

// inferFromPath derives metadata from the file's name and directory
// chain. It only ever fills gaps left by embedded attributes.
func inferFromPath(path string) Record {
	var rec Record

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if m := runRe.FindStringSubmatch(stem); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			rec.Run = &n
		}
	}
	if m := subrunRe.FindStringSubmatch(stem); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			rec.Subrun = &n
		}
	}
	if m := versionRe.FindStringSubmatch(stem); m != nil {
		v := m[1]
		rec.SpineVersion = &v
	}

	if model := inferModel(path, stem); model != "" {
		rec.ModelName = &model
	}
	if dataset := inferDataset(stem); dataset != "" {
		rec.DatasetName = &dataset
	}

	return rec
}

// inferModel looks for a detector name, first in the directory chain
// and then among the stem's tokens.
func inferModel(path, stem string) string {
	dir := filepath.Dir(path)
	for dir != "/" && dir != "." && dir != "" {
		seg := strings.ToLower(filepath.Base(dir))
		if detectorTokens[seg] {
			return seg
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	for _, tok := range strings.Split(strings.ToLower(stem), "_") {
		if detectorTokens[tok] {
			return tok
		}
	}
	return ""
}

// inferDataset strips the structural tokens (run/subrun numbers,
// version tags) from the stem and returns what remains as the dataset
// name. A stem with no such tokens is an arbitrary filename, not a
// dataset, and yields nothing.
func inferDataset(stem string) string {
	matched := false
	cleaned := stem

	for _, re := range []*regexp.Regexp{subrunRe, runRe, versionRe} {
		if re.MatchString(cleaned) {
			matched = true
			cleaned = re.ReplaceAllString(cleaned, "")
		}
	}
	if !matched {
		return ""
	}

	cleaned = strings.Trim(cleaned, "_-. ")
	for strings.Contains(cleaned, "__") {
		cleaned = strings.ReplaceAll(cleaned, "__", "_")
	}
	return cleaned
}
