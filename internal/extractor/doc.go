// Package extractor produces catalog metadata records from SPINE HDF5
// output files.
//
// Extraction is an ordered chain of strategies, each contributing a
// partial record merged first-non-null-wins: embedded root attributes
// and event data read from the file itself, then naming-convention
// heuristics applied to the file's path. Extraction is best-effort: a
// readable HDF5 file that yields no attributes at all still produces a
// valid record carrying only the file path. Only hard failures (file
// unreadable, contents not HDF5 at all) surface as ExtractionError.
//
// Extraction is a pure read of the file; it never touches the catalog
// database.
package extractor
