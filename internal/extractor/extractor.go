package extractor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
)

// Record holds the metadata extracted from one output file. FilePath is
// always populated (absolute); every other field is independently
// present-or-nil.
type Record struct {
	FilePath         string
	SpineVersion     *string
	SpineProdVersion *string
	ModelName        *string
	DatasetName      *string
	Run              *int64
	Subrun           *int64
	EventMin         *int64
	EventMax         *int64
	NumEvents        *int64
}

// A strategy contributes a best-effort partial record for a file.
// Strategies never fail; fields they cannot resolve stay nil.
type strategy func(path string) Record

// Strategies run in order; earlier results win per field. Embedded
// attributes are authoritative, path heuristics fill the gaps.
var strategies = []strategy{readAttributes, inferFromPath}

// hdf5Signature is the 8-byte magic at the start of the HDF5 superblock.
var hdf5Signature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

// Extract reads metadata from the SPINE HDF5 output file at path.
// Unreadable files and files that are not HDF5 fail with an
// ExtractionError; everything else succeeds, however sparse the result.
func Extract(path string) (*Record, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Kind: KindUnreadable, Err: err}
	}

	if err := checkSignature(abs); err != nil {
		return nil, err
	}

	rec := Record{FilePath: abs}
	for _, s := range strategies {
		merge(&rec, s(abs))
	}
	return &rec, nil
}

// checkSignature verifies the file starts with the HDF5 superblock
// signature. The superblock may be pushed to offset 512 by a userblock;
// production files don't go beyond that.
func checkSignature(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ExtractionError{Path: path, Kind: KindUnreadable, Err: err}
	}
	if info.IsDir() {
		return &ExtractionError{Path: path, Kind: KindUnreadable,
			Err: errors.New("is a directory")}
	}

	f, err := os.Open(path)
	if err != nil {
		return &ExtractionError{Path: path, Kind: KindUnreadable, Err: err}
	}
	defer f.Close()

	sig := make([]byte, len(hdf5Signature))
	for _, offset := range []int64{0, 512} {
		_, err := f.ReadAt(sig, offset)
		if err != nil {
			if offset == 0 {
				return &ExtractionError{Path: path, Kind: KindMalformed,
					Err: errors.New("file too short for HDF5 signature")}
			}
			break
		}
		if bytes.Equal(sig, hdf5Signature) {
			return nil
		}
	}
	return &ExtractionError{Path: path, Kind: KindMalformed,
		Err: errors.New("missing HDF5 signature")}
}

// merge fills nil fields of dst from the partial record.
func merge(dst *Record, partial Record) {
	if dst.SpineVersion == nil {
		dst.SpineVersion = partial.SpineVersion
	}
	if dst.SpineProdVersion == nil {
		dst.SpineProdVersion = partial.SpineProdVersion
	}
	if dst.ModelName == nil {
		dst.ModelName = partial.ModelName
	}
	if dst.DatasetName == nil {
		dst.DatasetName = partial.DatasetName
	}
	if dst.Run == nil {
		dst.Run = partial.Run
	}
	if dst.Subrun == nil {
		dst.Subrun = partial.Subrun
	}
	if dst.EventMin == nil {
		dst.EventMin = partial.EventMin
	}
	if dst.EventMax == nil {
		dst.EventMax = partial.EventMax
	}
	if dst.NumEvents == nil {
		dst.NumEvents = partial.NumEvents
	}
}
