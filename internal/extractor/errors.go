package extractor

import "fmt"

// ErrorKind classifies an extraction failure.
type ErrorKind int

const (
	// KindUnreadable means the file could not be found or opened.
	KindUnreadable ErrorKind = iota
	// KindMalformed means the file was read but is not an HDF5 file.
	KindMalformed
)

func (k ErrorKind) String() string {
	if k == KindMalformed {
		return "malformed"
	}
	return "unreadable"
}

// ExtractionError is a hard per-file failure. The Kind lets callers
// tell an I/O problem from corrupt contents; a file that is merely
// sparse in metadata never produces an ExtractionError.
type ExtractionError struct {
	Path string
	Kind ErrorKind
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s file %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
