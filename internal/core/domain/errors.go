package domain

import (
	"errors"
	"fmt"
)

// ErrNotFileOrDir marks a discovered path that is neither a regular file nor
// a directory, such as a broken symlink.
var ErrNotFileOrDir = errors.New("not a file or directory")

// InvalidParameterError reports a run parameter that fails validation.
// It is fatal and raised before any comparison work begins.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// SourceUnavailableError reports a nominated source that could not be read at
// all. The affected document is skipped and the run continues.
type SourceUnavailableError struct {
	ID  string
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.ID, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// DegenerateDocumentError reports a document whose token count is smaller
// than the shingle size, yielding an empty shingle set. Such documents are
// excluded from comparison and reported separately.
type DegenerateDocumentError struct {
	ID string
}

func (e *DegenerateDocumentError) Error() string {
	return fmt.Sprintf("document %s produced no shingles: too short to compare", e.ID)
}
