package extraction

import (
	"errors"
	"fmt"
)

// ErrEmptyInput signals that no usable text remains after extraction and
// consolidation. The AI gateway must not be called in that case.
var ErrEmptyInput = errors.New("no usable input text")

// ExtractionError reports a single file that could not be read. It is
// non-fatal: the caller skips the file and continues with the rest of the
// batch.
type ExtractionError struct {
	Filename string
	Cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Filename, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
