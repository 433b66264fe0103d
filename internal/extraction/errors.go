package extraction

import (
	"errors"
	"fmt"
)

// ErrExtractionFailed indicates the completion output decoded to a value that
// cannot describe a specification.
var ErrExtractionFailed = errors.New("specification extraction failed")

// ExtractionError carries the raw completion output that could not be used.
type ExtractionError struct {
	Raw    string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrExtractionFailed, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return ErrExtractionFailed
}
