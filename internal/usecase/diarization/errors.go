package diarization

import "fmt"

// ExtractionError reports an ASR response that could not be parsed as
// structured data at all. Missing optional fields never produce this error.
type ExtractionError struct {
	Err error
}

// Error implements error interface
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("asr response is not well-formed: %v", e.Err)
}

// Unwrap returns the underlying decode error
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ValidationError reports a rejected identity assignment. No records are
// modified when a ValidationError is returned.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
