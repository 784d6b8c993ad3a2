package domain

import (
	"errors"
	"fmt"
)

// ErrInsufficientData means the corpus cannot supply the requested sample.
// Surfaced to the caller; test generation aborts.
var ErrInsufficientData = errors.New("not enough corpus entries for requested sample")

// ErrInvalidState means a test instance is not accepting the operation
// (already completed, expired, or never started).
var ErrInvalidState = errors.New("test is not accepting answers")

// LoadError is a fatal corpus load failure (malformed data, duplicate ids).
// Initialization must abort when one is returned.
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("corpus load failed: %s", e.Reason)
}

// NewLoadError builds a LoadError with a formatted reason
func NewLoadError(format string, args ...any) *LoadError {
	return &LoadError{Reason: fmt.Sprintf(format, args...)}
}
