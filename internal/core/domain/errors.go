package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCatalogCorrupt indicates the persisted catalog could not be parsed.
	// Fatal for the document: processing aborts before any unit work.
	ErrCatalogCorrupt = errors.New("catalog corrupt")

	// ErrCacheMiss indicates the result cache has no entry for the key
	ErrCacheMiss = errors.New("cache miss")

	// ErrMemoryUnavailable indicates the translation memory store could
	// not be reached. Never fatal; callers degrade to catalog-only seeding.
	ErrMemoryUnavailable = errors.New("translation memory unavailable")
)

// ProcessingError wraps a failure of the external processor for a single
// unit. Per-unit failures are isolated: the unit stays pending and the run
// continues with the remaining units.
type ProcessingError struct {
	ContextID string
	Err       error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("process unit %s: %v", e.ContextID, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
