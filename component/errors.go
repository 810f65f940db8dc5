package component

import "fmt"

// ResolutionError is the failure to resolve a candidate's metadata. It
// carries the offending candidate's identity and wraps the underlying
// fetch error. Within one selection call it is the only fatal condition:
// the chooser stops immediately rather than silently falling back to an
// older candidate.
type ResolutionError struct {
	ID  ID
	Err error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve metadata for %s: %v", e.ID, e.Err)
}

// Unwrap returns the underlying fetch error.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}
