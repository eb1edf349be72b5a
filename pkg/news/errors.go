package news

import (
	"errors"
	"fmt"
)

// ErrNoArticles indicates the upstream answered successfully but had
// nothing for the requested category. Distinct from an unreachable
// upstream so callers can report the two differently.
var ErrNoArticles = errors.New("no articles found for category")

// UpstreamError represents a failed call against the GNews API:
// a non-2xx response, a network fault, or a timeout.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gnews upstream error (status %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("gnews upstream error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
