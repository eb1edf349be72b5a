package resolve

import (
	"errors"
	"fmt"
)

// Validation errors, reported synchronously before any cache lookup.
var (
	// ErrTextTooShort rejects sentiment input below the minimum length.
	ErrTextTooShort = errors.New("text is too short for sentiment analysis")

	// ErrMissingCategory rejects an empty news category.
	ErrMissingCategory = errors.New("category is required")

	// ErrMissingURL rejects a summary request with no article URL.
	ErrMissingURL = errors.New("article url is required")
)

// QuotaExceededError signals that the daily upstream budget is spent.
// Distinct from an upstream failure: the call was never attempted.
// Message names the UTC reset time.
type QuotaExceededError struct {
	Message string
}

// Error implements the error interface.
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %s", e.Message)
}
