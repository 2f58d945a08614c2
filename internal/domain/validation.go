package domain

import "strings"

// ValidationError carries every violation found in an input, not just the
// first, so clients can surface all of them at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidationError builds a ValidationError from the given violations.
// Returns nil when there are none, so callers can write
// `if err := domain.NewValidationError(v...); err != nil`.
func NewValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
