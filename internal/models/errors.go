package models

import (
	"errors"
	"fmt"
)

// Error taxonomy: storage failures surface unchanged (wrapped with
// ErrStorage), missing records surface as ErrNotFound, and bad caller
// input surfaces as a ValidationError naming the offending value.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage indicates the storage collaborator failed; the underlying
	// cause is wrapped and never retried.
	ErrStorage = errors.New("storage unavailable")

	// ErrReadOnly rejects writes against a read-only ledger (demo mode).
	ErrReadOnly = errors.New("ledger is read-only")
)

// ValidationError rejects invalid caller input, identifying the field and
// offending value.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

// NewValidationError builds a ValidationError.
func NewValidationError(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprintf("%v", e.Value), e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
