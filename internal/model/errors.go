package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateAccount is returned when registering an email that already
	// has an AuthRecord.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidCredentials is returned when no AuthRecord matches both email
	// and secret exactly.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStorageUnavailable wraps failures of the underlying storage medium.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound is returned by store lookups when no record matches.
	ErrNotFound = errors.New("not found")

	// ErrValidation is the root of all input validation failures.
	ErrValidation = errors.New("validation error")
)

// ValidationError carries the offending field alongside ErrValidation so
// callers can both display a message and branch with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a new validation error for the given field.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}
