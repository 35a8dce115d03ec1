package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a record that is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail indicates a registration conflict.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials indicates a login failure. The same error is returned
	// for an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken indicates a malformed, tampered or expired token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrStoreUnavailable indicates an I/O failure in the backing store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InvalidInputError reports a malformed or out-of-range field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewInvalidInput builds an InvalidInputError for a field.
func NewInvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var iie *InvalidInputError
	return errors.As(err, &iie)
}
