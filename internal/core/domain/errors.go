package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or malformed user input. Recoverable: the
	// caller corrects the input and retries.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail is returned when registering an email that already
	// has an account (case-sensitive exact match on the stored record).
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login when no stored user matches
	// the supplied email and password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTaskNotFound is returned on the read path only; mutating operations
	// treat a missing task id as a silent no-op.
	ErrTaskNotFound = errors.New("task not found")
)

// StorageParseError marks a persisted record that could not be decoded.
// It is always recovered locally with a documented default (empty list,
// no session) and logged; it never reaches a caller as a hard failure.
type StorageParseError struct {
	Key string
	Err error
}

func (e *StorageParseError) Error() string {
	return fmt.Sprintf("corrupt record at %q: %v", e.Key, e.Err)
}

func (e *StorageParseError) Unwrap() error { return e.Err }
