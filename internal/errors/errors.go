// Package errors provides the standardized error taxonomy shared by every layer.
// Domain packages wrap these sentinels so callers can branch with errors.Is
// without depending on infrastructure details.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., an account already exists).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCryptographic indicates a key derivation, sealing or opening failure.
	ErrCryptographic = errors.New("cryptographic error")

	// ErrAuthenticationFailed indicates the supplied password did not unlock the account.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrStorage indicates the persistent store failed. The driver error stays in the chain.
	ErrStorage = errors.New("storage error")

	// ErrLocked indicates an operation needs an unlocked session.
	ErrLocked = errors.New("locked")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Storage marks err as a storage failure while keeping the driver error reachable
// through errors.Is and errors.As.
func Storage(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", message, ErrStorage, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
