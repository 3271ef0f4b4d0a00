package domain

import (
	"github.com/allisson/clinicnotes/internal/errors"
)

// Account errors.
var (
	// ErrAccountNotFound indicates no account has been created yet.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrAccountAlreadyExists indicates the store already holds the single account.
	ErrAccountAlreadyExists = errors.Wrap(errors.ErrConflict, "account already exists")

	// ErrInvalidEnvelope indicates a stored account is structurally malformed.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid account envelope")

	// ErrInvalidCredentials indicates a username or password rejected before any key work.
	ErrInvalidCredentials = errors.Wrap(errors.ErrInvalidInput, "invalid credentials")

	// ErrWrongPassword indicates the password did not unwrap the DEK.
	ErrWrongPassword = errors.Wrap(errors.ErrAuthenticationFailed, "wrong password")

	// ErrNotAuthenticated indicates an operation that needs an authenticated session.
	ErrNotAuthenticated = errors.Wrap(errors.ErrLocked, "not authenticated")
)
