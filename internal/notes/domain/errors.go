package domain

import (
	"github.com/allisson/clinicnotes/internal/errors"
)

// Note errors.
var (
	// ErrNoteNotFound indicates no record has the requested id.
	ErrNoteNotFound = errors.Wrap(errors.ErrNotFound, "note not found")

	// ErrInvalidNote indicates note fields failed validation.
	ErrInvalidNote = errors.Wrap(errors.ErrInvalidInput, "invalid note")

	// ErrRecordMismatch indicates a record decrypted to a note with a different id.
	ErrRecordMismatch = errors.Wrap(errors.ErrCryptographic, "record does not match its id")
)
