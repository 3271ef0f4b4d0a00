// Package domain defines patient notes and their encrypted storage form.
package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/clinicnotes/internal/validation"
)

// DateOfBirthLayout is the accepted format for Note.DateOfBirth.
const DateOfBirthLayout = "2006-01-02"

// Note is a decrypted patient note. It only exists in memory while the DEK is unlocked.
type Note struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth string    `json:"date_of_birth"`
	NoteType    string    `json:"note_type"`
	Transcript  string    `json:"transcript"`
	MedicalNote string    `json:"medical_note"`
	CreatedAt   time.Time `json:"created_at"`
}

// NoteInput carries the editable fields of a note.
type NoteInput struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	NoteType    string
	Transcript  string
	MedicalNote string
}

// Validate checks the editable fields.
func (n *NoteInput) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.FirstName, validation.Required, appValidation.NotBlank),
		validation.Field(&n.LastName, validation.Required, appValidation.NotBlank),
		validation.Field(&n.DateOfBirth, validation.Date(DateOfBirthLayout)),
		validation.Field(&n.NoteType, validation.Length(0, 64)),
	)
}

// Apply copies the editable fields onto the note.
func (n *NoteInput) Apply(note *Note) {
	note.FirstName = n.FirstName
	note.LastName = n.LastName
	note.DateOfBirth = n.DateOfBirth
	note.NoteType = n.NoteType
	note.Transcript = n.Transcript
	note.MedicalNote = n.MedicalNote
}

// EncryptedRecord is the stored form of a note.
//
// Only ID and CreatedAt are in the clear; CreatedAt drives listing order. The
// ciphertext carries the whole note, including a copy of the ID.
type EncryptedRecord struct {
	ID         string
	Ciphertext []byte
	Nonce      []byte
	CreatedAt  time.Time

	// Malformed is set by bulk loads when the row's clear columns could not be
	// read. The record is reported as skipped instead of failing the batch.
	Malformed bool
}

// NoteList is the result of a bulk load. Skipped holds the ids of records that
// could not be decrypted.
type NoteList struct {
	Notes   []*Note  `json:"notes"`
	Skipped []string `json:"skipped"`
}
