// Package usecase implements patient note operations on top of the encrypted
// record store. Every operation that touches note content needs an unlocked DEK.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
)

// RecordRepository defines the interface for encrypted record persistence.
type RecordRepository interface {
	Save(ctx context.Context, record *notesDomain.EncryptedRecord) error
	Get(ctx context.Context, id string) (*notesDomain.EncryptedRecord, error)
	List(ctx context.Context) ([]*notesDomain.EncryptedRecord, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NoteCodec defines the interface for turning notes into encrypted records.
type NoteCodec interface {
	Encode(note *notesDomain.Note, dek *cryptoDomain.Dek) (*notesDomain.EncryptedRecord, error)
	Decode(record *notesDomain.EncryptedRecord, dek *cryptoDomain.Dek) (*notesDomain.Note, error)
}

// NoteUseCase defines the interface for note business logic.
type NoteUseCase interface {
	// Create assigns a new id and creation time and stores the encrypted note.
	Create(ctx context.Context, dek *cryptoDomain.Dek, input notesDomain.NoteInput) (*notesDomain.Note, error)

	// Update replaces the editable fields. The id and creation time are kept and
	// the record is sealed under a fresh nonce.
	Update(
		ctx context.Context,
		dek *cryptoDomain.Dek,
		id string,
		input notesDomain.NoteInput,
	) (*notesDomain.Note, error)

	// Get decrypts a single note.
	Get(ctx context.Context, dek *cryptoDomain.Dek, id string) (*notesDomain.Note, error)

	// List decrypts every note, newest first. Records that fail to decrypt are
	// reported in NoteList.Skipped and never abort the batch.
	List(ctx context.Context, dek *cryptoDomain.Dek) (*notesDomain.NoteList, error)

	// Delete removes a note. Missing ids return ErrNoteNotFound.
	Delete(ctx context.Context, id string) error
}
