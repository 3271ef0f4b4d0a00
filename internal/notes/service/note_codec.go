// Package service converts patient notes to and from encrypted records.
package service

import (
	"encoding/json"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	cryptoService "github.com/allisson/clinicnotes/internal/crypto/service"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
)

// NoteCodec serializes a note to JSON and seals it with the record cipher.
type NoteCodec struct {
	recordCipher cryptoService.RecordCipher
}

// NewNoteCodec creates a new NoteCodec.
func NewNoteCodec(recordCipher cryptoService.RecordCipher) *NoteCodec {
	return &NoteCodec{recordCipher: recordCipher}
}

// Encode encrypts the whole note. The intermediate JSON is wiped before returning.
func (c *NoteCodec) Encode(note *notesDomain.Note, dek *cryptoDomain.Dek) (*notesDomain.EncryptedRecord, error) {
	plaintext, err := json.Marshal(note)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal note")
	}
	defer cryptoDomain.Zero(plaintext)

	ciphertext, nonce, err := c.recordCipher.EncryptRecord(plaintext, dek)
	if err != nil {
		return nil, err
	}

	return &notesDomain.EncryptedRecord{
		ID:         note.ID,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		CreatedAt:  note.CreatedAt,
	}, nil
}

// Decode decrypts a record. A note whose embedded id differs from the record id
// is rejected with ErrRecordMismatch.
func (c *NoteCodec) Decode(record *notesDomain.EncryptedRecord, dek *cryptoDomain.Dek) (*notesDomain.Note, error) {
	plaintext, err := c.recordCipher.DecryptRecord(record.Ciphertext, record.Nonce, dek)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(plaintext)

	var note notesDomain.Note
	if err := json.Unmarshal(plaintext, &note); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCryptographic, "malformed note payload")
	}
	if note.ID != record.ID {
		return nil, notesDomain.ErrRecordMismatch
	}
	return &note, nil
}
