package domain

import (
	"errors"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
	appValidation "github.com/allisson/clinicnotes/internal/validation"
)

var notNilUUID = validation.By(func(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return errors.New("must be a non-nil UUID")
	}
	return nil
})

var supportedKdf = validation.By(func(value interface{}) error {
	alg, _ := value.(cryptoDomain.KdfAlgorithm)
	if _, err := cryptoDomain.ParseKdfAlgorithm(string(alg)); err != nil {
		return errors.New("unsupported kdf algorithm")
	}
	return nil
})

var supportedCipher = validation.By(func(value interface{}) error {
	alg, _ := value.(cryptoDomain.Algorithm)
	if _, err := cryptoDomain.ParseAlgorithm(string(alg)); err != nil {
		return errors.New("unsupported cipher algorithm")
	}
	return nil
})

// Validate checks the envelope structure before any key derivation or decryption.
func (a *Account) Validate() error {
	if err := validation.ValidateStruct(a,
		validation.Field(&a.Version, validation.Required, validation.In(CurrentVersion)),
		validation.Field(&a.UserID, notNilUUID),
		validation.Field(&a.Username, validation.Required, appValidation.NotBlank),
		validation.Field(&a.CreatedAt, validation.Required),
		validation.Field(&a.LastPasswordChange, validation.Required),
	); err != nil {
		return envelopeError(err)
	}

	kdf := &a.Kdf
	if err := validation.ValidateStruct(kdf,
		validation.Field(&kdf.Algorithm, supportedKdf),
		validation.Field(
			&kdf.Salt,
			validation.Required,
			validation.Length(cryptoDomain.MinSaltSize, cryptoDomain.MaxSaltSize),
		),
		validation.Field(&kdf.MemoryKiB, validation.Required, validation.Max(cryptoDomain.MaxKdfMemoryKiB)),
		validation.Field(&kdf.Iterations, validation.Required, validation.Max(cryptoDomain.MaxKdfIterations)),
		validation.Field(&kdf.Parallelism, validation.Required, validation.Max(cryptoDomain.MaxKdfParallelism)),
	); err != nil {
		return envelopeError(err)
	}

	wrapped := &a.WrappedDek
	if err := validation.ValidateStruct(wrapped,
		validation.Field(&wrapped.Algorithm, supportedCipher),
		validation.Field(&wrapped.Nonce, appValidation.ByteLength{Size: cryptoDomain.NonceSize}),
		validation.Field(
			&wrapped.Ciphertext,
			validation.Required,
			validation.Length(cryptoDomain.TagSize+1, 0),
		),
	); err != nil {
		return envelopeError(err)
	}

	return nil
}

func envelopeError(err error) error {
	return apperrors.Wrap(ErrInvalidEnvelope, err.Error())
}
