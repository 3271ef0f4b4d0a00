package domain

import (
	"github.com/allisson/clinicnotes/internal/errors"
)

// Cryptographic operation error definitions.
//
// Structural problems (wrong sizes, unknown identifiers) wrap ErrInvalidInput so they
// are rejected before any key material is touched. Failures of the primitives
// themselves wrap ErrCryptographic.
var (
	// ErrUnsupportedAlgorithm indicates an unknown cipher identifier.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrUnsupportedKdfAlgorithm indicates an unknown key derivation identifier.
	ErrUnsupportedKdfAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported kdf algorithm")

	// ErrInvalidKeySize indicates a key that is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidNonceSize indicates a nonce that is not exactly 12 bytes.
	ErrInvalidNonceSize = errors.Wrap(errors.ErrInvalidInput, "invalid nonce size")

	// ErrInvalidSalt indicates a salt the KDF refuses to use.
	ErrInvalidSalt = errors.Wrap(errors.ErrCryptographic, "invalid salt")

	// ErrInvalidKdfParams indicates Argon2id cost parameters out of range.
	ErrInvalidKdfParams = errors.Wrap(errors.ErrCryptographic, "invalid kdf parameters")

	// ErrKeyDerivationFailed indicates the password hashing primitive failed.
	ErrKeyDerivationFailed = errors.Wrap(errors.ErrCryptographic, "key derivation failed")

	// ErrRandomFailed indicates the CSPRNG could not produce bytes.
	ErrRandomFailed = errors.Wrap(errors.ErrCryptographic, "random generation failed")

	// ErrDecryptionFailed indicates an AEAD open failed.
	//
	// Wrong key, tampered ciphertext and tampered nonce are indistinguishable on purpose.
	ErrDecryptionFailed = errors.Wrap(errors.ErrCryptographic, "decryption failed")

	// ErrDekDestroyed indicates use of a DEK whose buffer has already been wiped.
	ErrDekDestroyed = errors.Wrap(errors.ErrCryptographic, "data encryption key destroyed")
)
