// Package service provides the cryptographic primitives behind password-based
// envelope encryption: Argon2id key derivation, the AES-256-GCM cipher wrapper,
// CSPRNG draws, DEK wrapping and record encryption.
//
// Every seal and open in the application goes through AEADManager so nonce and key
// size assumptions live in exactly one place.
package service

import (
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Seal encrypts plaintext under nonce and returns ciphertext with the tag appended.
	Seal(nonce, plaintext, aad []byte) ([]byte, error)

	// Open authenticates and decrypts ciphertext. Any mismatch returns ErrDecryptionFailed.
	Open(nonce, ciphertext, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// RandomGenerator draws key material, nonces and salts from a CSPRNG.
type RandomGenerator interface {
	// GenerateNonce returns a fresh 12-byte nonce.
	GenerateNonce() ([]byte, error)

	// GenerateKey returns 32 fresh random bytes.
	GenerateKey() ([]byte, error)

	// GenerateSalt returns a fresh Argon2id salt.
	GenerateSalt() ([]byte, error)
}

// KeyDeriver turns a password into a 32-byte key.
type KeyDeriver interface {
	// DeriveKey runs the KDF described by params over password.
	DeriveKey(password []byte, params cryptoDomain.KdfParams) ([]byte, error)

	// GenerateSalt draws a fresh salt for a new password.
	GenerateSalt() ([]byte, error)
}

// KeyManager wraps and unwraps the account DEK under a password-derived KEK.
type KeyManager interface {
	// GenerateDek draws a new random DEK.
	GenerateDek() (*cryptoDomain.Dek, error)

	// WrapDek seals dek under kek with a freshly drawn nonce.
	WrapDek(kek []byte, dek *cryptoDomain.Dek, alg cryptoDomain.Algorithm) (cryptoDomain.WrappedDek, error)

	// UnwrapDek opens a wrapped DEK. A wrong KEK returns ErrDecryptionFailed.
	UnwrapDek(kek []byte, wrapped cryptoDomain.WrappedDek) (*cryptoDomain.Dek, error)
}

// RecordCipher seals and opens record payloads with an unlocked DEK.
type RecordCipher interface {
	// EncryptRecord seals plaintext with a nonce it draws itself.
	EncryptRecord(plaintext []byte, dek *cryptoDomain.Dek) (ciphertext, nonce []byte, err error)

	// DecryptRecord opens a single record.
	DecryptRecord(ciphertext, nonce []byte, dek *cryptoDomain.Dek) ([]byte, error)
}
