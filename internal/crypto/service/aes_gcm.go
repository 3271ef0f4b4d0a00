package service

import (
	"crypto/aes"
	"crypto/cipher"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// The caller supplies the nonce. Seal never truncates the 16-byte tag and Open
// never returns partial plaintext: a wrong key, a flipped ciphertext bit and a
// flipped nonce bit all produce the same ErrDecryptionFailed.
//
// The cipher instance is stateless and safe for concurrent use.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance from a 32-byte key.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCryptographic, "failed to create AES cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCryptographic, "failed to create GCM")
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Seal encrypts plaintext and returns the ciphertext with the authentication tag appended.
func (a *AESGCMCipher) Seal(nonce, plaintext, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}
	return a.aead.Seal(nil, nonce, plaintext, aad), nil
}

// Open verifies the tag and decrypts ciphertext.
func (a *AESGCMCipher) Open(nonce, ciphertext, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}
	if len(ciphertext) < a.aead.Overhead() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
