package service

import (
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// KeyManagerService implements the KeyManager interface for password-based envelope encryption.
//
// The scheme has two tiers:
//   - a random 32-byte DEK encrypts every record
//   - the DEK is sealed under a KEK derived from the user's password
//
// Changing the password only re-wraps the DEK, so stored records never need re-encryption.
// KEK derivation is not done here; callers pass the derived key and remain responsible for
// wiping it.
type KeyManagerService struct {
	aeadManager AEADManager
	random      RandomGenerator
}

// NewKeyManager creates a new KeyManagerService instance.
//
// Parameters:
//   - aeadManager: The AEADManager used to create cipher instances
//   - random: The CSPRNG source for DEKs and nonces
//
// Returns:
//   - A new KeyManagerService instance
func NewKeyManager(aeadManager AEADManager, random RandomGenerator) *KeyManagerService {
	return &KeyManagerService{
		aeadManager: aeadManager,
		random:      random,
	}
}

// GenerateDek draws 32 random bytes and moves them into protected memory.
func (km *KeyManagerService) GenerateDek() (*cryptoDomain.Dek, error) {
	key, err := km.random.GenerateKey()
	if err != nil {
		return nil, err
	}
	return cryptoDomain.NewDek(key)
}

// WrapDek encrypts the DEK with the KEK using a freshly drawn nonce.
//
// Parameters:
//   - kek: The 32-byte password-derived key
//   - dek: The unlocked DEK to protect
//   - alg: The AEAD algorithm recorded in the envelope
//
// Returns:
//   - The wrapped DEK, ciphertext carrying the appended tag
//   - An error if the KEK size or algorithm is invalid, or the CSPRNG fails
func (km *KeyManagerService) WrapDek(
	kek []byte,
	dek *cryptoDomain.Dek,
	alg cryptoDomain.Algorithm,
) (cryptoDomain.WrappedDek, error) {
	aead, err := km.aeadManager.CreateCipher(kek, alg)
	if err != nil {
		return cryptoDomain.WrappedDek{}, err
	}

	dekKey, err := dek.Key()
	if err != nil {
		return cryptoDomain.WrappedDek{}, err
	}

	nonce, err := km.random.GenerateNonce()
	if err != nil {
		return cryptoDomain.WrappedDek{}, err
	}

	ciphertext, err := aead.Seal(nonce, dekKey, nil)
	if err != nil {
		return cryptoDomain.WrappedDek{}, err
	}

	return cryptoDomain.WrappedDek{
		Algorithm:  alg,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}

// UnwrapDek decrypts a wrapped DEK with the KEK.
//
// A wrong KEK and a tampered envelope both return ErrDecryptionFailed. The
// intermediate plaintext is moved into protected memory and wiped from the heap.
//
// Parameters:
//   - kek: The 32-byte password-derived key
//   - wrapped: The stored envelope
//
// Returns:
//   - The unlocked DEK; the caller must Destroy it
//   - An error if the envelope is malformed or fails authentication
func (km *KeyManagerService) UnwrapDek(
	kek []byte,
	wrapped cryptoDomain.WrappedDek,
) (*cryptoDomain.Dek, error) {
	if len(wrapped.Nonce) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}

	aead, err := km.aeadManager.CreateCipher(kek, wrapped.Algorithm)
	if err != nil {
		return nil, err
	}

	dekKey, err := aead.Open(wrapped.Nonce, wrapped.Ciphertext, nil)
	if err != nil {
		return nil, err
	}

	// NewDek wipes dekKey on both paths.
	return cryptoDomain.NewDek(dekKey)
}
