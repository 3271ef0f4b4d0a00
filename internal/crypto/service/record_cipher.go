package service

import (
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// RecordCipherService implements RecordCipher with AES-256-GCM.
//
// The nonce is always drawn here; callers cannot supply one. Record payloads
// are encrypted without associated data.
type RecordCipherService struct {
	aeadManager AEADManager
	random      RandomGenerator
}

// NewRecordCipher creates a new RecordCipherService.
func NewRecordCipher(aeadManager AEADManager, random RandomGenerator) *RecordCipherService {
	return &RecordCipherService{
		aeadManager: aeadManager,
		random:      random,
	}
}

// EncryptRecord seals plaintext under the DEK with a fresh nonce.
func (rc *RecordCipherService) EncryptRecord(
	plaintext []byte,
	dek *cryptoDomain.Dek,
) (ciphertext, nonce []byte, err error) {
	aead, err := rc.cipher(dek)
	if err != nil {
		return nil, nil, err
	}

	nonce, err = rc.random.GenerateNonce()
	if err != nil {
		return nil, nil, err
	}

	ciphertext, err = aead.Seal(nonce, plaintext, nil)
	if err != nil {
		return nil, nil, err
	}
	return ciphertext, nonce, nil
}

// DecryptRecord opens a record sealed by EncryptRecord.
func (rc *RecordCipherService) DecryptRecord(
	ciphertext, nonce []byte,
	dek *cryptoDomain.Dek,
) ([]byte, error) {
	aead, err := rc.cipher(dek)
	if err != nil {
		return nil, err
	}
	return aead.Open(nonce, ciphertext, nil)
}

func (rc *RecordCipherService) cipher(dek *cryptoDomain.Dek) (AEAD, error) {
	key, err := dek.Key()
	if err != nil {
		return nil, err
	}
	return rc.aeadManager.CreateCipher(key, cryptoDomain.AES256GCM)
}
