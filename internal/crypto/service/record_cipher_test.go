package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
)

func newTestDek(t *testing.T) *cryptoDomain.Dek {
	t.Helper()
	dek, err := cryptoDomain.NewDek(newTestKey(t))
	require.NoError(t, err)
	t.Cleanup(dek.Destroy)
	return dek
}

func TestRecordCipherService(t *testing.T) {
	rc := NewRecordCipher(NewAEADManager(), NewRandomService())
	dek := newTestDek(t)

	t.Run("round trip", func(t *testing.T) {
		plaintext := []byte(`{"id":"1","transcript":"hello"}`)

		ciphertext, nonce, err := rc.EncryptRecord(plaintext, dek)
		require.NoError(t, err)
		assert.Len(t, nonce, cryptoDomain.NonceSize)
		assert.Len(t, ciphertext, len(plaintext)+cryptoDomain.TagSize)

		decrypted, err := rc.DecryptRecord(ciphertext, nonce, dek)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("same plaintext encrypts differently", func(t *testing.T) {
		c1, n1, err := rc.EncryptRecord([]byte("same"), dek)
		require.NoError(t, err)
		c2, n2, err := rc.EncryptRecord([]byte("same"), dek)
		require.NoError(t, err)
		assert.NotEqual(t, n1, n2)
		assert.NotEqual(t, c1, c2)
	})

	t.Run("wrong dek", func(t *testing.T) {
		ciphertext, nonce, err := rc.EncryptRecord([]byte("secret"), dek)
		require.NoError(t, err)

		_, err = rc.DecryptRecord(ciphertext, nonce, newTestDek(t))
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.ErrorIs(t, err, apperrors.ErrCryptographic)
	})

	t.Run("same plaintext twice, nonces not interchangeable", func(t *testing.T) {
		plaintext := []byte(`{"id":"1","medical_note":"identical"}`)

		c1, n1, err := rc.EncryptRecord(plaintext, dek)
		require.NoError(t, err)
		c2, n2, err := rc.EncryptRecord(plaintext, dek)
		require.NoError(t, err)

		assert.NotEqual(t, n1, n2)
		assert.NotEqual(t, c1, c2)

		for _, pair := range []struct {
			name       string
			ciphertext []byte
			nonce      []byte
		}{
			{"first ciphertext, second nonce", c1, n2},
			{"second ciphertext, first nonce", c2, n1},
		} {
			_, err := rc.DecryptRecord(pair.ciphertext, pair.nonce, dek)
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed, pair.name)
		}

		for _, pair := range [][2][]byte{{c1, n1}, {c2, n2}} {
			decrypted, err := rc.DecryptRecord(pair[0], pair[1], dek)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)
		}
	})

	t.Run("destroyed dek", func(t *testing.T) {
		gone, err := cryptoDomain.NewDek(newTestKey(t))
		require.NoError(t, err)
		gone.Destroy()

		_, _, err = rc.EncryptRecord([]byte("secret"), gone)
		assert.ErrorIs(t, err, cryptoDomain.ErrDekDestroyed)
	})
}
