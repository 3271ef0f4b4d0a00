package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
)

// testKdfCost keeps Argon2id fast in unit tests.
var testKdfCost = cryptoDomain.KdfCost{MemoryKiB: 1024, Iterations: 1, Parallelism: 1}

func TestArgon2idKeyDeriver_DeriveKey(t *testing.T) {
	deriver := NewArgon2idKeyDeriver(NewRandomService())
	salt := []byte("0123456789abcdef")
	params := cryptoDomain.NewKdfParams(salt, testKdfCost)

	t.Run("output is 32 bytes", func(t *testing.T) {
		key, err := deriver.DeriveKey([]byte("correct horse"), params)
		require.NoError(t, err)
		assert.Len(t, key, cryptoDomain.KeySize)
	})

	t.Run("deterministic", func(t *testing.T) {
		key1, err := deriver.DeriveKey([]byte("correct horse"), params)
		require.NoError(t, err)
		key2, err := deriver.DeriveKey([]byte("correct horse"), params)
		require.NoError(t, err)
		assert.Equal(t, key1, key2)
	})

	t.Run("different password", func(t *testing.T) {
		key1, err := deriver.DeriveKey([]byte("correct horse"), params)
		require.NoError(t, err)
		key2, err := deriver.DeriveKey([]byte("correct horsf"), params)
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("different salt", func(t *testing.T) {
		other := cryptoDomain.NewKdfParams([]byte("fedcba9876543210"), testKdfCost)
		key1, err := deriver.DeriveKey([]byte("correct horse"), params)
		require.NoError(t, err)
		key2, err := deriver.DeriveKey([]byte("correct horse"), other)
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("stored cost is honoured", func(t *testing.T) {
		other := params
		other.Iterations = 2
		key1, err := deriver.DeriveKey([]byte("correct horse"), params)
		require.NoError(t, err)
		key2, err := deriver.DeriveKey([]byte("correct horse"), other)
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("empty password is accepted by the primitive", func(t *testing.T) {
		key, err := deriver.DeriveKey(nil, params)
		require.NoError(t, err)
		assert.Len(t, key, cryptoDomain.KeySize)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		bad := params
		bad.Algorithm = cryptoDomain.KdfAlgorithm("scrypt")
		_, err := deriver.DeriveKey([]byte("correct horse"), bad)
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedKdfAlgorithm)
	})

	t.Run("salt too short", func(t *testing.T) {
		bad := cryptoDomain.NewKdfParams([]byte("short"), testKdfCost)
		_, err := deriver.DeriveKey([]byte("correct horse"), bad)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidSalt)
		assert.ErrorIs(t, err, apperrors.ErrCryptographic)
	})

	t.Run("salt too long", func(t *testing.T) {
		bad := cryptoDomain.NewKdfParams(make([]byte, cryptoDomain.MaxSaltSize+1), testKdfCost)
		_, err := deriver.DeriveKey([]byte("correct horse"), bad)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidSalt)
	})

	t.Run("invalid cost", func(t *testing.T) {
		bad := params
		bad.Parallelism = 0
		_, err := deriver.DeriveKey([]byte("correct horse"), bad)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKdfParams)
	})
}

func TestArgon2idKeyDeriver_GenerateSalt(t *testing.T) {
	deriver := NewArgon2idKeyDeriver(NewRandomService())

	salt1, err := deriver.GenerateSalt()
	require.NoError(t, err)
	salt2, err := deriver.GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, salt1, cryptoDomain.SaltSize)
	assert.NotEqual(t, salt1, salt2)
}
