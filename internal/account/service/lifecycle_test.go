package service

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	cryptoService "github.com/allisson/clinicnotes/internal/crypto/service"
	cryptoServiceMocks "github.com/allisson/clinicnotes/internal/crypto/service/mocks"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
)

var testKdfCost = cryptoDomain.KdfCost{MemoryKiB: 1024, Iterations: 1, Parallelism: 1}

func newTestLifecycle(logger *slog.Logger) *Lifecycle {
	random := cryptoService.NewRandomService()
	return NewLifecycle(
		cryptoService.NewArgon2idKeyDeriver(random),
		cryptoService.NewKeyManager(cryptoService.NewAEADManager(), random),
		testKdfCost,
		logger,
	)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dekBytes(t *testing.T, dek *cryptoDomain.Dek) []byte {
	t.Helper()
	key, err := dek.Key()
	require.NoError(t, err)
	return append([]byte(nil), key...)
}

func TestLifecycle_CreateAccount(t *testing.T) {
	lifecycle := newTestLifecycle(discardLogger())

	t.Run("Success_CreatesValidEnvelope", func(t *testing.T) {
		account, err := lifecycle.CreateAccount("dr.smith", []byte("correct horse"))
		require.NoError(t, err)

		assert.NoError(t, account.Validate())
		assert.Equal(t, accountDomain.CurrentVersion, account.Version)
		assert.Equal(t, "dr.smith", account.Username)
		assert.Equal(t, cryptoDomain.Argon2id, account.Kdf.Algorithm)
		assert.Len(t, account.Kdf.Salt, cryptoDomain.SaltSize)
		assert.Equal(t, testKdfCost, account.Kdf.Cost())
		assert.Equal(t, cryptoDomain.AES256GCM, account.WrappedDek.Algorithm)
		assert.Len(t, account.WrappedDek.Nonce, cryptoDomain.NonceSize)
		assert.Len(t, account.WrappedDek.Ciphertext, cryptoDomain.KeySize+cryptoDomain.TagSize)
		assert.Equal(t, account.CreatedAt, account.LastPasswordChange)
	})

	t.Run("Success_TwoAccountsDiffer", func(t *testing.T) {
		a1, err := lifecycle.CreateAccount("dr.smith", []byte("correct horse"))
		require.NoError(t, err)
		a2, err := lifecycle.CreateAccount("dr.smith", []byte("correct horse"))
		require.NoError(t, err)

		assert.NotEqual(t, a1.UserID, a2.UserID)
		assert.NotEqual(t, a1.Kdf.Salt, a2.Kdf.Salt)
		assert.NotEqual(t, a1.WrappedDek.Nonce, a2.WrappedDek.Nonce)
	})

	t.Run("Failure_BlankUsername", func(t *testing.T) {
		_, err := lifecycle.CreateAccount("   ", []byte("correct horse"))
		assert.ErrorIs(t, err, accountDomain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failure_InvalidKdfCost", func(t *testing.T) {
		bad := newTestLifecycle(discardLogger())
		bad.kdfCost = cryptoDomain.KdfCost{MemoryKiB: 1024, Iterations: 0, Parallelism: 1}

		_, err := bad.CreateAccount("dr.smith", []byte("correct horse"))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKdfParams)
	})
}

func TestLifecycle_CreateAccount_MinPasswordLength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "Failure_Empty", password: "", wantErr: true},
		{name: "Failure_SevenBytes", password: "1234567", wantErr: true},
		{name: "Success_EightBytes", password: "12345678", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockKeyDeriver := cryptoServiceMocks.NewMockKeyDeriver(t)
			mockKeyManager := cryptoServiceMocks.NewMockKeyManager(t)
			lifecycle := NewLifecycle(mockKeyDeriver, mockKeyManager, testKdfCost, discardLogger())

			if !tt.wantErr {
				dek, err := cryptoDomain.NewDek(make([]byte, cryptoDomain.KeySize))
				require.NoError(t, err)
				salt := make([]byte, cryptoDomain.SaltSize)
				wrapped := cryptoDomain.WrappedDek{
					Algorithm:  cryptoDomain.AES256GCM,
					Nonce:      make([]byte, cryptoDomain.NonceSize),
					Ciphertext: make([]byte, cryptoDomain.KeySize+cryptoDomain.TagSize),
				}

				mockKeyManager.On("GenerateDek").Return(dek, nil).Once()
				mockKeyDeriver.On("GenerateSalt").Return(salt, nil).Once()
				mockKeyDeriver.On("DeriveKey", []byte(tt.password), mock.Anything).
					Return(make([]byte, cryptoDomain.KeySize), nil).Once()
				mockKeyManager.On("WrapDek", mock.Anything, dek, cryptoDomain.AES256GCM).
					Return(wrapped, nil).Once()
			}

			_, err := lifecycle.CreateAccount("dr.smith", []byte(tt.password))
			if tt.wantErr {
				assert.ErrorIs(t, err, accountDomain.ErrInvalidCredentials)
				mockKeyDeriver.AssertNumberOfCalls(t, "GenerateSalt", 0)
				mockKeyDeriver.AssertNumberOfCalls(t, "DeriveKey", 0)
				mockKeyManager.AssertNumberOfCalls(t, "GenerateDek", 0)
			} else {
				assert.NoError(t, err)
				mockKeyDeriver.AssertNumberOfCalls(t, "DeriveKey", 1)
			}
		})
	}
}

func TestLifecycle_Unlock(t *testing.T) {
	lifecycle := newTestLifecycle(discardLogger())
	account, err := lifecycle.CreateAccount("dr.smith", []byte("correct horse"))
	require.NoError(t, err)

	t.Run("Success_SameDekEveryTime", func(t *testing.T) {
		dek1, err := lifecycle.Unlock(account, []byte("correct horse"))
		require.NoError(t, err)
		defer dek1.Destroy()
		dek2, err := lifecycle.Unlock(account, []byte("correct horse"))
		require.NoError(t, err)
		defer dek2.Destroy()

		assert.Equal(t, dekBytes(t, dek1), dekBytes(t, dek2))
	})

	t.Run("Failure_WrongPassword", func(t *testing.T) {
		dek, err := lifecycle.Unlock(account, []byte("wrong horse"))
		assert.Nil(t, dek)
		assert.ErrorIs(t, err, accountDomain.ErrWrongPassword)
		assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
	})

	t.Run("Failure_NilAccount", func(t *testing.T) {
		_, err := lifecycle.Unlock(nil, []byte("correct horse"))
		assert.ErrorIs(t, err, accountDomain.ErrAccountNotFound)
	})

	t.Run("Failure_TamperedWrappedDek", func(t *testing.T) {
		tampered := *account
		tampered.WrappedDek.Ciphertext = append([]byte(nil), account.WrappedDek.Ciphertext...)
		tampered.WrappedDek.Ciphertext[3] ^= 0x01

		_, err := lifecycle.Unlock(&tampered, []byte("correct horse"))
		assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
	})

	t.Run("Failure_UnknownAlgorithmFailsBeforeKdf", func(t *testing.T) {
		mockKeyDeriver := cryptoServiceMocks.NewMockKeyDeriver(t)
		mockKeyManager := cryptoServiceMocks.NewMockKeyManager(t)
		instrumented := NewLifecycle(mockKeyDeriver, mockKeyManager, testKdfCost, discardLogger())

		bad := *account
		bad.WrappedDek.Algorithm = cryptoDomain.Algorithm("des")

		_, err := instrumented.Unlock(&bad, []byte("correct horse"))
		assert.ErrorIs(t, err, accountDomain.ErrInvalidEnvelope)
		mockKeyDeriver.AssertNumberOfCalls(t, "DeriveKey", 0)
	})

	t.Run("Failure_OversizedKdfCostFailsBeforeKdf", func(t *testing.T) {
		mockKeyDeriver := cryptoServiceMocks.NewMockKeyDeriver(t)
		mockKeyManager := cryptoServiceMocks.NewMockKeyManager(t)
		instrumented := NewLifecycle(mockKeyDeriver, mockKeyManager, testKdfCost, discardLogger())

		bad := *account
		bad.Kdf.MemoryKiB = 0xFFFFFFFF

		_, err := instrumented.Unlock(&bad, []byte("correct horse"))
		assert.ErrorIs(t, err, accountDomain.ErrInvalidEnvelope)
		mockKeyDeriver.AssertNumberOfCalls(t, "DeriveKey", 0)
	})

	t.Run("Failure_KdfErrorIsNotWrongPassword", func(t *testing.T) {
		mockKeyDeriver := cryptoServiceMocks.NewMockKeyDeriver(t)
		mockKeyManager := cryptoServiceMocks.NewMockKeyManager(t)
		instrumented := NewLifecycle(mockKeyDeriver, mockKeyManager, testKdfCost, discardLogger())

		mockKeyDeriver.On("DeriveKey", []byte("correct horse"), account.Kdf).
			Return(nil, cryptoDomain.ErrKeyDerivationFailed).Once()

		_, err := instrumented.Unlock(account, []byte("correct horse"))
		assert.ErrorIs(t, err, apperrors.ErrCryptographic)
		assert.NotErrorIs(t, err, apperrors.ErrAuthenticationFailed)
	})
}

func TestLifecycle_Authenticate(t *testing.T) {
	var logs bytes.Buffer
	lifecycle := newTestLifecycle(slog.New(slog.NewJSONHandler(&logs, nil)))
	account, err := lifecycle.CreateAccount("dr.smith", []byte("correct horse"))
	require.NoError(t, err)

	t.Run("Success_CorrectPassword", func(t *testing.T) {
		assert.True(t, lifecycle.Authenticate(account, []byte("correct horse")))
	})

	t.Run("Failure_WrongPasswordIsNotLogged", func(t *testing.T) {
		logs.Reset()
		assert.False(t, lifecycle.Authenticate(account, []byte("wrong horse")))
		assert.Empty(t, logs.String())
	})

	t.Run("Failure_TamperedKdfMemoryReturnsFalse", func(t *testing.T) {
		bad := *account
		bad.Kdf.MemoryKiB = 0xFFFFFFFF
		bad.Kdf.Iterations = 0xFFFFFFFF

		assert.False(t, lifecycle.Authenticate(&bad, []byte("correct horse")))
	})

	t.Run("Failure_MalformedEnvelopeIsLogged", func(t *testing.T) {
		logs.Reset()
		bad := *account
		bad.Kdf.Salt = nil

		assert.False(t, lifecycle.Authenticate(&bad, []byte("correct horse")))
		assert.Contains(t, logs.String(), "account authentication failed")
		assert.NotContains(t, logs.String(), "correct horse")
	})
}

func TestLifecycle_ChangePassword(t *testing.T) {
	lifecycle := newTestLifecycle(discardLogger())
	recordCipher := cryptoService.NewRecordCipher(cryptoService.NewAEADManager(), cryptoService.NewRandomService())

	account, err := lifecycle.CreateAccount("dr.smith", []byte("old password"))
	require.NoError(t, err)

	dek, err := lifecycle.Unlock(account, []byte("old password"))
	require.NoError(t, err)
	ciphertext, nonce, err := recordCipher.EncryptRecord([]byte("note before change"), dek)
	require.NoError(t, err)
	original := dekBytes(t, dek)
	dek.Destroy()

	t.Run("Success_RewrapsSameDek", func(t *testing.T) {
		updated, err := lifecycle.ChangePassword(account, []byte("old password"), []byte("new password"))
		require.NoError(t, err)

		assert.Equal(t, account.UserID, updated.UserID)
		assert.Equal(t, account.Username, updated.Username)
		assert.Equal(t, account.CreatedAt, updated.CreatedAt)
		assert.False(t, updated.LastPasswordChange.Before(account.LastPasswordChange))
		assert.NotEqual(t, account.Kdf.Salt, updated.Kdf.Salt)
		assert.NotEqual(t, account.WrappedDek.Nonce, updated.WrappedDek.Nonce)

		_, err = lifecycle.Unlock(updated, []byte("old password"))
		assert.ErrorIs(t, err, accountDomain.ErrWrongPassword)

		newDek, err := lifecycle.Unlock(updated, []byte("new password"))
		require.NoError(t, err)
		defer newDek.Destroy()
		assert.Equal(t, original, dekBytes(t, newDek))

		plaintext, err := recordCipher.DecryptRecord(ciphertext, nonce, newDek)
		require.NoError(t, err)
		assert.Equal(t, []byte("note before change"), plaintext)
	})

	t.Run("Success_InputNotMutated", func(t *testing.T) {
		before := *account
		_, err := lifecycle.ChangePassword(account, []byte("old password"), []byte("another password"))
		require.NoError(t, err)
		assert.Equal(t, before, *account)
	})

	t.Run("Failure_WrongCurrentPassword", func(t *testing.T) {
		_, err := lifecycle.ChangePassword(account, []byte("not it at all"), []byte("new password"))
		assert.ErrorIs(t, err, accountDomain.ErrWrongPassword)
	})

	t.Run("Failure_ShortNewPasswordBeforeKdf", func(t *testing.T) {
		mockKeyDeriver := cryptoServiceMocks.NewMockKeyDeriver(t)
		mockKeyManager := cryptoServiceMocks.NewMockKeyManager(t)
		instrumented := NewLifecycle(mockKeyDeriver, mockKeyManager, testKdfCost, discardLogger())

		_, err := instrumented.ChangePassword(account, []byte("old password"), []byte("short"))
		assert.ErrorIs(t, err, accountDomain.ErrInvalidCredentials)
		mockKeyDeriver.AssertNumberOfCalls(t, "DeriveKey", 0)
	})
}
