// Package service implements the account lifecycle: creating the envelope, verifying a
// password, unlocking the DEK and re-wrapping it under a new password.
//
// Lifecycle is pure: it takes and returns Account values and never touches storage,
// so every operation can be tested without a database.
package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	cryptoService "github.com/allisson/clinicnotes/internal/crypto/service"
	apperrors "github.com/allisson/clinicnotes/internal/errors"
	appValidation "github.com/allisson/clinicnotes/internal/validation"
)

// Lifecycle creates, verifies and re-keys the single account envelope.
type Lifecycle struct {
	keyDeriver cryptoService.KeyDeriver
	keyManager cryptoService.KeyManager
	kdfCost    cryptoDomain.KdfCost
	logger     *slog.Logger
	now        func() time.Time
}

// NewLifecycle creates a Lifecycle that stamps kdfCost on new passwords.
func NewLifecycle(
	keyDeriver cryptoService.KeyDeriver,
	keyManager cryptoService.KeyManager,
	kdfCost cryptoDomain.KdfCost,
	logger *slog.Logger,
) *Lifecycle {
	return &Lifecycle{
		keyDeriver: keyDeriver,
		keyManager: keyManager,
		kdfCost:    kdfCost,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateAccount builds a new envelope: fresh salt, KEK from the password, random DEK
// wrapped under the KEK. Credentials are checked before any random draw or KDF run.
func (l *Lifecycle) CreateAccount(username string, password []byte) (*accountDomain.Account, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}
	if err := l.kdfCost.Validate(); err != nil {
		return nil, err
	}

	dek, err := l.keyManager.GenerateDek()
	if err != nil {
		return nil, err
	}
	defer dek.Destroy()

	kdf, wrapped, err := l.wrap(password, dek)
	if err != nil {
		return nil, err
	}

	now := l.now()
	return &accountDomain.Account{
		Version:            accountDomain.CurrentVersion,
		UserID:             uuid.New(),
		Username:           username,
		Kdf:                kdf,
		WrappedDek:         wrapped,
		CreatedAt:          now,
		LastPasswordChange: now,
	}, nil
}

// Unlock derives the KEK with the stored parameters and unwraps the DEK.
//
// A wrong password returns ErrWrongPassword. Malformed envelopes and KDF faults are
// reported as such and are never conflated with a wrong password. The caller owns
// the returned Dek and must Destroy it.
func (l *Lifecycle) Unlock(account *accountDomain.Account, password []byte) (*cryptoDomain.Dek, error) {
	if account == nil {
		return nil, accountDomain.ErrAccountNotFound
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	kek, err := l.keyDeriver.DeriveKey(password, account.Kdf)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(kek)

	dek, err := l.keyManager.UnwrapDek(kek, account.WrappedDek)
	if err != nil {
		if apperrors.Is(err, cryptoDomain.ErrDecryptionFailed) {
			return nil, accountDomain.ErrWrongPassword
		}
		return nil, err
	}
	return dek, nil
}

// Authenticate reports whether password unlocks the account.
//
// Every failure is reported as false. Failures other than a wrong password are
// logged so a corrupted envelope can be told apart from a typo.
func (l *Lifecycle) Authenticate(account *accountDomain.Account, password []byte) bool {
	dek, err := l.Unlock(account, password)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrAuthenticationFailed) {
			l.logger.Warn("account authentication failed", slog.Any("error", err))
		}
		return false
	}
	dek.Destroy()
	return true
}

// ChangePassword unlocks the account with current and re-wraps the same DEK under
// next with a new salt and nonce. Records encrypted under the DEK stay readable.
//
// The input account is not modified; the caller persists the returned value.
func (l *Lifecycle) ChangePassword(
	account *accountDomain.Account,
	current, next []byte,
) (*accountDomain.Account, error) {
	if err := validatePassword(next); err != nil {
		return nil, err
	}
	if err := l.kdfCost.Validate(); err != nil {
		return nil, err
	}

	dek, err := l.Unlock(account, current)
	if err != nil {
		return nil, err
	}
	defer dek.Destroy()

	kdf, wrapped, err := l.wrap(next, dek)
	if err != nil {
		return nil, err
	}

	updated := *account
	updated.Kdf = kdf
	updated.WrappedDek = wrapped
	updated.LastPasswordChange = l.now()
	return &updated, nil
}

// wrap draws a salt, derives the KEK from password and wraps dek under it.
func (l *Lifecycle) wrap(
	password []byte,
	dek *cryptoDomain.Dek,
) (cryptoDomain.KdfParams, cryptoDomain.WrappedDek, error) {
	salt, err := l.keyDeriver.GenerateSalt()
	if err != nil {
		return cryptoDomain.KdfParams{}, cryptoDomain.WrappedDek{}, err
	}
	kdf := cryptoDomain.NewKdfParams(salt, l.kdfCost)

	kek, err := l.keyDeriver.DeriveKey(password, kdf)
	if err != nil {
		return cryptoDomain.KdfParams{}, cryptoDomain.WrappedDek{}, err
	}
	defer cryptoDomain.Zero(kek)

	wrapped, err := l.keyManager.WrapDek(kek, dek, cryptoDomain.AES256GCM)
	if err != nil {
		return cryptoDomain.KdfParams{}, cryptoDomain.WrappedDek{}, err
	}
	return kdf, wrapped, nil
}

func validateCredentials(username string, password []byte) error {
	if err := validation.Validate(username, validation.Required, appValidation.NotBlank); err != nil {
		return apperrors.Wrap(accountDomain.ErrInvalidCredentials, "username "+err.Error())
	}
	return validatePassword(password)
}

func validatePassword(password []byte) error {
	err := validation.Validate(password, appValidation.PasswordLength{Min: accountDomain.MinPasswordLength})
	if err != nil {
		return apperrors.Wrap(accountDomain.ErrInvalidCredentials, err.Error())
	}
	return nil
}
