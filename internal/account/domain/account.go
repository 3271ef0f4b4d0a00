// Package domain defines the single-user account envelope and the authentication state.
//
// An Account is everything persisted about the user: identity, the Argon2id parameters
// and the DEK wrapped under the password-derived KEK. It never holds the password, the
// KEK or the plaintext DEK.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// CurrentVersion is the envelope schema version written by this build.
const CurrentVersion uint = 1

// MinPasswordLength is the minimum password length in bytes.
const MinPasswordLength = 8

// Account is the persisted envelope of the single local user.
type Account struct {
	// Version is the envelope schema version.
	Version uint
	// UserID is a random UUID assigned at creation.
	UserID uuid.UUID
	// Username is a non-blank display name. It is not a secret.
	Username string
	// Kdf holds the Argon2id inputs for the current password.
	Kdf cryptoDomain.KdfParams
	// WrappedDek is the DEK sealed under the password-derived KEK.
	WrappedDek cryptoDomain.WrappedDek
	// CreatedAt is when the account was created.
	CreatedAt time.Time
	// LastPasswordChange equals CreatedAt until the first password change.
	LastPasswordChange time.Time
}

// Identity returns the non-secret part of the account.
func (a *Account) Identity() *Identity {
	return &Identity{UserID: a.UserID, Username: a.Username}
}

// Identity is what callers learn about the user after a successful operation.
type Identity struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}
