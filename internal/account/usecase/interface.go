// Package usecase orchestrates the account lifecycle with persistence.
//
// Use cases load and store the envelope through AccountRepository and delegate all
// cryptography to the Lifecycle service. They never cache key material.
package usecase

import (
	"context"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// AccountRepository defines the interface for account envelope persistence.
type AccountRepository interface {
	Save(ctx context.Context, account *accountDomain.Account) error
	Get(ctx context.Context) (*accountDomain.Account, error)
	Exists(ctx context.Context) (bool, error)
}

// Lifecycle defines the pure envelope operations the use case delegates to.
type Lifecycle interface {
	CreateAccount(username string, password []byte) (*accountDomain.Account, error)
	Authenticate(account *accountDomain.Account, password []byte) bool
	Unlock(account *accountDomain.Account, password []byte) (*cryptoDomain.Dek, error)
	ChangePassword(account *accountDomain.Account, current, next []byte) (*accountDomain.Account, error)
}

// AccountUseCase defines the interface for account business logic.
type AccountUseCase interface {
	// Create builds and persists the single account. A second call fails with
	// ErrAccountAlreadyExists.
	Create(ctx context.Context, username string, password []byte) (*accountDomain.Identity, error)

	// Authenticate checks the password. A wrong password is (nil, false, nil); an
	// error is only returned when the account cannot be loaded.
	Authenticate(ctx context.Context, password []byte) (*accountDomain.Identity, bool, error)

	// Unlock checks the password and returns the DEK.
	//
	// Security Note: the caller owns the returned Dek and MUST call Destroy on it.
	Unlock(ctx context.Context, password []byte) (*accountDomain.Identity, *cryptoDomain.Dek, error)

	// ChangePassword re-wraps the DEK under next. Stored records are untouched.
	ChangePassword(ctx context.Context, current, next []byte) error

	// Status returns the account identity without requiring the password.
	Status(ctx context.Context) (*accountDomain.Identity, error)
}
