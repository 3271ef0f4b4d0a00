package usecase

import (
	"context"
	"log/slog"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	"github.com/allisson/clinicnotes/internal/database"
)

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	txManager   database.TxManager
	accountRepo AccountRepository
	lifecycle   Lifecycle
	logger      *slog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager database.TxManager,
	accountRepo AccountRepository,
	lifecycle Lifecycle,
	logger *slog.Logger,
) AccountUseCase {
	return &accountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		lifecycle:   lifecycle,
		logger:      logger,
	}
}

// Create builds the envelope and stores it.
//
// The existence check runs twice: once before the KDF so a duplicate create fails
// fast, and again inside the transaction that inserts the row.
func (a *accountUseCase) Create(
	ctx context.Context,
	username string,
	password []byte,
) (*accountDomain.Identity, error) {
	exists, err := a.accountRepo.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, accountDomain.ErrAccountAlreadyExists
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	account, err := a.lifecycle.CreateAccount(username, password)
	if err != nil {
		return nil, err
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		exists, err := a.accountRepo.Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return accountDomain.ErrAccountAlreadyExists
		}
		return a.accountRepo.Save(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("account created", slog.String("user_id", account.UserID.String()))
	return account.Identity(), nil
}

// Authenticate loads the account and verifies the password.
func (a *accountUseCase) Authenticate(
	ctx context.Context,
	password []byte,
) (*accountDomain.Identity, bool, error) {
	account, err := a.accountRepo.Get(ctx)
	if err != nil {
		return nil, false, err
	}

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if !a.lifecycle.Authenticate(account, password) {
		return nil, false, nil
	}
	return account.Identity(), true, nil
}

// Unlock loads the account and unwraps the DEK.
func (a *accountUseCase) Unlock(
	ctx context.Context,
	password []byte,
) (*accountDomain.Identity, *cryptoDomain.Dek, error) {
	account, err := a.accountRepo.Get(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	dek, err := a.lifecycle.Unlock(account, password)
	if err != nil {
		return nil, nil, err
	}
	return account.Identity(), dek, nil
}

// ChangePassword re-wraps the DEK and stores the new envelope.
func (a *accountUseCase) ChangePassword(ctx context.Context, current, next []byte) error {
	account, err := a.accountRepo.Get(ctx)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	updated, err := a.lifecycle.ChangePassword(account, current, next)
	if err != nil {
		return err
	}

	if err := a.accountRepo.Save(ctx, updated); err != nil {
		return err
	}

	a.logger.Info("account password changed", slog.String("user_id", updated.UserID.String()))
	return nil
}

// Status returns the identity of the stored account.
func (a *accountUseCase) Status(ctx context.Context) (*accountDomain.Identity, error) {
	account, err := a.accountRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return account.Identity(), nil
}
