package commands

import (
	"context"
	"fmt"
	"log/slog"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	accountUseCase "github.com/allisson/clinicnotes/internal/account/usecase"
)

// RunCreateAccount creates the single local account.
func RunCreateAccount(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	logger *slog.Logger,
	console *Console,
	username string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	password, err := console.ReadNewPassword("Password: ")
	if err != nil {
		return err
	}
	defer zero(password)

	identity, err := accounts.Create(ctx, username, password)
	if err != nil {
		return err
	}

	logger.Info("account created", slog.String("username", identity.Username))
	return writeIdentity(console.Writer(), format, "Account created successfully", identity)
}

// RunStatus prints the account identity. It does not ask for the password.
func RunStatus(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	console *Console,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	identity, err := accounts.Status(ctx)
	if err != nil {
		return err
	}
	return writeIdentity(console.Writer(), format, "Account found", identity)
}

// RunAuthenticate checks the password and reports the result. A wrong password
// returns ErrWrongPassword.
func RunAuthenticate(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	logger *slog.Logger,
	console *Console,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	password, err := console.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	defer zero(password)

	identity, ok, err := accounts.Authenticate(ctx, password)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn("authentication failed")
		return accountDomain.ErrWrongPassword
	}
	return writeIdentity(console.Writer(), format, "Authenticated", identity)
}

// RunChangePassword re-wraps the DEK under a new password.
func RunChangePassword(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	logger *slog.Logger,
	console *Console,
) error {
	current, err := console.ReadPassword("Current password: ")
	if err != nil {
		return err
	}
	defer zero(current)

	next, err := console.ReadNewPassword("New password: ")
	if err != nil {
		return err
	}
	defer zero(next)

	if err := accounts.ChangePassword(ctx, current, next); err != nil {
		return err
	}

	logger.Info("password changed")
	_, err = fmt.Fprintln(console.Writer(), "Password changed successfully")
	return err
}
