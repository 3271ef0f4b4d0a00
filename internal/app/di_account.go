package app

import (
	"fmt"

	accountRepository "github.com/allisson/clinicnotes/internal/account/repository"
	accountService "github.com/allisson/clinicnotes/internal/account/service"
	accountUseCase "github.com/allisson/clinicnotes/internal/account/usecase"
	"github.com/allisson/clinicnotes/internal/database"
	"github.com/allisson/clinicnotes/internal/session"
)

// AccountRepository returns the account repository for the configured driver.
func (c *Container) AccountRepository() (accountUseCase.AccountRepository, error) {
	var err error
	c.accountRepositoryInit.Do(func() {
		c.accountRepository, err = c.initAccountRepository()
		if err != nil {
			c.setInitError("accountRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("accountRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.accountRepository, nil
}

// Lifecycle returns the account lifecycle service.
func (c *Container) Lifecycle() *accountService.Lifecycle {
	c.lifecycleInit.Do(func() {
		c.lifecycle = accountService.NewLifecycle(
			c.KeyDeriver(),
			c.KeyManager(),
			c.config.KdfCost(),
			c.Logger(),
		)
	})
	return c.lifecycle
}

// AccountUseCase returns the account use case, wrapped with metrics.
func (c *Container) AccountUseCase() (accountUseCase.AccountUseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.setInitError("accountUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("accountUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// Session returns the process authentication state machine.
func (c *Container) Session() (*session.Session, error) {
	var err error
	c.sessionInit.Do(func() {
		var useCase accountUseCase.AccountUseCase
		useCase, err = c.AccountUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get account use case for session: %w", err)
			c.setInitError("session", err)
			return
		}
		limiter := session.NewAttemptLimiter(c.config.AuthAttemptsPerMinute, c.config.AuthAttemptsBurst)
		c.session = session.NewSession(useCase, limiter, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("session"); storedErr != nil {
		return nil, storedErr
	}
	return c.session, nil
}

// Keyring returns the in-memory DEK cache of the interactive shell.
func (c *Container) Keyring() *session.Keyring {
	c.keyringInit.Do(func() {
		c.keyring = session.NewKeyring()
	})
	return c.keyring
}

func (c *Container) initAccountRepository() (accountUseCase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverSQLite:
		return accountRepository.NewSQLiteAccountRepository(db), nil
	case database.DriverPostgres:
		return accountRepository.NewPostgreSQLAccountRepository(db), nil
	case database.DriverMySQL:
		return accountRepository.NewMySQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAccountUseCase() (accountUseCase.AccountUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	repo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
	}

	useCase := accountUseCase.NewAccountUseCase(txManager, repo, c.Lifecycle(), c.Logger())
	return accountUseCase.NewAccountUseCaseWithMetrics(useCase, businessMetrics), nil
}
