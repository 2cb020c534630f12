package app

import (
	"fmt"

	accountHTTP "github.com/allisson/mealguard/internal/account/http"
	accountRepository "github.com/allisson/mealguard/internal/account/repository"
	accountUseCase "github.com/allisson/mealguard/internal/account/usecase"
	"github.com/allisson/mealguard/internal/database"
)

// AccountRepository returns the account repository based on database driver.
func (c *Container) AccountRepository() (accountUseCase.AccountRepository, error) {
	c.accountRepositoryInit.Do(func() {
		var err error
		c.accountRepository, err = c.initAccountRepository()
		c.storeInitError("accountRepository", err)
	})
	return c.accountRepository, c.initError("accountRepository")
}

// AccountUseCase returns the account use case.
func (c *Container) AccountUseCase() (accountUseCase.UseCase, error) {
	c.accountUseCaseInit.Do(func() {
		var err error
		c.accountUseCase, err = c.initAccountUseCase()
		c.storeInitError("accountUseCase", err)
	})
	return c.accountUseCase, c.initError("accountUseCase")
}

// RotationUseCase returns the field key rotation use case.
func (c *Container) RotationUseCase() (accountUseCase.RotationUseCase, error) {
	c.rotationUseCaseInit.Do(func() {
		var err error
		c.rotationUseCase, err = c.initRotationUseCase()
		c.storeInitError("rotationUseCase", err)
	})
	return c.rotationUseCase, c.initError("rotationUseCase")
}

// AccountHandler returns the HTTP handler for account operations.
func (c *Container) AccountHandler() (*accountHTTP.AccountHandler, error) {
	c.accountHandlerInit.Do(func() {
		var err error
		c.accountHandler, err = c.initAccountHandler()
		c.storeInitError("accountHandler", err)
	})
	return c.accountHandler, c.initError("accountHandler")
}

// initAccountRepository creates the account repository based on the database driver.
func (c *Container) initAccountRepository() (accountUseCase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return accountRepository.NewPostgreSQLAccountRepository(db), nil
	case database.DriverMySQL:
		return accountRepository.NewMySQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAccountUseCase creates the account use case, wrapped with metrics when enabled.
func (c *Container) initAccountUseCase() (accountUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	repository, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	passwordHasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for account use case: %w", err)
	}

	fieldCipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for account use case: %w", err)
	}

	useCase := accountUseCase.NewAccountUseCase(txManager, repository, passwordHasher, fieldCipher)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
		}
		return accountUseCase.NewUseCaseWithMetrics(useCase, businessMetrics), nil
	}

	return useCase, nil
}

// initRotationUseCase creates the rotation use case with all its dependencies.
func (c *Container) initRotationUseCase() (accountUseCase.RotationUseCase, error) {
	repository, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for rotation use case: %w", err)
	}

	fieldCipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for rotation use case: %w", err)
	}

	keyStore, err := c.KeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store for rotation use case: %w", err)
	}

	return accountUseCase.NewRotationUseCase(repository, fieldCipher, keyStore, c.Logger()), nil
}

// initAccountHandler creates the account handler.
func (c *Container) initAccountHandler() (*accountHTTP.AccountHandler, error) {
	useCase, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for account handler: %w", err)
	}
	return accountHTTP.NewAccountHandler(useCase, c.Logger()), nil
}
