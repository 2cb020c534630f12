package app

import (
	"fmt"

	authHTTP "github.com/allisson/mealguard/internal/auth/http"
	authService "github.com/allisson/mealguard/internal/auth/service"
	authUseCase "github.com/allisson/mealguard/internal/auth/usecase"
)

// PasswordHasher returns the password hasher configured with the bcrypt cost.
func (c *Container) PasswordHasher() (authService.PasswordHasher, error) {
	c.passwordHasherInit.Do(func() {
		var err error
		c.passwordHasher, err = authService.NewPasswordHasher(c.config.PasswordBcryptCost)
		if err != nil {
			err = fmt.Errorf("failed to create password hasher: %w", err)
		}
		c.storeInitError("passwordHasher", err)
	})
	return c.passwordHasher, c.initError("passwordHasher")
}

// TokenService returns the bearer token signer and verifier.
func (c *Container) TokenService() (authService.TokenService, error) {
	c.tokenServiceInit.Do(func() {
		var err error
		c.tokenService, err = authService.NewTokenService(
			[]byte(c.config.JWTSecret),
			c.config.JWTIssuer,
			c.config.AuthTokenExpiration,
		)
		if err != nil {
			err = fmt.Errorf("failed to create token service: %w", err)
		}
		c.storeInitError("tokenService", err)
	})
	return c.tokenService, c.initError("tokenService")
}

// Authenticator returns the request authenticator.
func (c *Container) Authenticator() (authUseCase.Authenticator, error) {
	c.authenticatorInit.Do(func() {
		var err error
		c.authenticator, err = c.initAuthenticator()
		c.storeInitError("authenticator", err)
	})
	return c.authenticator, c.initError("authenticator")
}

// LoginUseCase returns the login use case.
func (c *Container) LoginUseCase() (authUseCase.LoginUseCase, error) {
	c.loginUseCaseInit.Do(func() {
		var err error
		c.loginUseCase, err = c.initLoginUseCase()
		c.storeInitError("loginUseCase", err)
	})
	return c.loginUseCase, c.initError("loginUseCase")
}

// AuthHandler returns the HTTP handler for the login endpoint.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	c.authHandlerInit.Do(func() {
		var err error
		c.authHandler, err = c.initAuthHandler()
		c.storeInitError("authHandler", err)
	})
	return c.authHandler, c.initError("authHandler")
}

// initAuthenticator creates the authenticator, wrapped with metrics when enabled.
func (c *Container) initAuthenticator() (authUseCase.Authenticator, error) {
	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for authenticator: %w", err)
	}

	accountRepository, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for authenticator: %w", err)
	}

	authenticator := authUseCase.NewAuthenticator(tokenService, accountRepository)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for authenticator: %w", err)
		}
		return authUseCase.NewAuthenticatorWithMetrics(authenticator, businessMetrics), nil
	}

	return authenticator, nil
}

// initLoginUseCase creates the login use case, wrapped with metrics when enabled.
func (c *Container) initLoginUseCase() (authUseCase.LoginUseCase, error) {
	accountRepository, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for login use case: %w", err)
	}

	passwordHasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for login use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for login use case: %w", err)
	}

	loginUseCase := authUseCase.NewLoginUseCase(accountRepository, passwordHasher, tokenService, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for login use case: %w", err)
		}
		return authUseCase.NewLoginUseCaseWithMetrics(loginUseCase, businessMetrics), nil
	}

	return loginUseCase, nil
}

// initAuthHandler creates the login handler.
func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	loginUseCase, err := c.LoginUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get login use case for auth handler: %w", err)
	}
	return authHTTP.NewAuthHandler(loginUseCase, c.Logger()), nil
}
