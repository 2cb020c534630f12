package usecase

import (
	"context"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	authService "github.com/allisson/mealguard/internal/auth/service"
	apperrors "github.com/allisson/mealguard/internal/errors"
)

// authenticator implements Authenticator.
type authenticator struct {
	tokens   authService.TokenService
	accounts AccountFinder
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens authService.TokenService, accounts AccountFinder) Authenticator {
	return &authenticator{
		tokens:   tokens,
		accounts: accounts,
	}
}

// Authenticate verifies the token, then builds the identity from the live
// account so that deactivations and role changes apply to tokens already issued.
func (a *authenticator) Authenticate(ctx context.Context, token string) (*authDomain.Identity, error) {
	claimed, err := a.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	account, err := a.accounts.FindActiveAccountByID(ctx, claimed.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to look up account")
	}
	if account == nil || !account.IsActive {
		return nil, authDomain.ErrAccountUnavailable
	}

	return account.Identity(), nil
}
