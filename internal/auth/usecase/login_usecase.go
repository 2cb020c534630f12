package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	accountDomain "github.com/allisson/mealguard/internal/account/domain"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	authService "github.com/allisson/mealguard/internal/auth/service"
)

// loginUseCase implements LoginUseCase.
type loginUseCase struct {
	accounts CredentialStore
	hasher   authService.PasswordHasher
	tokens   authService.TokenService
	logger   *slog.Logger

	// decoy is verified against when the email is unknown so both failure paths
	// cost one hash comparison.
	decoy func() (string, error)
}

// NewLoginUseCase creates a LoginUseCase.
func NewLoginUseCase(
	accounts CredentialStore,
	hasher authService.PasswordHasher,
	tokens authService.TokenService,
	logger *slog.Logger,
) LoginUseCase {
	return &loginUseCase{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
		decoy: sync.OnceValues(func() (string, error) {
			return hasher.Hash("decoy-Password-1!")
		}),
	}
}

// Login verifies the credentials, upgrades the stored hash when its cost is
// outdated and issues a token.
func (l *loginUseCase) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, authDomain.ErrInvalidCredentials
	}

	account, err := l.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accountDomain.ErrAccountNotFound) {
			l.burnVerify(input.Password)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := l.hasher.Verify(input.Password, account.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, authDomain.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, authDomain.ErrAccountUnavailable
	}

	if l.hasher.NeedsRehash(account.PasswordHash) {
		l.rehash(ctx, account, input.Password)
	}

	identity := account.Identity()
	token, expiresAt, err := l.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		Identity:  identity,
	}, nil
}

// rehash replaces an outdated hash. Failures are logged; the login still succeeds.
func (l *loginUseCase) rehash(ctx context.Context, account *accountDomain.Account, password string) {
	hash, err := l.hasher.Hash(password)
	if err == nil {
		err = l.accounts.UpdatePasswordHash(ctx, account.ID, hash)
	}
	if err != nil {
		l.logger.Warn("failed to upgrade password hash",
			slog.String("account_id", account.ID.String()),
			slog.Any("error", err),
		)
		return
	}
	l.logger.Info("password hash upgraded", slog.String("account_id", account.ID.String()))
}

func (l *loginUseCase) burnVerify(password string) {
	decoy, err := l.decoy()
	if err != nil {
		return
	}
	_, _ = l.hasher.Verify(password, decoy)
}
