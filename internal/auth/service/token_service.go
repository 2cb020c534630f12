package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

// MinSigningSecretLength is the shortest HS256 secret accepted.
const MinSigningSecretLength = 32

// Claims is the JWT claim set of a bearer token. The subject is the account ID.
type Claims struct {
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// tokenService implements TokenService with HS256 signed JWTs.
type tokenService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// TokenServiceOption configures optional TokenService behavior.
type TokenServiceOption func(*tokenService)

// WithTokenClock overrides the clock used to stamp and check tokens.
func WithTokenClock(now func() time.Time) TokenServiceOption {
	return func(t *tokenService) {
		t.now = now
	}
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(
	secret []byte,
	issuer string,
	expiration time.Duration,
	opts ...TokenServiceOption,
) (TokenService, error) {
	if len(secret) < MinSigningSecretLength {
		return nil, fmt.Errorf("signing secret must be at least %d bytes", MinSigningSecretLength)
	}
	if expiration <= 0 {
		return nil, fmt.Errorf("token expiration must be positive, got %s", expiration)
	}

	t := &tokenService{
		secret:     secret,
		issuer:     issuer,
		expiration: expiration,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Issue signs a token carrying the identity claims.
func (t *tokenService) Issue(identity *authDomain.Identity) (string, time.Time, error) {
	now := t.now().UTC()
	expiresAt := now.Add(t.expiration)

	claims := Claims{
		Email:    identity.Email,
		TenantID: identity.TenantID.String(),
		Role:     identity.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify parses token and maps its claims to an Identity.
func (t *tokenService) Verify(token string) (*authDomain.Identity, error) {
	if token == "" {
		return nil, authDomain.ErrTokenMissing
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authDomain.ErrTokenExpired
		}
		return nil, authDomain.ErrTokenInvalid
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, authDomain.ErrTokenInvalid
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return nil, authDomain.ErrTokenInvalid
	}
	role := authDomain.Role(claims.Role)
	if !role.Valid() {
		return nil, authDomain.ErrTokenInvalid
	}

	return &authDomain.Identity{
		ID:       id,
		Email:    claims.Email,
		TenantID: tenantID,
		Role:     role,
	}, nil
}
