package service

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

const (
	// DefaultBcryptCost costs roughly 250-350ms per hash on current hardware.
	DefaultBcryptCost = 12

	// bcryptMaxInput is the number of bytes bcrypt reads from a password.
	bcryptMaxInput = 72

	legacyArgon2Prefix = "$argon2id$"
)

// passwordHasher implements PasswordHasher with bcrypt.
//
// Tokens produced by the previous argon2id scheme still verify through pwdhash
// and always report NeedsRehash, so they are upgraded on the next login.
type passwordHasher struct {
	cost   int
	legacy *pwdhash.PasswordHasher
}

// NewPasswordHasher creates a bcrypt PasswordHasher with the given cost.
func NewPasswordHasher(cost int) (PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}

	legacy, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		return nil, fmt.Errorf("failed to create legacy hasher: %w", err)
	}

	return &passwordHasher{cost: cost, legacy: legacy}, nil
}

// Hash returns a bcrypt token of the form $2a$<cost>$<salt><digest>.
func (p *passwordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: password is required", authDomain.ErrInvalidPassword)
	}
	if utf8.RuneCountInString(plaintext) < authDomain.MinPasswordLength {
		return "", fmt.Errorf(
			"%w: password must be at least %d characters",
			authDomain.ErrInvalidPassword,
			authDomain.MinPasswordLength,
		)
	}

	token, err := bcrypt.GenerateFromPassword(bcryptInput(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(token), nil
}

// Verify compares plaintext against a bcrypt or legacy argon2id token.
func (p *passwordHasher) Verify(plaintext, token string) (bool, error) {
	if plaintext == "" || token == "" {
		return false, fmt.Errorf("%w: password and hash are required", authDomain.ErrInvalidPassword)
	}

	if strings.HasPrefix(token, legacyArgon2Prefix) {
		ok, err := p.legacy.Verify([]byte(plaintext), token)
		if err != nil {
			return false, nil
		}
		return ok, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(token), bcryptInput(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: malformed hash token", authDomain.ErrInvalidPassword)
	}
}

// NeedsRehash reports true for legacy tokens, malformed tokens and bcrypt
// tokens whose cost is below the configured cost.
func (p *passwordHasher) NeedsRehash(token string) bool {
	if strings.HasPrefix(token, legacyArgon2Prefix) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(token))
	if err != nil {
		return true
	}
	return cost < p.cost
}

// ValidateStrength checks length bounds and the presence of uppercase,
// lowercase, digit and special characters.
func (p *passwordHasher) ValidateStrength(password string) authDomain.PasswordStrength {
	messages := make([]string, 0)

	length := utf8.RuneCountInString(password)
	if length < authDomain.MinPasswordLength {
		messages = append(messages, fmt.Sprintf(
			"Password must be at least %d characters long", authDomain.MinPasswordLength))
	}
	if length > authDomain.MaxPasswordLength {
		messages = append(messages, fmt.Sprintf(
			"Password must be at most %d characters long", authDomain.MaxPasswordLength))
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}

	if !upper {
		messages = append(messages, "Password must contain at least one uppercase letter")
	}
	if !lower {
		messages = append(messages, "Password must contain at least one lowercase letter")
	}
	if !digit {
		messages = append(messages, "Password must contain at least one number")
	}
	if !special {
		messages = append(messages, "Password must contain at least one special character")
	}

	return authDomain.PasswordStrength{
		Valid:    len(messages) == 0,
		Messages: messages,
	}
}

// bcryptInput maps passwords longer than bcrypt's input limit to a fixed-size
// digest so that no password byte is ignored.
func bcryptInput(plaintext string) []byte {
	if len(plaintext) <= bcryptMaxInput {
		return []byte(plaintext)
	}
	digest := sha256.Sum256([]byte(plaintext))
	return []byte(base64.StdEncoding.EncodeToString(digest[:]))
}
