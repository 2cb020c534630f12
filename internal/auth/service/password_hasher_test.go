package service

import (
	"strings"
	"testing"

	"github.com/allisson/go-pwdhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

// testCost keeps hashing fast; production uses DefaultBcryptCost.
const testCost = bcrypt.MinCost + 1

func newTestHasher(t *testing.T) PasswordHasher {
	t.Helper()
	hasher, err := NewPasswordHasher(testCost)
	require.NoError(t, err)
	return hasher
}

func TestNewPasswordHasher(t *testing.T) {
	hasher, err := NewPasswordHasher(DefaultBcryptCost)
	require.NoError(t, err)
	assert.IsType(t, &passwordHasher{}, hasher)

	_, err = NewPasswordHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = NewPasswordHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestPasswordHasher_Hash(t *testing.T) {
	hasher := newTestHasher(t)

	t.Run("Success_SelfDescribingToken", func(t *testing.T) {
		token, err := hasher.Hash("Correct-Horse1")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(token, "$2a$05$"))

		cost, err := bcrypt.Cost([]byte(token))
		require.NoError(t, err)
		assert.Equal(t, testCost, cost)
	})

	t.Run("Success_SaltedPerCall", func(t *testing.T) {
		token1, err := hasher.Hash("Correct-Horse1")
		require.NoError(t, err)
		token2, err := hasher.Hash("Correct-Horse1")
		require.NoError(t, err)
		assert.NotEqual(t, token1, token2)
	})

	t.Run("Error_Empty", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.ErrorIs(t, err, authDomain.ErrInvalidPassword)
	})

	t.Run("Error_TooShort", func(t *testing.T) {
		_, err := hasher.Hash("Ab1!xyz")
		assert.ErrorIs(t, err, authDomain.ErrInvalidPassword)
	})
}

func TestPasswordHasher_Verify(t *testing.T) {
	hasher := newTestHasher(t)
	token, err := hasher.Hash("Correct-Horse1")
	require.NoError(t, err)

	t.Run("Match", func(t *testing.T) {
		ok, err := hasher.Verify("Correct-Horse1", token)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Mismatch", func(t *testing.T) {
		ok, err := hasher.Verify("Correct-Horse2", token)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Error_EmptyInputs", func(t *testing.T) {
		_, err := hasher.Verify("", token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidPassword)

		_, err = hasher.Verify("Correct-Horse1", "")
		assert.ErrorIs(t, err, authDomain.ErrInvalidPassword)
	})

	t.Run("Error_MalformedToken", func(t *testing.T) {
		ok, err := hasher.Verify("Correct-Horse1", "not-a-hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidPassword)
		assert.False(t, ok)
	})

	t.Run("LongPasswordUsesEveryByte", func(t *testing.T) {
		long := strings.Repeat("a", 100) + "B1!"
		longToken, err := hasher.Hash(long)
		require.NoError(t, err)

		ok, err := hasher.Verify(long, longToken)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = hasher.Verify(strings.Repeat("a", 100)+"B2!", longToken)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("LegacyArgon2Token", func(t *testing.T) {
		legacy, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
		require.NoError(t, err)
		legacyToken, err := legacy.Hash([]byte("Correct-Horse1"))
		require.NoError(t, err)

		ok, err := hasher.Verify("Correct-Horse1", legacyToken)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = hasher.Verify("wrong-password", legacyToken)
		require.NoError(t, err)
		assert.False(t, ok)

		assert.True(t, hasher.NeedsRehash(legacyToken))
	})
}

func TestPasswordHasher_NeedsRehash(t *testing.T) {
	hasher := newTestHasher(t)

	lower, err := bcrypt.GenerateFromPassword([]byte("Correct-Horse1"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, hasher.NeedsRehash(string(lower)))

	current, err := hasher.Hash("Correct-Horse1")
	require.NoError(t, err)
	assert.False(t, hasher.NeedsRehash(current))

	higher, err := bcrypt.GenerateFromPassword([]byte("Correct-Horse1"), testCost+1)
	require.NoError(t, err)
	assert.False(t, hasher.NeedsRehash(string(higher)))

	assert.True(t, hasher.NeedsRehash(""))
	assert.True(t, hasher.NeedsRehash("$2a$xx$garbage"))
}

func TestPasswordHasher_ValidateStrength(t *testing.T) {
	hasher := newTestHasher(t)

	tests := []struct {
		name     string
		password string
		valid    bool
		messages []string
	}{
		{
			name:     "MinimumLengthAllClasses",
			password: "short1A!",
			valid:    true,
		},
		{
			name:     "MissingUpperAndSpecial",
			password: "alllowercase1",
			messages: []string{
				"Password must contain at least one uppercase letter",
				"Password must contain at least one special character",
			},
		},
		{
			name:     "TooShort",
			password: "aB1!",
			messages: []string{"Password must be at least 8 characters long"},
		},
		{
			name:     "TooLong",
			password: strings.Repeat("aB1!", 33),
			messages: []string{"Password must be at most 128 characters long"},
		},
		{
			name:     "Empty",
			password: "",
			messages: []string{
				"Password must be at least 8 characters long",
				"Password must contain at least one uppercase letter",
				"Password must contain at least one lowercase letter",
				"Password must contain at least one number",
				"Password must contain at least one special character",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := hasher.ValidateStrength(tt.password)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.valid {
				assert.Empty(t, result.Messages)
				return
			}
			assert.Equal(t, tt.messages, result.Messages)
		})
	}
}
