package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authService "github.com/allisson/mealguard/internal/auth/service"
	cryptoService "github.com/allisson/mealguard/internal/crypto/service"
)

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHasher(t *testing.T) authService.PasswordHasher {
	t.Helper()
	hasher, err := authService.NewPasswordHasher(5)
	require.NoError(t, err)
	return hasher
}

func newTestSlots(t *testing.T, versions ...int) cryptoService.StaticKeySource {
	t.Helper()
	slots := make(cryptoService.StaticKeySource, len(versions))
	for _, version := range versions {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)
		slots[version] = base64.StdEncoding.EncodeToString(key)
	}
	return slots
}

func newTestKeyStore(t *testing.T, slots cryptoService.StaticKeySource, current int) *cryptoService.KeyStore {
	t.Helper()
	store := cryptoService.NewKeyStore(slots, current, createTestLogger())
	require.NoError(t, store.Load(context.Background()))
	return store
}

// MockTxManager is a mock implementation of database.TxManager that runs fn
// inline unless an error is configured.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
