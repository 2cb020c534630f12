// Package mocks provides mock implementations for testing auth use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	accountDomain "github.com/allisson/mealguard/internal/account/domain"
)

// MockAccountStore is a mock implementation of AccountFinder and CredentialStore.
type MockAccountStore struct {
	mock.Mock
}

// FindActiveAccountByID mocks the FindActiveAccountByID method of AccountFinder.
func (m *MockAccountStore) FindActiveAccountByID(
	ctx context.Context,
	id uuid.UUID,
) (*accountDomain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// GetByEmail mocks the GetByEmail method of CredentialStore.
func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// UpdatePasswordHash mocks the UpdatePasswordHash method of CredentialStore.
func (m *MockAccountStore) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}
