// Package mocks provides mock implementations for testing account use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/mealguard/internal/account/domain"
)

// MockAccountRepository is a mock implementation of AccountRepository for testing.
type MockAccountRepository struct {
	mock.Mock
}

// Create mocks the Create method of AccountRepository.
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// GetByID mocks the GetByID method of AccountRepository.
func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// GetByEmail mocks the GetByEmail method of AccountRepository.
func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// FindActiveAccountByID mocks the FindActiveAccountByID method of AccountRepository.
func (m *MockAccountRepository) FindActiveAccountByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// UpdatePasswordHash mocks the UpdatePasswordHash method of AccountRepository.
func (m *MockAccountRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

// UpdatePhoneEncrypted mocks the UpdatePhoneEncrypted method of AccountRepository.
func (m *MockAccountRepository) UpdatePhoneEncrypted(ctx context.Context, id uuid.UUID, stored string) error {
	args := m.Called(ctx, id, stored)
	return args.Error(0)
}

// Deactivate mocks the Deactivate method of AccountRepository.
func (m *MockAccountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListByTenant mocks the ListByTenant method of AccountRepository.
func (m *MockAccountRepository) ListByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*domain.Account, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

// ListForRotation mocks the ListForRotation method of AccountRepository.
func (m *MockAccountRepository) ListForRotation(
	ctx context.Context,
	afterID uuid.UUID,
	limit int,
) ([]*domain.Account, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}
