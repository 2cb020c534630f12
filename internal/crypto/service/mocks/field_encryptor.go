// Package mocks provides mock implementations of the field encryption services.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/mealguard/internal/crypto/domain"
)

// MockFieldEncryptor is a mock implementation of FieldEncryptor for testing.
type MockFieldEncryptor struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of FieldEncryptor.
func (m *MockFieldEncryptor) Encrypt(
	ctx context.Context,
	plaintext string,
	keyVersion int,
) (*cryptoDomain.Envelope, error) {
	args := m.Called(ctx, plaintext, keyVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Envelope), args.Error(1)
}

// Decrypt mocks the Decrypt method of FieldEncryptor.
func (m *MockFieldEncryptor) Decrypt(ctx context.Context, envelope *cryptoDomain.Envelope) (string, error) {
	args := m.Called(ctx, envelope)
	return args.String(0), args.Error(1)
}

// EncryptField mocks the EncryptField method of FieldEncryptor.
func (m *MockFieldEncryptor) EncryptField(ctx context.Context, value string) (string, error) {
	args := m.Called(ctx, value)
	return args.String(0), args.Error(1)
}

// DecryptField mocks the DecryptField method of FieldEncryptor.
func (m *MockFieldEncryptor) DecryptField(ctx context.Context, stored string) (string, error) {
	args := m.Called(ctx, stored)
	return args.String(0), args.Error(1)
}

// EncryptFields mocks the EncryptFields method of FieldEncryptor.
func (m *MockFieldEncryptor) EncryptFields(
	ctx context.Context,
	fields map[string]string,
) (map[string]string, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// DecryptFields mocks the DecryptFields method of FieldEncryptor.
func (m *MockFieldEncryptor) DecryptFields(
	ctx context.Context,
	fields map[string]string,
) (map[string]string, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// IsEncrypted mocks the IsEncrypted method of FieldEncryptor.
func (m *MockFieldEncryptor) IsEncrypted(value string) bool {
	args := m.Called(value)
	return args.Bool(0)
}
