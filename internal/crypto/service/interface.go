// Package service provides the field encryption services: the versioned key
// store, the AES-256-GCM cipher and the envelope-producing field cipher.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/mealguard/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data
// with a detached authentication tag.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext, IV and tag.
	Encrypt(plaintext, aad []byte) (ciphertext, iv, tag []byte, err error)

	// Decrypt verifies the tag and decrypts ciphertext.
	Decrypt(ciphertext, iv, tag, aad []byte) ([]byte, error)
}

// KeyResolver resolves versioned field encryption keys.
type KeyResolver interface {
	// Resolve returns the key for version, or the current key when version is 0.
	Resolve(ctx context.Context, version int) (*cryptoDomain.Key, error)
}

// KeySource reads the raw, still-encoded key slots indexed by version.
type KeySource interface {
	Slots(ctx context.Context) (map[int]string, error)
}

// FieldEncryptor encrypts and decrypts individual PII fields into envelopes.
type FieldEncryptor interface {
	// Encrypt seals plaintext with keyVersion, or the current key when keyVersion is 0.
	Encrypt(ctx context.Context, plaintext string, keyVersion int) (*cryptoDomain.Envelope, error)

	// Decrypt opens an envelope using the key version it references.
	Decrypt(ctx context.Context, envelope *cryptoDomain.Envelope) (string, error)

	// EncryptField encrypts value with the current key and returns the stored form.
	EncryptField(ctx context.Context, value string) (string, error)

	// DecryptField parses a stored envelope string and decrypts it.
	DecryptField(ctx context.Context, stored string) (string, error)

	// EncryptFields encrypts every value of fields concurrently.
	EncryptFields(ctx context.Context, fields map[string]string) (map[string]string, error)

	// DecryptFields decrypts every value of fields concurrently.
	DecryptFields(ctx context.Context, fields map[string]string) (map[string]string, error)

	// IsEncrypted reports whether value has the stored envelope shape.
	IsEncrypted(value string) bool
}
