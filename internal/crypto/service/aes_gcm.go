package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/mealguard/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// The envelope format stores a 16-byte IV and a detached 16-byte tag, so the GCM
// instance is built with a 16-byte nonce instead of the usual 12.
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from multiple
//	goroutines. Each encryption operation generates a fresh IV independently.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes. Returns ErrInvalidKeySize otherwise.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt seals plaintext under a freshly generated random IV.
//
// The returned ciphertext does not include the tag; the tag is returned on its
// own so it can be stored in a separate envelope field. Pass nil aad when no
// associated data is bound.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, iv, tag []byte, err error) {
	iv = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	sealed := a.aead.Seal(nil, iv, plaintext, aad)
	split := len(sealed) - a.aead.Overhead()

	return sealed[:split], iv, sealed[split:], nil
}

// Decrypt verifies the tag and returns the plaintext.
//
// Any verification failure (tampered IV, tag or ciphertext, or the wrong key)
// returns ErrAuthenticationFailed and no plaintext.
func (a *AESGCMCipher) Decrypt(ciphertext, iv, tag, aad []byte) ([]byte, error) {
	if len(iv) != a.aead.NonceSize() || len(tag) != a.aead.Overhead() {
		return nil, cryptoDomain.ErrInvalidEnvelope
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := a.aead.Open(nil, iv, sealed, aad)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	return plaintext, nil
}
