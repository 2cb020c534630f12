package domain

import (
	"errors"

	apperrors "github.com/allisson/mealguard/internal/errors"
)

// Field encryption error definitions.
//
// Messages never include plaintext, key bytes or ciphertext.
var (
	// ErrConfig indicates key material is missing or malformed. It is fatal at
	// startup: the process must not serve requests with a broken key store.
	ErrConfig = errors.New("invalid field encryption key configuration")

	// ErrKeyNotFound indicates an envelope or caller referenced a key version that
	// was never loaded. This implies undecryptable data and must not be swallowed.
	ErrKeyNotFound = apperrors.Wrap(apperrors.ErrNotFound, "encryption key version not found")

	// ErrEmptyPlaintext indicates an attempt to encrypt an empty value.
	ErrEmptyPlaintext = apperrors.Wrap(apperrors.ErrInvalidInput, "plaintext must not be empty")

	// ErrInvalidEnvelope indicates a stored value is not a well-formed envelope.
	ErrInvalidEnvelope = apperrors.Wrap(apperrors.ErrInvalidInput, "malformed encrypted envelope")

	// ErrAuthenticationFailed indicates the authentication tag did not verify.
	// Its message matches a generic decryption failure.
	ErrAuthenticationFailed = apperrors.Wrap(apperrors.ErrInvalidInput, "decryption failed")

	// ErrEncryption indicates the underlying cipher failed while sealing.
	ErrEncryption = errors.New("encryption failed")

	// ErrInvalidKeySize indicates a key does not have exactly KeySize bytes.
	ErrInvalidKeySize = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid key size")
)
