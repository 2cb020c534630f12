package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/mealguard/internal/crypto/domain"
)

// FieldCipher performs authenticated encryption of single string values and
// field maps, producing versioned envelopes.
//
// New writes always use the current key version unless a version is passed
// explicitly; reads reach any version still loaded in the KeyResolver.
type FieldCipher struct {
	keys    KeyResolver
	newAEAD func(key []byte) (AEAD, error)
	logger  *slog.Logger
}

// NewFieldCipher creates a FieldCipher backed by AES-256-GCM.
func NewFieldCipher(keys KeyResolver, logger *slog.Logger) *FieldCipher {
	return &FieldCipher{
		keys: keys,
		newAEAD: func(key []byte) (AEAD, error) {
			return NewAESGCM(key)
		},
		logger: logger,
	}
}

// Encrypt seals plaintext with keyVersion, or the current key when keyVersion is 0.
func (f *FieldCipher) Encrypt(
	ctx context.Context,
	plaintext string,
	keyVersion int,
) (*cryptoDomain.Envelope, error) {
	if plaintext == "" {
		return nil, cryptoDomain.ErrEmptyPlaintext
	}

	key, err := f.keys.Resolve(ctx, keyVersion)
	if err != nil {
		return nil, err
	}

	aead, err := f.newAEAD(key.Material)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryption, err)
	}

	ciphertext, iv, tag, err := aead.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryption, err)
	}

	return &cryptoDomain.Envelope{
		KeyVersion: key.Version,
		IV:         iv,
		AuthTag:    tag,
		Ciphertext: ciphertext,
	}, nil
}

// Decrypt opens an envelope with the key version it references.
//
// Fails closed: a tag that does not verify returns ErrAuthenticationFailed and
// no plaintext.
func (f *FieldCipher) Decrypt(ctx context.Context, envelope *cryptoDomain.Envelope) (string, error) {
	if err := envelope.Validate(); err != nil {
		return "", err
	}

	key, err := f.keys.Resolve(ctx, envelope.KeyVersion)
	if err != nil {
		return "", err
	}

	aead, err := f.newAEAD(key.Material)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrEncryption, err)
	}

	plaintext, err := aead.Decrypt(envelope.Ciphertext, envelope.IV, envelope.AuthTag, nil)
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrAuthenticationFailed) {
			f.logAuthenticationFailure(ctx, envelope.KeyVersion)
		}
		return "", err
	}
	return string(plaintext), nil
}

// EncryptField encrypts value with the current key and returns the stored form.
func (f *FieldCipher) EncryptField(ctx context.Context, value string) (string, error) {
	envelope, err := f.Encrypt(ctx, value, 0)
	if err != nil {
		return "", err
	}
	return envelope.Marshal()
}

// DecryptField parses a stored envelope string and decrypts it.
func (f *FieldCipher) DecryptField(ctx context.Context, stored string) (string, error) {
	envelope, err := cryptoDomain.ParseEnvelope(stored)
	if err != nil {
		return "", err
	}
	return f.Decrypt(ctx, envelope)
}

// EncryptFields encrypts every value of fields concurrently and returns a map
// with the same keys. The first failing field fails the call.
func (f *FieldCipher) EncryptFields(
	ctx context.Context,
	fields map[string]string,
) (map[string]string, error) {
	return f.apply(ctx, fields, f.EncryptField)
}

// DecryptFields decrypts every value of fields concurrently and returns a map
// with the same keys. The first failing field fails the call.
func (f *FieldCipher) DecryptFields(
	ctx context.Context,
	fields map[string]string,
) (map[string]string, error) {
	return f.apply(ctx, fields, f.DecryptField)
}

// IsEncrypted reports whether value has the stored envelope shape.
func (f *FieldCipher) IsEncrypted(value string) bool {
	return cryptoDomain.IsEncrypted(value)
}

// apply fans op out over every field and joins the results.
// Each task writes only its own slot of results, so no locking is needed.
func (f *FieldCipher) apply(
	ctx context.Context,
	fields map[string]string,
	op func(ctx context.Context, value string) (string, error),
) (map[string]string, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	results := make([]string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			result, err := op(gctx, fields[name])
			if err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}

// logAuthenticationFailure records a tag verification failure for tampering
// investigations. Plaintext and key bytes are never logged.
func (f *FieldCipher) logAuthenticationFailure(ctx context.Context, keyVersion int) {
	attrs := []any{
		slog.Int("key_version", keyVersion),
		slog.Time("timestamp", time.Now().UTC()),
	}
	if recordID, ok := cryptoDomain.RecordID(ctx); ok {
		attrs = append(attrs, slog.String("record_id", recordID))
	}
	f.logger.Warn("field decryption failed authentication", attrs...)
}
