package service

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/mealguard/internal/crypto/domain"
	"github.com/allisson/mealguard/internal/metrics"
)

// fieldEncryptorWithMetrics decorates FieldEncryptor with metrics instrumentation.
type fieldEncryptorWithMetrics struct {
	next    FieldEncryptor
	metrics metrics.BusinessMetrics
}

// NewFieldEncryptorWithMetrics wraps a FieldEncryptor with metrics recording.
func NewFieldEncryptorWithMetrics(next FieldEncryptor, m metrics.BusinessMetrics) FieldEncryptor {
	return &fieldEncryptorWithMetrics{
		next:    next,
		metrics: m,
	}
}

func (f *fieldEncryptorWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	f.metrics.RecordOperation(ctx, metrics.DomainCrypto, operation, status)
	f.metrics.RecordDuration(ctx, metrics.DomainCrypto, operation, time.Since(start), status)
}

// Encrypt records metrics for envelope encryption.
func (f *fieldEncryptorWithMetrics) Encrypt(
	ctx context.Context,
	plaintext string,
	keyVersion int,
) (*cryptoDomain.Envelope, error) {
	start := time.Now()
	envelope, err := f.next.Encrypt(ctx, plaintext, keyVersion)
	f.record(ctx, "field_encrypt", start, err)
	return envelope, err
}

// Decrypt records metrics for envelope decryption.
func (f *fieldEncryptorWithMetrics) Decrypt(
	ctx context.Context,
	envelope *cryptoDomain.Envelope,
) (string, error) {
	start := time.Now()
	plaintext, err := f.next.Decrypt(ctx, envelope)
	f.record(ctx, "field_decrypt", start, err)
	return plaintext, err
}

// EncryptField records metrics for stored-form encryption.
func (f *fieldEncryptorWithMetrics) EncryptField(ctx context.Context, value string) (string, error) {
	start := time.Now()
	stored, err := f.next.EncryptField(ctx, value)
	f.record(ctx, "field_encrypt", start, err)
	return stored, err
}

// DecryptField records metrics for stored-form decryption.
func (f *fieldEncryptorWithMetrics) DecryptField(ctx context.Context, stored string) (string, error) {
	start := time.Now()
	plaintext, err := f.next.DecryptField(ctx, stored)
	f.record(ctx, "field_decrypt", start, err)
	return plaintext, err
}

// EncryptFields records metrics for bulk encryption.
func (f *fieldEncryptorWithMetrics) EncryptFields(
	ctx context.Context,
	fields map[string]string,
) (map[string]string, error) {
	start := time.Now()
	out, err := f.next.EncryptFields(ctx, fields)
	f.record(ctx, "fields_encrypt", start, err)
	return out, err
}

// DecryptFields records metrics for bulk decryption.
func (f *fieldEncryptorWithMetrics) DecryptFields(
	ctx context.Context,
	fields map[string]string,
) (map[string]string, error) {
	start := time.Now()
	out, err := f.next.DecryptFields(ctx, fields)
	f.record(ctx, "fields_decrypt", start, err)
	return out, err
}

// IsEncrypted delegates without recording; it is a pure shape check.
func (f *fieldEncryptorWithMetrics) IsEncrypted(value string) bool {
	return f.next.IsEncrypted(value)
}
