package usecase

import (
	"context"
	"time"

	"github.com/allisson/onboarding/internal/metrics"
)

// fieldCipherWithMetrics decorates FieldCipher with metrics instrumentation.
type fieldCipherWithMetrics struct {
	next    FieldCipher
	metrics metrics.BusinessMetrics
}

// NewFieldCipherWithMetrics wraps a FieldCipher with metrics recording.
func NewFieldCipherWithMetrics(cipher FieldCipher, m metrics.BusinessMetrics) FieldCipher {
	return &fieldCipherWithMetrics{
		next:    cipher,
		metrics: m,
	}
}

func (f *fieldCipherWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)

	f.metrics.RecordOperation(ctx, metrics.DomainCrypto, operation, status)
	f.metrics.RecordDuration(ctx, metrics.DomainCrypto, operation, time.Since(start), status)
}

// Encrypt records metrics for field encryption.
func (f *fieldCipherWithMetrics) Encrypt(ctx context.Context, plaintext string) (string, error) {
	start := time.Now()
	envelope, err := f.next.Encrypt(ctx, plaintext)
	f.record(ctx, "field_encrypt", start, err)
	return envelope, err
}

// Decrypt records metrics for field decryption.
func (f *fieldCipherWithMetrics) Decrypt(ctx context.Context, envelope string) (string, error) {
	start := time.Now()
	plaintext, err := f.next.Decrypt(ctx, envelope)
	f.record(ctx, "field_decrypt", start, err)
	return plaintext, err
}

// Mask is not instrumented.
func (f *fieldCipherWithMetrics) Mask(identifier string) string {
	return f.next.Mask(identifier)
}

// Key is not instrumented.
func (f *fieldCipherWithMetrics) Key(ctx context.Context) ([]byte, error) {
	return f.next.Key(ctx)
}
