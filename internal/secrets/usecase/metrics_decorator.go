package usecase

import (
	"context"
	"time"

	"github.com/allisson/onboarding/internal/metrics"
)

// secretProviderWithMetrics decorates SecretProvider with metrics instrumentation.
type secretProviderWithMetrics struct {
	next    SecretProvider
	metrics metrics.BusinessMetrics
}

// NewSecretProviderWithMetrics wraps a SecretProvider with metrics recording.
func NewSecretProviderWithMetrics(provider SecretProvider, m metrics.BusinessMetrics) SecretProvider {
	return &secretProviderWithMetrics{
		next:    provider,
		metrics: m,
	}
}

// GetSecret records metrics for secret resolution.
func (s *secretProviderWithMetrics) GetSecret(ctx context.Context, name string) (string, error) {
	start := time.Now()
	value, err := s.next.GetSecret(ctx, name)

	status := metrics.Status(err)

	s.metrics.RecordOperation(ctx, metrics.DomainSecrets, "secret_get", status)
	s.metrics.RecordDuration(ctx, metrics.DomainSecrets, "secret_get", time.Since(start), status)

	return value, err
}

// SetSecret records metrics for secret writes.
func (s *secretProviderWithMetrics) SetSecret(ctx context.Context, name, value string) error {
	start := time.Now()
	err := s.next.SetSecret(ctx, name, value)

	status := metrics.Status(err)

	s.metrics.RecordOperation(ctx, metrics.DomainSecrets, "secret_set", status)
	s.metrics.RecordDuration(ctx, metrics.DomainSecrets, "secret_set", time.Since(start), status)

	return err
}

// Invalidate is not instrumented.
func (s *secretProviderWithMetrics) Invalidate(name string) {
	s.next.Invalidate(name)
}
