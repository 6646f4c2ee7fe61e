package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/allisson/onboarding/internal/errors"
)

// Domains reported in the domain label of business metrics.
const (
	DomainAuth     = "auth"
	DomainCrypto   = "crypto"
	DomainInvestor = "investor"
	DomainSecrets  = "secrets"
	DomainUser     = "user"
)

// Outcomes reported in the status label of business metrics.
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusError    = "error"
)

// Status classifies the result of a use case call. Caller mistakes (bad input,
// duplicates, missing profiles, wrong credentials) are "rejected" so that the
// "error" series only counts faults an operator has to act on.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case apperrors.IsClientFault(err):
		return StatusRejected
	default:
		return StatusError
	}
}

// BusinessMetrics records onboarding operations by domain, operation and outcome.
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
}

type businessMetrics struct {
	instruments *instruments
}

// NewBusinessMetrics registers <namespace>_operations_total and
// <namespace>_operation_duration_seconds on the given meter provider.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	inst, err := newInstruments(meterProvider.Meter(namespace),
		instrumentSpec{
			name:        namespace + "_operations_total",
			description: "Total number of onboarding operations",
			unit:        "{operation}",
		},
		instrumentSpec{
			name:        namespace + "_operation_duration_seconds",
			description: "Duration of onboarding operations in seconds",
			unit:        "s",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return &businessMetrics{instruments: inst}, nil
}

func operationAttrs(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.instruments.counter.Add(ctx, 1, operationAttrs(domain, operation, status))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.instruments.duration.Record(ctx, duration.Seconds(), operationAttrs(domain, operation, status))
}

// NoOpBusinessMetrics is used when METRICS_ENABLED is false.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a BusinessMetrics that records nothing.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}
