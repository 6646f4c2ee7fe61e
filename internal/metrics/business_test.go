package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/onboarding/internal/errors"
)

// assertMetricLine matches a series by name, a partial label pattern and value.
// The exporter adds otel scope labels, so labels are matched loosely.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	assert.Regexp(t, name+`\{[^}]*`+labels+`[^}]*\} `+value, output)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Success", err: nil, expected: StatusSuccess},
		{name: "ProfileAlreadyExists", err: apperrors.Wrap(apperrors.ErrConflict, "investor profile already exists"), expected: StatusRejected},
		{name: "InvalidCredentials", err: apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials"), expected: StatusRejected},
		{name: "EncryptionKeyUnavailable", err: apperrors.Wrap(apperrors.ErrUnavailable, "encryption key unavailable"), expected: StatusError},
		{name: "DecryptionFailed", err: apperrors.Wrap(apperrors.ErrIntegrity, "decryption failed"), expected: StatusError},
		{
			name: "MissingSecretBehindUnavailableKey",
			err: apperrors.Join(
				apperrors.Wrap(apperrors.ErrUnavailable, "encryption key unavailable"),
				apperrors.Wrap(apperrors.ErrNotFound, "secret not found"),
			),
			expected: StatusError,
		},
		{name: "DatabaseError", err: errors.New("connection refused"), expected: StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Status(tt.err))
		})
	}
}

func TestBusinessMetrics(t *testing.T) {
	provider := newTestProvider(t)
	bm, err := NewBusinessMetrics(provider.MeterProvider(), "onboarding")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, DomainInvestor, "profile_select_type", StatusSuccess)
	bm.RecordOperation(ctx, DomainInvestor, "profile_select_type", StatusSuccess)
	bm.RecordOperation(ctx, DomainInvestor, "profile_select_type", StatusRejected)
	bm.RecordOperation(ctx, DomainCrypto, "field_decrypt", StatusError)
	bm.RecordDuration(ctx, DomainInvestor, "tax_id_reveal", 20*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, DomainInvestor, "tax_id_reveal", 30*time.Millisecond, StatusSuccess)

	output := scrape(t, provider)

	t.Run("Success_CountsByOutcome", func(t *testing.T) {
		assertMetricLine(t, output, `onboarding_operations_total`,
			`domain="investor".*operation="profile_select_type".*status="success"`, `2`)
		assertMetricLine(t, output, `onboarding_operations_total`,
			`domain="investor".*operation="profile_select_type".*status="rejected"`, `1`)
		assertMetricLine(t, output, `onboarding_operations_total`,
			`domain="crypto".*operation="field_decrypt".*status="error"`, `1`)
	})

	t.Run("Success_DurationHistogram", func(t *testing.T) {
		assertMetricLine(t, output, `onboarding_operation_duration_seconds_count`,
			`domain="investor".*operation="tax_id_reveal".*status="success"`, `2`)
	})
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, noOp)
	assert.NotPanics(t, func() {
		noOp.RecordOperation(context.Background(), DomainAuth, "login", StatusRejected)
		noOp.RecordDuration(context.Background(), DomainAuth, "login", time.Second, StatusRejected)
	})
}
