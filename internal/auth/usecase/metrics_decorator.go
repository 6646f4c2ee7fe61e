package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	"github.com/allisson/onboarding/internal/metrics"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *credentialUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)

	c.metrics.RecordOperation(ctx, metrics.DomainAuth, operation, status)
	c.metrics.RecordDuration(ctx, metrics.DomainAuth, operation, time.Since(start), status)
}

// IssueAccessToken records metrics for access token issuance.
func (c *credentialUseCaseWithMetrics) IssueAccessToken(
	userID uuid.UUID,
	email, name, role string,
) (string, time.Time, error) {
	start := time.Now()
	token, expiresAt, err := c.next.IssueAccessToken(userID, email, name, role)
	c.record(context.Background(), "access_token_issue", start, err)
	return token, expiresAt, err
}

// IssueRefreshToken records metrics for refresh token issuance.
func (c *credentialUseCaseWithMetrics) IssueRefreshToken(
	ctx context.Context,
	userID uuid.UUID,
) (string, time.Time, error) {
	start := time.Now()
	token, expiresAt, err := c.next.IssueRefreshToken(ctx, userID)
	c.record(ctx, "refresh_token_issue", start, err)
	return token, expiresAt, err
}

// ValidateRefreshToken records metrics for refresh token validation.
func (c *credentialUseCaseWithMetrics) ValidateRefreshToken(ctx context.Context, token string) (*uuid.UUID, error) {
	start := time.Now()
	userID, err := c.next.ValidateRefreshToken(ctx, token)
	c.record(ctx, "refresh_token_validate", start, err)
	return userID, err
}

// RevokeToken records metrics for refresh token revocation.
func (c *credentialUseCaseWithMetrics) RevokeToken(ctx context.Context, token string) error {
	start := time.Now()
	err := c.next.RevokeToken(ctx, token)
	c.record(ctx, "refresh_token_revoke", start, err)
	return err
}

// RevokeAllForUser records metrics for bulk revocation.
func (c *credentialUseCaseWithMetrics) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := c.next.RevokeAllForUser(ctx, userID)
	c.record(ctx, "refresh_token_revoke_all", start, err)
	return err
}

// RecoverClaimsFromExpiredToken is not instrumented; it is a pure parse.
func (c *credentialUseCaseWithMetrics) RecoverClaimsFromExpiredToken(token string) (*authDomain.AccessClaims, error) {
	return c.next.RecoverClaimsFromExpiredToken(token)
}

// Login records metrics for login attempts.
func (c *credentialUseCaseWithMetrics) Login(
	ctx context.Context,
	email, password string,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := c.next.Login(ctx, email, password)
	c.record(ctx, "login", start, err)
	return pair, err
}

// Refresh records metrics for token refresh.
func (c *credentialUseCaseWithMetrics) Refresh(
	ctx context.Context,
	refreshToken, expiredAccessToken string,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := c.next.Refresh(ctx, refreshToken, expiredAccessToken)
	c.record(ctx, "refresh", start, err)
	return pair, err
}

// Logout records metrics for logout.
func (c *credentialUseCaseWithMetrics) Logout(ctx context.Context, refreshToken string) error {
	start := time.Now()
	err := c.next.Logout(ctx, refreshToken)
	c.record(ctx, "logout", start, err)
	return err
}

// CleanupExpired records metrics for token cleanup.
func (c *credentialUseCaseWithMetrics) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := c.next.CleanupExpired(ctx, days, dryRun)
	c.record(ctx, "refresh_token_cleanup", start, err)
	return count, err
}

// auditLogUseCaseWithMetrics decorates AuditLogUseCase with metrics instrumentation.
type auditLogUseCaseWithMetrics struct {
	next    AuditLogUseCase
	metrics metrics.BusinessMetrics
}

// NewAuditLogUseCaseWithMetrics wraps an AuditLogUseCase with metrics recording.
func NewAuditLogUseCaseWithMetrics(useCase AuditLogUseCase, m metrics.BusinessMetrics) AuditLogUseCase {
	return &auditLogUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Record records metrics for audit log creation.
func (a *auditLogUseCaseWithMetrics) Record(
	ctx context.Context,
	userID uuid.UUID,
	action string,
	metadata map[string]any,
) error {
	start := time.Now()
	err := a.next.Record(ctx, userID, action, metadata)

	status := metrics.Status(err)

	a.metrics.RecordOperation(ctx, metrics.DomainAuth, "audit_log_create", status)
	a.metrics.RecordDuration(ctx, metrics.DomainAuth, "audit_log_create", time.Since(start), status)

	return err
}

// List records metrics for audit log listing.
func (a *auditLogUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	start := time.Now()
	auditLogs, err := a.next.List(ctx, offset, limit, filter)

	status := metrics.Status(err)

	a.metrics.RecordOperation(ctx, metrics.DomainAuth, "audit_log_list", status)
	a.metrics.RecordDuration(ctx, metrics.DomainAuth, "audit_log_list", time.Since(start), status)

	return auditLogs, err
}

// VerifyBatch records metrics for batch audit log verification operations.
func (a *auditLogUseCaseWithMetrics) VerifyBatch(
	ctx context.Context,
	filter authDomain.AuditLogFilter,
) (*VerificationReport, error) {
	start := time.Now()
	report, err := a.next.VerifyBatch(ctx, filter)

	status := metrics.Status(err)

	a.metrics.RecordOperation(ctx, metrics.DomainAuth, "audit_log_verify", status)
	a.metrics.RecordDuration(ctx, metrics.DomainAuth, "audit_log_verify", time.Since(start), status)

	return report, err
}
