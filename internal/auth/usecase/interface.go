// Package usecase defines business logic interfaces for credential issuance,
// refresh token storage and audit logging.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	userDomain "github.com/allisson/onboarding/internal/user/domain"
)

// RefreshTokenRepository persists refresh tokens by hash.
// Implementations must support transaction-aware operations via context propagation.
type RefreshTokenRepository interface {
	// Create stores a new token.
	Create(ctx context.Context, token *authDomain.RefreshToken) error

	// GetByTokenHash returns the row in any state, or ErrRefreshTokenNotFound.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.RefreshToken, error)

	// Revoke sets revoked_at if still unset and reports whether the row changed.
	Revoke(ctx context.Context, tokenHash string, at time.Time) (bool, error)

	// RevokeAllForUser revokes all active tokens of a user and returns how many changed.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)

	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
	CountExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// AuditLogRepository persists audit logs.
type AuditLogRepository interface {
	Create(ctx context.Context, auditLog *authDomain.AuditLog) error
	List(ctx context.Context, offset, limit int, filter authDomain.AuditLogFilter) ([]*authDomain.AuditLog, error)
}

// UserReader loads the users credentials are issued for.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// SigningKeySource provides key material for audit log signatures. The returned
// slice is owned by the caller.
type SigningKeySource interface {
	Key(ctx context.Context) ([]byte, error)
}

// CredentialUseCase issues, validates and revokes user credentials.
type CredentialUseCase interface {
	// IssueAccessToken signs a short-lived access token.
	IssueAccessToken(userID uuid.UUID, email, name, role string) (string, time.Time, error)

	// IssueRefreshToken creates and stores a new opaque refresh token. Only its
	// hash is persisted; the plain token is returned once.
	IssueRefreshToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error)

	// ValidateRefreshToken returns the owner of an active token. Unknown, expired
	// and revoked tokens return nil without error; only storage failures error.
	ValidateRefreshToken(ctx context.Context, token string) (*uuid.UUID, error)

	// RevokeToken revokes a refresh token. Unknown or already revoked tokens are a no-op.
	RevokeToken(ctx context.Context, token string) error

	// RevokeAllForUser revokes every active refresh token of the user.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error

	// RecoverClaimsFromExpiredToken returns the claims of a correctly signed
	// token whatever its expiration, or nil when the token is invalid.
	RecoverClaimsFromExpiredToken(token string) (*authDomain.AccessClaims, error)

	// Login verifies email and password and issues a token pair. Every failure
	// returns ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*authDomain.TokenPair, error)

	// Refresh exchanges an active refresh token for a new pair and revokes the
	// presented token. expiredAccessToken is optional; when given, its subject
	// must own the refresh token.
	Refresh(ctx context.Context, refreshToken, expiredAccessToken string) (*authDomain.TokenPair, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// CleanupExpired deletes tokens inactive for more than days. With dryRun
	// it only counts them.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}

// VerificationReport summarizes a batch audit log signature check.
type VerificationReport struct {
	TotalChecked  int64
	SignedCount   int64
	UnsignedCount int64
	ValidCount    int64
	InvalidCount  int64
	InvalidLogs   []uuid.UUID

	// ByAction counts checked entries per audit action.
	ByAction map[string]int64
}

// AuditLogUseCase records and verifies signed audit logs.
type AuditLogUseCase interface {
	// Record writes a signed audit entry. The request id is read from ctx.
	Record(ctx context.Context, userID uuid.UUID, action string, metadata map[string]any) error

	List(ctx context.Context, offset, limit int, filter authDomain.AuditLogFilter) ([]*authDomain.AuditLog, error)

	// VerifyBatch checks the signature of every entry matching filter.
	VerifyBatch(ctx context.Context, filter authDomain.AuditLogFilter) (*VerificationReport, error)
}
