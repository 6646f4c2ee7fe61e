package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the stored form of an opaque refresh token. Only the SHA-256
// hash of the token is kept.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// State reports the token state at now. Revocation wins over expiration.
func (r *RefreshToken) State(now time.Time) TokenState {
	if r.RevokedAt != nil {
		return TokenStateRevoked
	}
	if !now.Before(r.ExpiresAt) {
		return TokenStateExpired
	}
	return TokenStateActive
}

// IsActive reports whether the token is neither revoked nor expired at now.
func (r *RefreshToken) IsActive(now time.Time) bool {
	return r.State(now) == TokenStateActive
}
