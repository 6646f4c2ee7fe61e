// Package service implements the credential primitives: signed access tokens,
// opaque refresh tokens, password hashing and audit log signatures.
package service

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
)

// AccessTokenService issues and validates signed access tokens.
type AccessTokenService interface {
	// Issue signs a new access token for the user and returns it with its expiration.
	Issue(userID uuid.UUID, email, name, role string) (token string, expiresAt time.Time, err error)

	// Parse validates signature, algorithm, issuer, audience and expiration.
	// Returns ErrInvalidAccessToken on any failure.
	Parse(token string) (*authDomain.AccessClaims, error)

	// ParseIgnoringExpiry validates everything Parse does except time based claims.
	// Used to recover the subject of an expired token during refresh.
	ParseIgnoringExpiry(token string) (*authDomain.AccessClaims, error)
}

// TokenService generates opaque refresh tokens and their storage hashes.
type TokenService interface {
	// GenerateToken returns a random base64url token and its SHA-256 hex hash.
	// Only the hash is ever persisted.
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a presented token for lookup.
	HashToken(plainToken string) string
}

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	Hash(password string) (string, error)

	// Compare reports whether password matches the stored hash. It is constant time.
	Compare(password, hash string) bool

	// CompareDummy does the work of Compare without a stored hash.
	CompareDummy(password string)
}

// AuditSigner signs audit logs with a key derived from the given key material.
type AuditSigner interface {
	Sign(key []byte, log *authDomain.AuditLog) ([]byte, error)

	// Verify returns ErrSignatureInvalid when the signature does not match.
	Verify(key []byte, log *authDomain.AuditLog) error
}
