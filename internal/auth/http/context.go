// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
)

// claimsKey is a context key type for storing verified access-token claims.
type claimsKey struct{}

// WithClaims stores verified access-token claims in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithClaims(ctx context.Context, claims *authDomain.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves the access-token claims from the context.
// Returns (claims, true) if present, or (nil, false) if no claims were set.
func GetClaims(ctx context.Context) (*authDomain.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.AccessClaims)
	return claims, ok && claims != nil
}

// GetUserID returns the authenticated user's id from the context claims.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := claims.UserID()
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
