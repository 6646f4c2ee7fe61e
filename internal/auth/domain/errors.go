package domain

import (
	"github.com/allisson/onboarding/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidCredentials is returned for every failed login or refresh so
	// callers cannot tell an unknown user from a wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidAccessToken indicates a malformed, forged or expired access token.
	ErrInvalidAccessToken = errors.Wrap(errors.ErrUnauthorized, "invalid access token")

	// ErrRefreshTokenNotFound indicates no refresh token row matches the hash.
	ErrRefreshTokenNotFound = errors.Wrap(errors.ErrNotFound, "refresh token not found")

	// ErrSignatureInvalid indicates an audit log signature does not match its content.
	ErrSignatureInvalid = errors.Wrap(errors.ErrInvalidInput, "audit log signature is invalid")

	// ErrInvalidRole indicates the caller lacks the role required for an operation.
	ErrInvalidRole = errors.Wrap(errors.ErrForbidden, "insufficient role")
)
