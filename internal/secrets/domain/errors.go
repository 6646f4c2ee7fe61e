package domain

import (
	"github.com/allisson/onboarding/internal/errors"
)

// Secret resolution error definitions.
var (
	// ErrSecretNotFound indicates no source produced a value for the name.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrSecretTooShort indicates the local fallback key is shorter than
	// MinEncryptionKeyLength. This is a configuration fault.
	ErrSecretTooShort = errors.Wrap(errors.ErrUnavailable, "secret too short")

	// ErrSecretStoreUnavailable indicates no remote store is configured or the
	// configured one failed to answer.
	ErrSecretStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "secret store unavailable")

	// ErrInvalidSecretName indicates an empty or malformed secret name.
	ErrInvalidSecretName = errors.Wrap(errors.ErrInvalidInput, "invalid secret name")
)
