// Package usecase resolves named secrets from a cache, an optional remote
// store and a local fallback for the encryption key.
package usecase

import (
	"context"

	secretsDomain "github.com/allisson/onboarding/internal/secrets/domain"
)

// SecretStore is a remote store of named secrets.
type SecretStore interface {
	// Get returns the secret or ErrSecretNotFound.
	Get(ctx context.Context, name string) (*secretsDomain.Secret, error)

	// Set creates or replaces the secret.
	Set(ctx context.Context, name, value string) error
}

// SecretProvider resolves secrets by name.
type SecretProvider interface {
	// GetSecret returns the value of name from the cache, the remote store or,
	// for the encryption key only, local configuration.
	GetSecret(ctx context.Context, name string) (string, error)

	// SetSecret writes name to the remote store and refreshes the cache.
	SetSecret(ctx context.Context, name, value string) error

	// Invalidate drops name from the cache.
	Invalidate(name string)
}
