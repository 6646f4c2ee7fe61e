package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/allisson/onboarding/internal/errors"
	secretsDomain "github.com/allisson/onboarding/internal/secrets/domain"
)

// DefaultStoreTimeout bounds a remote lookup when no timeout is configured.
const DefaultStoreTimeout = 5 * time.Second

// ProviderConfig configures a SecretProvider.
type ProviderConfig struct {
	// StoreTimeout bounds every remote store call.
	StoreTimeout time.Duration
	// EncryptionKeyName is the only name eligible for the local fallback.
	EncryptionKeyName string
	// EncryptionKey is the locally configured fallback value.
	EncryptionKey string
}

// secretProvider implements SecretProvider.
//
// The cache has a single writer at a time and many readers. Concurrent misses
// for the same name share one remote call.
type secretProvider struct {
	store  SecretStore
	cfg    ProviderConfig
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]string
	group singleflight.Group
}

// NewSecretProvider creates a SecretProvider. A nil store disables remote
// lookups and SetSecret.
func NewSecretProvider(store SecretStore, cfg ProviderConfig, logger *slog.Logger) SecretProvider {
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = DefaultStoreTimeout
	}
	return &secretProvider{
		store:  store,
		cfg:    cfg,
		logger: logger,
		cache:  make(map[string]string),
	}
}

// GetSecret resolves name from the cache, then the remote store, then the local
// fallback for the encryption key.
func (p *secretProvider) GetSecret(ctx context.Context, name string) (string, error) {
	if err := secretsDomain.ValidateName(name); err != nil {
		return "", err
	}

	if value, ok := p.cached(name); ok {
		return value, nil
	}

	var remoteErr error
	if p.store != nil {
		value, err := p.fetch(ctx, name)
		if err == nil {
			return value, nil
		}
		remoteErr = err
	}

	if name != p.cfg.EncryptionKeyName {
		if remoteErr == nil || apperrors.Is(remoteErr, secretsDomain.ErrSecretNotFound) {
			return "", secretsDomain.ErrSecretNotFound
		}
		return "", apperrors.Join(secretsDomain.ErrSecretNotFound, remoteErr)
	}

	if remoteErr != nil {
		p.logger.Warn("secret store lookup failed, using local encryption key",
			slog.String("name", name),
			slog.Any("error", remoteErr),
		)
	}

	return p.localEncryptionKey(remoteErr)
}

func (p *secretProvider) localEncryptionKey(remoteErr error) (string, error) {
	value := p.cfg.EncryptionKey
	if value == "" {
		if remoteErr != nil && !apperrors.Is(remoteErr, secretsDomain.ErrSecretNotFound) {
			return "", apperrors.Join(secretsDomain.ErrSecretNotFound, remoteErr)
		}
		return "", secretsDomain.ErrSecretNotFound
	}

	if len(value) < secretsDomain.MinEncryptionKeyLength {
		return "", secretsDomain.ErrSecretTooShort
	}

	return value, nil
}

// fetch performs a bounded remote lookup. Concurrent callers for the same name
// wait on a single request but each honors its own context.
func (p *secretProvider) fetch(ctx context.Context, name string) (string, error) {
	ch := p.group.DoChan(name, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.StoreTimeout)
		defer cancel()

		secret, err := p.store.Get(fetchCtx, name)
		if err != nil {
			if apperrors.Is(err, secretsDomain.ErrSecretNotFound) {
				return "", err
			}
			return "", apperrors.Join(secretsDomain.ErrSecretStoreUnavailable, err)
		}

		p.put(name, secret.Value)
		return secret.Value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", apperrors.Join(secretsDomain.ErrSecretStoreUnavailable, ctx.Err())
	}
}

// SetSecret writes the value remotely and then updates the cache.
func (p *secretProvider) SetSecret(ctx context.Context, name, value string) error {
	if err := secretsDomain.ValidateName(name); err != nil {
		return err
	}

	if p.store == nil {
		return secretsDomain.ErrSecretStoreUnavailable
	}

	setCtx, cancel := context.WithTimeout(ctx, p.cfg.StoreTimeout)
	defer cancel()

	if err := p.store.Set(setCtx, name, value); err != nil {
		return apperrors.Join(secretsDomain.ErrSecretStoreUnavailable, err)
	}

	p.put(name, value)
	return nil
}

// Invalidate drops name from the cache.
func (p *secretProvider) Invalidate(name string) {
	p.mu.Lock()
	delete(p.cache, name)
	p.mu.Unlock()
}

func (p *secretProvider) cached(name string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	value, ok := p.cache[name]
	return value, ok
}

func (p *secretProvider) put(name, value string) {
	p.mu.Lock()
	p.cache[name] = value
	p.mu.Unlock()
}
