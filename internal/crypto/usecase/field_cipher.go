package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	cryptoDomain "github.com/allisson/onboarding/internal/crypto/domain"
	cryptoService "github.com/allisson/onboarding/internal/crypto/service"
	apperrors "github.com/allisson/onboarding/internal/errors"
)

// resolvedKey holds the key material and the cipher built from it.
type resolvedKey struct {
	key  []byte
	aead cryptoService.AEAD
}

// fieldCipher implements FieldCipher.
//
// The key is resolved lazily on first use and then reused for the life of the
// process. A failed resolution is not remembered so the next call retries.
type fieldCipher struct {
	keySource KeySource
	keyName   string

	mu       sync.Mutex
	resolved atomic.Pointer[resolvedKey]
}

// NewFieldCipher creates a FieldCipher whose key is the secret keyName from keySource.
func NewFieldCipher(keySource KeySource, keyName string) FieldCipher {
	return &fieldCipher{
		keySource: keySource,
		keyName:   keyName,
	}
}

func (f *fieldCipher) resolve(ctx context.Context) (*resolvedKey, error) {
	if r := f.resolved.Load(); r != nil {
		return r, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if r := f.resolved.Load(); r != nil {
		return r, nil
	}

	secret, err := f.keySource.GetSecret(ctx, f.keyName)
	if err != nil {
		return nil, apperrors.Join(cryptoDomain.ErrEncryptionUnavailable, err)
	}

	raw := []byte(secret)
	defer cryptoDomain.Zero(raw)

	key, err := cryptoService.DeriveFieldKey(raw)
	if err != nil {
		return nil, apperrors.Join(cryptoDomain.ErrEncryptionUnavailable, err)
	}

	aead, err := cryptoService.NewAESGCM(key)
	if err != nil {
		cryptoDomain.Zero(key)
		return nil, apperrors.Join(cryptoDomain.ErrEncryptionUnavailable, err)
	}

	r := &resolvedKey{key: key, aead: aead}
	f.resolved.Store(r)
	return r, nil
}

// Encrypt seals plaintext under the field key with a fresh nonce.
func (f *fieldCipher) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", cryptoDomain.ErrEmptyPlaintext
	}

	r, err := f.resolve(ctx)
	if err != nil {
		return "", err
	}

	ciphertext, nonce, err := r.aead.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", apperrors.Join(cryptoDomain.ErrEncryptionUnavailable, err)
	}

	return cryptoDomain.Envelope{Nonce: nonce, Ciphertext: ciphertext}.String(), nil
}

// Decrypt opens an envelope. Malformed, truncated and tampered envelopes all
// fail with ErrDecryptionFailed.
func (f *fieldCipher) Decrypt(ctx context.Context, envelope string) (string, error) {
	env, err := cryptoDomain.ParseEnvelope(envelope)
	if err != nil {
		return "", err
	}

	r, err := f.resolve(ctx)
	if err != nil {
		return "", err
	}

	plaintext, err := r.aead.Decrypt(env.Ciphertext, env.Nonce, nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// Mask delegates to the pure masking function.
func (f *fieldCipher) Mask(identifier string) string {
	return cryptoService.Mask(identifier)
}

// Key returns a copy of the resolved field key.
func (f *fieldCipher) Key(ctx context.Context) ([]byte, error) {
	r, err := f.resolve(ctx)
	if err != nil {
		return nil, err
	}

	key := make([]byte, len(r.key))
	copy(key, r.key)
	return key, nil
}
