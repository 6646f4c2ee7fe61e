package service

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/onboarding/internal/crypto/domain"
)

// DeriveFieldKey turns a configured secret into the 32-byte AES-256 key used for
// PII fields.
//
// A secret of exactly 32 bytes is used as-is. Longer secrets are stretched with
// HKDF-SHA256 so the same secret always yields the same key across processes.
// Shorter secrets are rejected.
func DeriveFieldKey(secret []byte) ([]byte, error) {
	switch {
	case len(secret) < cryptoDomain.KeySize:
		return nil, cryptoDomain.ErrInvalidKeySize
	case len(secret) == cryptoDomain.KeySize:
		key := make([]byte, cryptoDomain.KeySize)
		copy(key, secret)
		return key, nil
	}

	reader := hkdf.New(sha256.New, secret, nil, []byte(cryptoDomain.FieldKeyInfo))
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive field key: %w", err)
	}
	return key, nil
}
