// Package domain defines named secrets resolved by the secret provider.
package domain

import (
	"strings"
	"time"
)

// MinEncryptionKeyLength is the minimum length of a locally configured
// encryption key. AES-256 needs 32 bytes of key material.
const MinEncryptionKeyLength = 32

// Secret is a named value held by a remote secret store.
type Secret struct {
	Name      string
	Value     string
	UpdatedAt time.Time
}

// ValidateName checks that a secret name is usable as a lookup key.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidSecretName
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return ErrInvalidSecretName
	}
	return nil
}
