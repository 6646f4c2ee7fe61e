// Package usecase implements field-level encryption of investor PII on top of
// the crypto services.
package usecase

import (
	"context"
)

// KeySource resolves named secrets. The secrets provider implements it.
type KeySource interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// FieldCipher encrypts and decrypts short sensitive strings (SSN, TIN, EIN)
// and renders their masked display form.
type FieldCipher interface {
	// Encrypt returns the serialized envelope of plaintext. Empty plaintext is rejected.
	Encrypt(ctx context.Context, plaintext string) (string, error)

	// Decrypt recovers the plaintext of an envelope produced by Encrypt.
	Decrypt(ctx context.Context, envelope string) (string, error)

	// Mask returns the display form of an identifier.
	Mask(identifier string) string

	// Key returns a copy of the resolved field key, for subsystems that derive
	// their own subkeys from it.
	Key(ctx context.Context) ([]byte, error)
}
