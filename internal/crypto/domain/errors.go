package domain

import (
	"github.com/allisson/onboarding/internal/errors"
)

// Field encryption error definitions.
var (
	// ErrInvalidKeySize indicates the resolved key material cannot produce a
	// 32-byte AES-256 key. This is a configuration fault.
	ErrInvalidKeySize = errors.Wrap(errors.ErrUnavailable, "invalid key size")

	// ErrEmptyPlaintext indicates an attempt to encrypt an empty value.
	ErrEmptyPlaintext = errors.Wrap(errors.ErrInvalidInput, "plaintext must not be empty")

	// ErrDecryptionFailed indicates the envelope is malformed, truncated, was
	// produced under a different key, or has been tampered with. The specific
	// cause is never disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrIntegrity, "decryption failed")

	// ErrEncryptionUnavailable indicates the encryption key could not be
	// resolved. The underlying secret error is kept in the chain.
	ErrEncryptionUnavailable = errors.Wrap(errors.ErrUnavailable, "encryption unavailable")
)
