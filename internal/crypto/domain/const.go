package domain

// Sizes of the AES-256-GCM primitives used for field-level encryption.
const (
	// KeySize is the AES-256 key size in bytes.
	KeySize = 32

	// NonceSize is the standard GCM nonce size in bytes. A fresh random nonce
	// is drawn for every encryption.
	NonceSize = 12

	// TagSize is the GCM authentication tag size appended to each ciphertext.
	TagSize = 16
)

// Masks returned for tax identifiers.
const (
	// MaskPrefix precedes the last four digits of a masked identifier.
	MaskPrefix = "***-**-"

	// FullMask is returned when an identifier has fewer than four digits.
	FullMask = "***-**-****"
)

// FieldKeyInfo is the HKDF info string used when a configured secret longer
// than KeySize is stretched down to a field-encryption key.
const FieldKeyInfo = "pii-field-encryption-v1"
