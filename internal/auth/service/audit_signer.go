package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
)

// auditSigningInfo separates the signing subkey from the field encryption key.
const auditSigningInfo = "audit-log-signing-v1"

type auditSigner struct{}

// NewAuditSigner creates an HMAC-SHA256 audit log signer.
func NewAuditSigner() AuditSigner {
	return &auditSigner{}
}

func (a *auditSigner) deriveSigningKey(key []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, key, nil, []byte(auditSigningInfo))

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, signingKey); err != nil {
		return nil, err
	}

	return signingKey, nil
}

// canonicalizeLog encodes request_id || user_id || action || metadata || created_at.
// Variable length fields are length prefixed.
func (a *auditSigner) canonicalizeLog(log *authDomain.AuditLog) ([]byte, error) {
	buf := make([]byte, 0, 512)

	buf = append(buf, log.ID[:]...)
	buf = append(buf, log.RequestID[:]...)
	buf = append(buf, log.UserID[:]...)
	buf = appendLengthPrefixed(buf, []byte(log.Action))

	if log.Metadata != nil {
		// encoding/json sorts map keys, which keeps the encoding deterministic
		metadataBytes, err := json.Marshal(log.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		buf = appendLengthPrefixed(buf, metadataBytes)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	buf = binary.BigEndian.AppendUint64(buf, uint64(log.CreatedAt.UnixNano()))

	return buf, nil
}

func appendLengthPrefixed(buf []byte, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data))) //nolint:gosec // audit fields are far below 4GB
	return append(buf, data...)
}

// Sign returns the 32-byte HMAC-SHA256 of the canonical log encoding.
func (a *auditSigner) Sign(key []byte, log *authDomain.AuditLog) ([]byte, error) {
	signingKey, err := a.deriveSigningKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer clear(signingKey)

	canonical, err := a.canonicalizeLog(log)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize log: %w", err)
	}

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify recomputes the signature and compares it in constant time.
func (a *auditSigner) Verify(key []byte, log *authDomain.AuditLog) error {
	expectedSig, err := a.Sign(key, log)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(log.Signature, expectedSig) {
		return authDomain.ErrSignatureInvalid
	}

	return nil
}
