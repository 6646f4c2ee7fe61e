package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"

	apperrors "github.com/allisson/onboarding/internal/errors"
)

// refreshTokenBytes is the entropy of a refresh token (256 bits).
const refreshTokenBytes = 32

type tokenService struct {
	entropy io.Reader
}

// GenerateToken returns an unpadded base64url refresh token and the hash that
// is stored in refresh_tokens.token_hash. The plain token is only ever handed
// to the client.
func (t *tokenService) GenerateToken() (plainToken string, tokenHash string, error error) {
	randomBytes := make([]byte, refreshTokenBytes)
	if _, err := io.ReadFull(t.entropy, randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate refresh token")
	}

	plainToken = base64.RawURLEncoding.EncodeToString(randomBytes)
	return plainToken, t.HashToken(plainToken), nil
}

// HashToken returns the hex encoded SHA-256 of a presented refresh token. A
// fast hash is enough because tokens carry 256 bits of entropy.
func (t *tokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// NewTokenService creates a TokenService drawing from crypto/rand.
func NewTokenService() TokenService {
	return &tokenService{entropy: rand.Reader}
}
