package service

import (
	"crypto/rand"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/onboarding/internal/errors"
)

type passwordService struct {
	hasher    *pwdhash.PasswordHasher
	dummyHash string
}

// Hash hashes a password with Argon2id.
func (p *passwordService) Hash(password string) (string, error) {
	hashed, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

// Compare verifies a password against its Argon2id hash.
func (p *passwordService) Compare(password, hash string) bool {
	ok, err := p.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}

// CompareDummy runs a full Argon2id verification against a hash of a random
// value, so a lookup miss costs as much as a wrong password.
func (p *passwordService) CompareDummy(password string) {
	_, _ = p.hasher.Verify([]byte(password), p.dummyHash)
}

// NewPasswordService creates a PasswordService using the interactive Argon2id
// policy, the same one used when users register.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	dummyHash, err := hasher.Hash([]byte(rand.Text()))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create dummy password hash")
	}

	return &passwordService{hasher: hasher, dummyHash: dummyHash}, nil
}
