package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/onboarding/internal/crypto/domain"
)

func TestDeriveFieldKey(t *testing.T) {
	t.Run("Success_ExactLengthUsedAsIs", func(t *testing.T) {
		secret := []byte("0123456789abcdef0123456789abcdef")

		key, err := DeriveFieldKey(secret)

		require.NoError(t, err)
		assert.Equal(t, secret, key)

		// returned key must not alias the input
		key[0] = 'X'
		assert.Equal(t, byte('0'), secret[0])
	})

	t.Run("Success_LongerSecretIsDeterministic", func(t *testing.T) {
		secret := bytes.Repeat([]byte("k"), 64)

		key1, err := DeriveFieldKey(secret)
		require.NoError(t, err)
		key2, err := DeriveFieldKey(secret)
		require.NoError(t, err)

		assert.Len(t, key1, cryptoDomain.KeySize)
		assert.Equal(t, key1, key2)
		assert.NotEqual(t, secret[:cryptoDomain.KeySize], key1)
	})

	t.Run("Success_DifferentSecretsDifferentKeys", func(t *testing.T) {
		key1, err := DeriveFieldKey(bytes.Repeat([]byte("a"), 40))
		require.NoError(t, err)
		key2, err := DeriveFieldKey(bytes.Repeat([]byte("b"), 40))
		require.NoError(t, err)

		assert.NotEqual(t, key1, key2)
	})

	t.Run("Error_TooShort", func(t *testing.T) {
		_, err := DeriveFieldKey([]byte("short"))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}
