package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService(t *testing.T) {
	service, err := NewPasswordService()
	require.NoError(t, err)

	t.Run("Success_HashAndCompare", func(t *testing.T) {
		hash, err := service.Hash("SecurePass123!")
		require.NoError(t, err)

		assert.NotEqual(t, "SecurePass123!", hash)
		assert.False(t, strings.Contains(hash, "SecurePass123!"))
		assert.True(t, service.Compare("SecurePass123!", hash))
	})

	t.Run("Success_WrongPasswordDoesNotMatch", func(t *testing.T) {
		hash, err := service.Hash("SecurePass123!")
		require.NoError(t, err)

		assert.False(t, service.Compare("securepass123!", hash))
	})

	t.Run("Success_MalformedHashDoesNotMatch", func(t *testing.T) {
		assert.False(t, service.Compare("SecurePass123!", "not-a-hash"))
	})

	t.Run("Success_SaltedHashes", func(t *testing.T) {
		hash1, err := service.Hash("SecurePass123!")
		require.NoError(t, err)
		hash2, err := service.Hash("SecurePass123!")
		require.NoError(t, err)

		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("Success_CompareDummyVerifiesAgainstRandomHash", func(t *testing.T) {
		ps := service.(*passwordService)
		require.NotEmpty(t, ps.dummyHash)
		assert.False(t, service.Compare("", ps.dummyHash))

		assert.NotPanics(t, func() { service.CompareDummy("SecurePass123!") })
	})
}
