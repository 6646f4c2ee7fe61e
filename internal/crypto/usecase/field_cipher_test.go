package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/onboarding/internal/crypto/domain"
	apperrors "github.com/allisson/onboarding/internal/errors"
	secretsDomain "github.com/allisson/onboarding/internal/secrets/domain"
)

const (
	testKeyName = "pii-encryption-key"
	testSecret  = "0123456789abcdef0123456789abcdef"
)

// mockKeySource is a mock implementation of KeySource for testing.
type mockKeySource struct {
	mock.Mock
}

func (m *mockKeySource) GetSecret(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func newTestCipher(t *testing.T, secret string) (FieldCipher, *mockKeySource) {
	t.Helper()
	source := &mockKeySource{}
	source.On("GetSecret", mock.Anything, testKeyName).Return(secret, nil)
	return NewFieldCipher(source, testKeyName), source
}

func TestFieldCipher_EncryptDecrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		cipher, source := newTestCipher(t, testSecret)

		envelope, err := cipher.Encrypt(ctx, "123-45-6789")
		require.NoError(t, err)
		assert.NotContains(t, envelope, "6789")

		plaintext, err := cipher.Decrypt(ctx, envelope)
		require.NoError(t, err)
		assert.Equal(t, "123-45-6789", plaintext)
		source.AssertExpectations(t)
	})

	t.Run("Success_SamePlaintextDifferentEnvelopes", func(t *testing.T) {
		cipher, _ := newTestCipher(t, testSecret)

		e1, err := cipher.Encrypt(ctx, "98-7654321")
		require.NoError(t, err)
		e2, err := cipher.Encrypt(ctx, "98-7654321")
		require.NoError(t, err)

		assert.NotEqual(t, e1, e2)
	})

	t.Run("Success_DerivedKeyFromLongSecret", func(t *testing.T) {
		longSecret := testSecret + testSecret
		c1, _ := newTestCipher(t, longSecret)
		c2, _ := newTestCipher(t, longSecret)

		envelope, err := c1.Encrypt(ctx, "123-45-6789")
		require.NoError(t, err)

		plaintext, err := c2.Decrypt(ctx, envelope)
		require.NoError(t, err)
		assert.Equal(t, "123-45-6789", plaintext)
	})

	t.Run("Error_EmptyPlaintext", func(t *testing.T) {
		cipher, source := newTestCipher(t, testSecret)

		envelope, err := cipher.Encrypt(ctx, "")

		assert.Empty(t, envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrEmptyPlaintext)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		source.AssertNotCalled(t, "GetSecret", mock.Anything, mock.Anything)
	})

	t.Run("Error_TamperedEnvelope", func(t *testing.T) {
		cipher, _ := newTestCipher(t, testSecret)

		envelope, err := cipher.Encrypt(ctx, "123-45-6789")
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(envelope)
		require.NoError(t, err)
		raw[len(raw)-1] ^= 0x01

		plaintext, err := cipher.Decrypt(ctx, base64.StdEncoding.EncodeToString(raw))
		assert.Empty(t, plaintext)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_TruncatedEnvelope", func(t *testing.T) {
		cipher, _ := newTestCipher(t, testSecret)

		_, err := cipher.Decrypt(ctx, base64.StdEncoding.EncodeToString([]byte("short")))
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_MalformedEnvelope", func(t *testing.T) {
		cipher, _ := newTestCipher(t, testSecret)

		_, err := cipher.Decrypt(ctx, "%%%not-base64%%%")
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_DifferentKey", func(t *testing.T) {
		c1, _ := newTestCipher(t, testSecret)
		c2, _ := newTestCipher(t, "abcdefghijklmnopqrstuvwxyz012345")

		envelope, err := c1.Encrypt(ctx, "123-45-6789")
		require.NoError(t, err)

		_, err = c2.Decrypt(ctx, envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.ErrorIs(t, err, apperrors.ErrIntegrity)
		assert.NotErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestFieldCipher_KeyResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ResolvedOnce", func(t *testing.T) {
		source := &mockKeySource{}
		source.On("GetSecret", mock.Anything, testKeyName).Return(testSecret, nil).Once()
		cipher := NewFieldCipher(source, testKeyName)

		for range 5 {
			_, err := cipher.Encrypt(ctx, "123-45-6789")
			require.NoError(t, err)
		}

		source.AssertNumberOfCalls(t, "GetSecret", 1)
	})

	t.Run("Success_ConcurrentFirstUse", func(t *testing.T) {
		source := &mockKeySource{}
		source.On("GetSecret", mock.Anything, testKeyName).Return(testSecret, nil)
		cipher := NewFieldCipher(source, testKeyName)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := cipher.Encrypt(ctx, "123-45-6789")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		source.AssertNumberOfCalls(t, "GetSecret", 1)
	})

	t.Run("Error_FailureNotCached", func(t *testing.T) {
		storeErr := errors.New("store down")
		source := &mockKeySource{}
		source.On("GetSecret", mock.Anything, testKeyName).Return("", storeErr).Once()
		source.On("GetSecret", mock.Anything, testKeyName).Return(testSecret, nil).Once()
		cipher := NewFieldCipher(source, testKeyName)

		_, err := cipher.Encrypt(ctx, "123-45-6789")
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionUnavailable)
		assert.ErrorIs(t, err, storeErr)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)

		envelope, err := cipher.Encrypt(ctx, "123-45-6789")
		require.NoError(t, err)
		assert.NotEmpty(t, envelope)
		source.AssertExpectations(t)
	})

	t.Run("Error_SecretTooShortForKey", func(t *testing.T) {
		cipher, _ := newTestCipher(t, "tooshort")

		_, err := cipher.Encrypt(ctx, "123-45-6789")
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionUnavailable)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.NotErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_KeySecretMissing", func(t *testing.T) {
		source := &mockKeySource{}
		source.On("GetSecret", mock.Anything, testKeyName).Return("", secretsDomain.ErrSecretNotFound)
		cipher := NewFieldCipher(source, testKeyName)

		_, err := cipher.Decrypt(ctx, base64.StdEncoding.EncodeToString(make([]byte, 40)))
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionUnavailable)
		assert.ErrorIs(t, err, secretsDomain.ErrSecretNotFound)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})

	t.Run("Error_KeySecretTooShort", func(t *testing.T) {
		source := &mockKeySource{}
		source.On("GetSecret", mock.Anything, testKeyName).Return("", secretsDomain.ErrSecretTooShort)
		cipher := NewFieldCipher(source, testKeyName)

		_, err := cipher.Encrypt(ctx, "123-45-6789")
		assert.ErrorIs(t, err, secretsDomain.ErrSecretTooShort)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.NotErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestFieldCipher_Key(t *testing.T) {
	ctx := context.Background()
	cipher, _ := newTestCipher(t, testSecret)

	k1, err := cipher.Key(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(testSecret), k1)

	k1[0] = 'X'
	k2, err := cipher.Key(ctx)
	require.NoError(t, err)
	assert.Equal(t, byte('0'), k2[0])
}

func TestFieldCipher_Mask(t *testing.T) {
	cipher, source := newTestCipher(t, testSecret)

	assert.Equal(t, "***-**-6789", cipher.Mask("123-45-6789"))
	assert.Equal(t, "***-**-****", cipher.Mask("12"))
	source.AssertNotCalled(t, "GetSecret", mock.Anything, mock.Anything)
}
