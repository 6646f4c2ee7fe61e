package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	secretsDomain "github.com/allisson/onboarding/internal/secrets/domain"
)

func TestRunCreateEncryptionKey(t *testing.T) {
	t.Run("text-output", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, RunCreateEncryptionKey(&out, "text"))

		var key string
		for _, line := range strings.Split(out.String(), "\n") {
			if v, ok := strings.CutPrefix(line, "ENCRYPTION_KEY="); ok {
				key = v
			}
		}
		assert.Len(t, key, secretsDomain.MinEncryptionKeyLength)
	})

	t.Run("json-output", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, RunCreateEncryptionKey(&out, "json"))

		var payload map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
		assert.Len(t, payload["encryption_key"], secretsDomain.MinEncryptionKeyLength)
	})

	t.Run("keys-differ", func(t *testing.T) {
		first, err := generateEncryptionKey(32)
		require.NoError(t, err)
		second, err := generateEncryptionKey(32)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		for _, r := range first {
			assert.Contains(t, encryptionKeyAlphabet, string(r))
		}
	})
}
