package commands

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	secretsDomain "github.com/allisson/onboarding/internal/secrets/domain"
)

const encryptionKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// generateEncryptionKey returns a random alphanumeric key of the given length.
func generateEncryptionKey(length int) (string, error) {
	limit := big.NewInt(int64(len(encryptionKeyAlphabet)))
	key := make([]byte, length)
	for i := range key {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate random key: %w", err)
		}
		key[i] = encryptionKeyAlphabet[n.Int64()]
	}
	return string(key), nil
}

// RunCreateEncryptionKey prints a new PII encryption key suitable for the
// ENCRYPTION_KEY variable or for set-secret.
func RunCreateEncryptionKey(writer io.Writer, format string) error {
	key, err := generateEncryptionKey(secretsDomain.MinEncryptionKeyLength)
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(writer, map[string]string{"encryption_key": key})
	}

	_, _ = fmt.Fprintln(writer, "# Store this key in the secret store or set it as an environment variable")
	_, _ = fmt.Fprintf(writer, "ENCRYPTION_KEY=%s\n", key)
	return nil
}
