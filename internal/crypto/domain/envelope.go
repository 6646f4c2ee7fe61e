package domain

import (
	"encoding/base64"
	"strings"
)

// Envelope is the persisted form of one encrypted field: the random GCM nonce
// followed by the ciphertext and its authentication tag.
//
// Serialized as standard base64 of nonce||ciphertext so it fits in a single
// text column next to the masked value.
type Envelope struct {
	Nonce      []byte
	Ciphertext []byte
}

// String returns the base64 representation of the envelope.
func (e Envelope) String() string {
	buf := make([]byte, 0, len(e.Nonce)+len(e.Ciphertext))
	buf = append(buf, e.Nonce...)
	buf = append(buf, e.Ciphertext...)
	return base64.StdEncoding.EncodeToString(buf)
}

// ParseEnvelope decodes a serialized envelope. Anything that cannot possibly
// hold a nonce plus an authentication tag is rejected with ErrDecryptionFailed.
func ParseEnvelope(s string) (Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return Envelope{}, ErrDecryptionFailed
	}

	if len(raw) < NonceSize+TagSize {
		return Envelope{}, ErrDecryptionFailed
	}

	return Envelope{
		Nonce:      raw[:NonceSize],
		Ciphertext: raw[NonceSize:],
	}, nil
}
