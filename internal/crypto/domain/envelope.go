package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Envelope is the self-describing storage form of an encrypted tenant value.
//
// It carries everything needed to decrypt the value given the right key:
// the AEAD nonce, the authentication tag, and the ciphertext body. Envelopes
// serialize to "nonce:tag:ciphertext" with each field base64-encoded, which
// fits a single text storage cell.
type Envelope struct {
	Nonce      []byte
	Tag        []byte
	Ciphertext []byte
}

// ParseEnvelope creates an Envelope from its string representation.
//
// The input must split on ":" into exactly three non-empty base64 fields.
// Shape is validated before any cryptographic work happens, so a malformed
// envelope is rejected cheaply and with an error that never depends on key
// material.
//
// Returns ErrInvalidEnvelopeFormat for any shape or encoding problem.
func ParseEnvelope(content string) (Envelope, error) {
	parts := strings.Split(content, ":")
	if len(parts) != 3 {
		return Envelope{}, fmt.Errorf(
			"%w: expected 'nonce:tag:ciphertext', got %d parts",
			ErrInvalidEnvelopeFormat,
			len(parts),
		)
	}

	fields := make([][]byte, 3)
	for i, part := range parts {
		if part == "" {
			return Envelope{}, fmt.Errorf("%w: empty field", ErrInvalidEnvelopeFormat)
		}
		decoded, err := base64.StdEncoding.DecodeString(part)
		if err != nil {
			return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelopeFormat, err)
		}
		fields[i] = decoded
	}

	return Envelope{
		Nonce:      fields[0],
		Tag:        fields[1],
		Ciphertext: fields[2],
	}, nil
}

// String serializes the Envelope to its "nonce:tag:ciphertext" representation.
// Round-trips with ParseEnvelope.
func (e Envelope) String() string {
	return fmt.Sprintf(
		"%s:%s:%s",
		base64.StdEncoding.EncodeToString(e.Nonce),
		base64.StdEncoding.EncodeToString(e.Tag),
		base64.StdEncoding.EncodeToString(e.Ciphertext),
	)
}
