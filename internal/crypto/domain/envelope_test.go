package domain

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString

	t.Run("round-trips with String", func(t *testing.T) {
		original := Envelope{
			Nonce:      []byte("twelve-bytes"),
			Tag:        []byte("sixteen-byte-tag"),
			Ciphertext: []byte("some ciphertext body"),
		}

		parsed, err := ParseEnvelope(original.String())
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})

	t.Run("parses valid three-field content", func(t *testing.T) {
		content := fmt.Sprintf("%s:%s:%s", b64([]byte("n")), b64([]byte("t")), b64([]byte("c")))

		envelope, err := ParseEnvelope(content)
		require.NoError(t, err)
		assert.Equal(t, []byte("n"), envelope.Nonce)
		assert.Equal(t, []byte("t"), envelope.Tag)
		assert.Equal(t, []byte("c"), envelope.Ciphertext)
	})

	t.Run("rejects malformed content", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{"empty string", ""},
			{"no separators", b64([]byte("only-one-field"))},
			{"two fields", fmt.Sprintf("%s:%s", b64([]byte("n")), b64([]byte("t")))},
			{"four fields", fmt.Sprintf("%s:%s:%s:%s", b64([]byte("a")), b64([]byte("b")), b64([]byte("c")), b64([]byte("d")))},
			{"empty first field", fmt.Sprintf(":%s:%s", b64([]byte("t")), b64([]byte("c")))},
			{"empty middle field", fmt.Sprintf("%s::%s", b64([]byte("n")), b64([]byte("c")))},
			{"empty last field", fmt.Sprintf("%s:%s:", b64([]byte("n")), b64([]byte("t")))},
			{"invalid base64", "not-base64!!:also-not!!:nope!!"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseEnvelope(tt.content)
				assert.ErrorIs(t, err, ErrInvalidEnvelopeFormat)
			})
		}
	})
}
