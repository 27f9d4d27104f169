package service

import (
	"crypto/sha256"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	first, err := GenerateKey()
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashSHA256(t *testing.T) {
	expected := sha256.Sum256([]byte("hello"))
	assert.Equal(t, expected[:], HashSHA256([]byte("hello")))
	assert.NotEqual(t, HashSHA256([]byte("hello")), HashSHA256([]byte("hellp")))
}

func TestHMACSignAndVerify(t *testing.T) {
	secret := []byte("server-side-secret")
	data := []byte("payload to protect")

	signature := HMACSign(data, secret)
	assert.Len(t, signature, 32)

	t.Run("valid signature verifies", func(t *testing.T) {
		assert.True(t, HMACVerify(data, signature, secret))
	})

	t.Run("tampered data rejected", func(t *testing.T) {
		assert.False(t, HMACVerify([]byte("payload to protecT"), signature, secret))
	})

	t.Run("tampered signature rejected", func(t *testing.T) {
		tampered := make([]byte, len(signature))
		copy(tampered, signature)
		tampered[0] ^= 0x01
		assert.False(t, HMACVerify(data, tampered, secret))
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		assert.False(t, HMACVerify(data, signature, []byte("other-secret")))
	})
}

func TestGeneratePassword(t *testing.T) {
	t.Run("length below minimum rejected", func(t *testing.T) {
		_, err := GeneratePassword(3)
		assert.Error(t, err)
	})

	t.Run("generates requested length", func(t *testing.T) {
		for _, length := range []int{4, 8, 16, 64} {
			password, err := GeneratePassword(length)
			require.NoError(t, err)
			assert.Len(t, password, length)
		}
	})

	t.Run("every call contains all character classes", func(t *testing.T) {
		// One character per class is forced, so this holds per call, not
		// just distributionally.
		for range 100 {
			password, err := GeneratePassword(12)
			require.NoError(t, err)

			assert.True(t, strings.ContainsFunc(password, unicode.IsLower), "missing lowercase: %q", password)
			assert.True(t, strings.ContainsFunc(password, unicode.IsUpper), "missing uppercase: %q", password)
			assert.True(t, strings.ContainsFunc(password, unicode.IsDigit), "missing digit: %q", password)
			assert.True(t, strings.ContainsAny(password, passwordSymbols), "missing symbol: %q", password)
		}
	})

	t.Run("successive passwords differ", func(t *testing.T) {
		first, err := GeneratePassword(16)
		require.NoError(t, err)
		second, err := GeneratePassword(16)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}
