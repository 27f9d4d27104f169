package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAESGCM(t *testing.T) {
	t.Run("valid 256-bit key", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		cipher, err := NewAESGCM(key)
		assert.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("invalid key size - too small", func(t *testing.T) {
		key := make([]byte, 16)
		_, err := rand.Read(key)
		require.NoError(t, err)

		cipher, err := NewAESGCM(key)
		assert.Error(t, err)
		assert.Nil(t, cipher)
	})

	t.Run("invalid key size - too large", func(t *testing.T) {
		key := make([]byte, 64)
		_, err := rand.Read(key)
		require.NoError(t, err)

		cipher, err := NewAESGCM(key)
		assert.Error(t, err)
		assert.Nil(t, cipher)
	})
}

func TestAESGCMCipher_Encrypt(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewAESGCM(key)
	require.NoError(t, err)

	t.Run("encrypt with plaintext and AAD", func(t *testing.T) {
		plaintext := []byte("Hello, World!")
		aad := []byte("tenant-data-v1")

		ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
		assert.NoError(t, err)
		assert.NotNil(t, ciphertext)
		assert.NotNil(t, nonce)
		assert.NotEqual(t, plaintext, ciphertext)
		assert.Equal(t, 12, len(nonce))
	})

	t.Run("nonce is unique for each encryption", func(t *testing.T) {
		plaintext := []byte("test")

		seen := make(map[string]bool)
		for range 100 {
			ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
			require.NoError(t, err)
			pair := string(nonce) + string(ciphertext)
			assert.False(t, seen[pair], "nonce/ciphertext pair repeated")
			seen[pair] = true
		}
	})
}

func TestAESGCMCipher_Decrypt(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewAESGCM(key)
	require.NoError(t, err)

	t.Run("decrypt successfully", func(t *testing.T) {
		plaintext := []byte("Hello, World!")
		aad := []byte("tenant-data-v1")

		ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, aad)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(plaintext, decrypted))
	})

	t.Run("decrypt with wrong AAD fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("secret"), []byte("tenant-data-v1"))
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, []byte("other-context"))
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("decrypt with wrong key fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("secret"), nil)
		require.NoError(t, err)

		otherKey := make([]byte, 32)
		_, err = rand.Read(otherKey)
		require.NoError(t, err)
		otherCipher, err := NewAESGCM(otherKey)
		require.NoError(t, err)

		decrypted, err := otherCipher.Decrypt(ciphertext, nonce, nil)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("decrypt tampered ciphertext fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("secret"), nil)
		require.NoError(t, err)

		ciphertext[0] ^= 0x01
		decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("decrypt tampered nonce fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("secret"), nil)
		require.NoError(t, err)

		nonce[0] ^= 0x01
		decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})
}
