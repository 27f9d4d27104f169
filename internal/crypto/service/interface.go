// Package service provides the cryptographic engine for tenant data
// protection: AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305), per-tenant key
// derivation from a master key, and the storage envelope codec.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/tenantguard/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyDeriver derives per-tenant encryption keys from a master key.
type KeyDeriver interface {
	// DeriveTenantKey deterministically derives a 32-byte key for the tenant.
	DeriveTenantKey(masterKey *cryptoDomain.MasterKey, tenantID string) ([]byte, error)
}

// EnvelopeCodec encrypts values into, and decrypts values from, the
// "nonce:tag:ciphertext" storage envelope format.
type EnvelopeCodec interface {
	// EncryptForStorage serializes and encrypts value under key, returning
	// the envelope string for a storage cell.
	EncryptForStorage(value string, key []byte) (string, error)

	// DecryptFromStorage parses an envelope string and decrypts it with key.
	DecryptFromStorage(envelope string, key []byte) (string, error)
}

// KMSService opens a keeper for unwrapping KMS-protected master keys.
type KMSService interface {
	// OpenKeeper opens a keeper for the configured KMS provider.
	// Returns an error if the KMS key URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
