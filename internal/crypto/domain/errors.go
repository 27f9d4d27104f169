package domain

import (
	"github.com/allisson/tenantguard/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	// All keys must be exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error covers a wrong key, a tampered ciphertext, nonce or tag, and
	// corrupted encrypted data. The specific cause is deliberately not
	// disclosed: distinguishing them would give an attacker a padding-oracle
	// style probe.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrInvalidEnvelopeFormat indicates an envelope string does not have the
	// expected "nonce:tag:ciphertext" shape. Returned before any cryptographic
	// operation is attempted.
	ErrInvalidEnvelopeFormat = errors.Wrap(errors.ErrInvalidInput, "invalid envelope format")

	// ErrMasterKeysNotSet indicates no master keys were configured.
	ErrMasterKeysNotSet = errors.Wrap(errors.ErrInvalidInput, "master keys not set")

	// ErrActiveMasterKeyIDNotSet indicates the active master key ID was not configured.
	ErrActiveMasterKeyIDNotSet = errors.Wrap(errors.ErrInvalidInput, "active master key id not set")

	// ErrInvalidMasterKeysFormat indicates a master key entry is not in "id:base64" form.
	ErrInvalidMasterKeysFormat = errors.Wrap(errors.ErrInvalidInput, "invalid master keys format")

	// ErrInvalidMasterKeyBase64 indicates a master key payload is not valid base64.
	ErrInvalidMasterKeyBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid master key base64")

	// ErrActiveMasterKeyNotFound indicates the configured active master key ID
	// does not correspond to any loaded master key.
	ErrActiveMasterKeyNotFound = errors.Wrap(errors.ErrNotFound, "active master key not found")
)
