package domain

// Algorithm represents the cryptographic algorithm used for encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data (AEAD),
// ensuring both confidentiality and authenticity of encrypted data.
//
// Algorithm selection guidelines:
//   - Use AESGCM on modern CPUs with AES-NI hardware acceleration
//   - Use ChaCha20 on mobile devices or systems without AES-NI
//   - Both provide equivalent 256-bit security when used correctly
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	// 256-bit key, 12-byte nonce, 16-byte authentication tag.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	// 256-bit key, 12-byte nonce, 16-byte authentication tag, constant-time in software.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the required size in bytes for all symmetric keys
	// (master keys, derived tenant keys) across both algorithms.
	KeySize = 32

	// NonceSize is the length in bytes of the AEAD nonce for both algorithms.
	NonceSize = 12

	// TagSize is the length in bytes of the AEAD authentication tag.
	TagSize = 16

	// TenantDataContext is the associated data bound to every tenant data
	// envelope. It pins ciphertexts to the tenant-data dataset class so they
	// cannot be silently replayed as a different kind of record.
	TenantDataContext = "tenant-data-v1"
)
