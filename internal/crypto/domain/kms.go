package domain

import "context"

// KMSKeeper decrypts KMS-wrapped key material.
// *secrets.Keeper from gocloud.dev implements this interface.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
