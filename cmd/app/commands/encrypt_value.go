package commands

import (
	"context"
	"fmt"

	"github.com/allisson/tenantguard/internal/config"
	cryptoDomain "github.com/allisson/tenantguard/internal/crypto/domain"
	cryptoService "github.com/allisson/tenantguard/internal/crypto/service"
)

// RunEncryptValue encrypts a value with the tenant's derived key and prints
// the envelope string for storage.
func RunEncryptValue(ctx context.Context, tenantID, value, algorithm string) error {
	alg, err := parseAlgorithm(algorithm)
	if err != nil {
		return err
	}

	cfg := config.Load()
	key, err := deriveTenantKey(ctx, cfg, tenantID)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(key)

	codec := cryptoService.NewEnvelopeCodec(cryptoService.NewAEADManager(), alg)
	envelope, err := codec.EncryptForStorage(value, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	fmt.Println(envelope)
	return nil
}

// RunDecryptValue decrypts an envelope string with the tenant's derived key
// and prints the plaintext value.
func RunDecryptValue(ctx context.Context, tenantID, envelope, algorithm string) error {
	alg, err := parseAlgorithm(algorithm)
	if err != nil {
		return err
	}

	cfg := config.Load()
	key, err := deriveTenantKey(ctx, cfg, tenantID)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(key)

	codec := cryptoService.NewEnvelopeCodec(cryptoService.NewAEADManager(), alg)
	value, err := codec.DecryptFromStorage(envelope, key)
	if err != nil {
		return err
	}

	fmt.Println(value)
	return nil
}
