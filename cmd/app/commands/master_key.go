package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	cryptoDomain "github.com/allisson/tenantguard/internal/crypto/domain"
	cryptoService "github.com/allisson/tenantguard/internal/crypto/service"
)

// RunCreateMasterKey generates a cryptographically secure 32-byte master key
// for tenant key derivation and prints the environment configuration for it.
//
// When KMS parameters are given, the key is wrapped with the KMS before
// output so the plaintext key never touches configuration. Without KMS the
// raw base64 key is printed; acceptable for development only. Key material
// is zeroed from memory after encoding. If keyID is empty, a default ID in
// format "master-key-YYYY-MM-DD" is generated.
func RunCreateMasterKey(ctx context.Context, keyID, kmsProvider, kmsKeyURI string) error {
	if keyID == "" {
		keyID = fmt.Sprintf("master-key-%s", time.Now().Format("2006-01-02"))
	}

	masterKey, err := cryptoService.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(masterKey)

	payload := masterKey
	if kmsProvider != "" || kmsKeyURI != "" {
		if kmsProvider == "" || kmsKeyURI == "" {
			return fmt.Errorf(
				"--kms-provider and --kms-key-uri must be given together\n\nFor local development, use:\n  --kms-provider=localsecrets --kms-key-uri=\"base64key://<32-byte-base64-key>\"",
			)
		}
		if err := cryptoService.ValidateProviderKeyURI(kmsProvider, kmsKeyURI); err != nil {
			return err
		}

		keeperInterface, err := cryptoService.NewKMSService().OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			if closeErr := keeperInterface.Close(); closeErr != nil {
				fmt.Printf("Warning: failed to close KMS keeper: %v\n", closeErr)
			}
		}()

		keeper, ok := keeperInterface.(interface {
			Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
		})
		if !ok {
			return fmt.Errorf("KMS keeper does not support encryption")
		}

		payload, err = keeper.Encrypt(ctx, masterKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
		}

		fmt.Println("# Master Key Configuration (KMS Mode)")
		fmt.Printf("KMS_PROVIDER=\"%s\"\n", kmsProvider)
		fmt.Printf("KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	} else {
		fmt.Println("# Master Key Configuration (plaintext mode - development only)")
	}

	encodedKey := base64.StdEncoding.EncodeToString(payload)
	fmt.Printf("MASTER_KEYS=\"%s:%s\"\n", keyID, encodedKey)
	fmt.Printf("ACTIVE_MASTER_KEY_ID=\"%s\"\n", keyID)
	fmt.Println()
	fmt.Println("# For master key rotation, append new entries and switch the active ID:")
	fmt.Printf("# MASTER_KEYS=\"%s:%s,new-key:<base64>\"\n", keyID, encodedKey)
	fmt.Println("# ACTIVE_MASTER_KEY_ID=\"new-key\"")

	return nil
}
