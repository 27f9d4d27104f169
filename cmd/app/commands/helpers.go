// Package commands implements the CLI commands for the tenantguard toolkit.
package commands

import (
	"context"
	"encoding/base64"
	"fmt"

	authService "github.com/allisson/tenantguard/internal/auth/service"
	"github.com/allisson/tenantguard/internal/config"
	cryptoDomain "github.com/allisson/tenantguard/internal/crypto/domain"
	cryptoService "github.com/allisson/tenantguard/internal/crypto/service"
	"github.com/allisson/tenantguard/internal/metrics"
)

// loadCredentialService builds a CredentialService from environment configuration.
func loadCredentialService() (authService.CredentialService, *config.Config, error) {
	cfg := config.Load()

	if cfg.SigningSecret == "" {
		return nil, nil, fmt.Errorf("SIGNING_SECRET is required")
	}
	secret, err := base64.StdEncoding.DecodeString(cfg.SigningSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("SIGNING_SECRET must be base64-encoded: %w", err)
	}

	svc, err := authService.NewCredentialService(secret, cfg.TokenIssuer, cfg.TokenTTL, nil)
	if err != nil {
		return nil, nil, err
	}

	if cfg.MetricsEnabled {
		provider, err := metrics.NewProvider(cfg.MetricsNamespace)
		if err != nil {
			return nil, nil, err
		}
		business, err := metrics.NewBusinessMetrics(provider.MeterProvider(), cfg.MetricsNamespace)
		if err != nil {
			return nil, nil, err
		}
		svc = authService.NewCredentialServiceWithMetrics(svc, business)
	}

	return svc, cfg, nil
}

// loadMasterKeyChain loads the configured master keys, unwrapping them
// through the KMS when a key URI is configured.
func loadMasterKeyChain(ctx context.Context, cfg *config.Config) (*cryptoDomain.MasterKeyChain, error) {
	if cfg.KMSKeyURI == "" {
		return cryptoDomain.LoadMasterKeyChain(cfg.MasterKeys, cfg.ActiveMasterKeyID)
	}

	if err := cryptoService.ValidateProviderKeyURI(cfg.KMSProvider, cfg.KMSKeyURI); err != nil {
		return nil, err
	}

	keeper, err := cryptoService.NewKMSService().OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	return cryptoService.LoadMasterKeyChainKMS(ctx, keeper, cfg.MasterKeys, cfg.ActiveMasterKeyID)
}

// deriveTenantKey derives the tenant's encryption key from the active master key.
func deriveTenantKey(ctx context.Context, cfg *config.Config, tenantID string) ([]byte, error) {
	chain, err := loadMasterKeyChain(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer chain.Close()

	active, ok := chain.Active()
	if !ok {
		return nil, fmt.Errorf("active master key not found")
	}

	deriver, err := cryptoService.NewKeyDerivation(cfg.DerivationIterations)
	if err != nil {
		return nil, err
	}
	return deriver.DeriveTenantKey(active, tenantID)
}

// parseAlgorithm validates the CLI algorithm flag.
func parseAlgorithm(alg string) (cryptoDomain.Algorithm, error) {
	switch cryptoDomain.Algorithm(alg) {
	case cryptoDomain.AESGCM:
		return cryptoDomain.AESGCM, nil
	case cryptoDomain.ChaCha20:
		return cryptoDomain.ChaCha20, nil
	default:
		return "", fmt.Errorf("unsupported algorithm %q (use aes-gcm or chacha20-poly1305)", alg)
	}
}
