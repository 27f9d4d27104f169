package commands

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/tenantguard/internal/auth/domain"
	authService "github.com/allisson/tenantguard/internal/auth/service"
	"github.com/allisson/tenantguard/internal/config"
	apperrors "github.com/allisson/tenantguard/internal/errors"
)

func setSigningSecret(t *testing.T) {
	t.Helper()
	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	t.Setenv("SIGNING_SECRET", secret)
}

func mintAndVerify(t *testing.T, svc authService.CredentialService) {
	t.Helper()

	token, err := svc.Mint(&authService.MintInput{
		Subject:       "user-1",
		TenantID:      "acme",
		PrincipalType: authDomain.TenantUserPrincipal,
		Capabilities: []authDomain.Capability{{
			Resource: "tenant:acme:documents",
			Actions:  []authDomain.Action{authDomain.ReadAction},
		}},
	})
	require.NoError(t, err)

	payload, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "acme", payload.TenantID)
}

func TestLoadCredentialService(t *testing.T) {
	t.Run("requires signing secret", func(t *testing.T) {
		t.Setenv("SIGNING_SECRET", "")

		_, _, err := loadCredentialService()
		assert.Error(t, err)
	})

	t.Run("rejects non-base64 signing secret", func(t *testing.T) {
		t.Setenv("SIGNING_SECRET", "not-base64!!")

		_, _, err := loadCredentialService()
		assert.Error(t, err)
	})

	t.Run("instruments the service when metrics are enabled", func(t *testing.T) {
		setSigningSecret(t)
		t.Setenv("METRICS_ENABLED", "true")

		svc, cfg, err := loadCredentialService()
		require.NoError(t, err)
		assert.True(t, cfg.MetricsEnabled)

		mintAndVerify(t, svc)
	})

	t.Run("skips instrumentation when metrics are disabled", func(t *testing.T) {
		setSigningSecret(t)
		t.Setenv("METRICS_ENABLED", "false")

		svc, cfg, err := loadCredentialService()
		require.NoError(t, err)
		assert.False(t, cfg.MetricsEnabled)

		mintAndVerify(t, svc)
	})
}

func TestLoadMasterKeyChain_ProviderMismatch(t *testing.T) {
	setSigningSecret(t)
	t.Setenv("MASTER_KEYS", "v1:"+base64.StdEncoding.EncodeToString(make([]byte, 40)))
	t.Setenv("ACTIVE_MASTER_KEY_ID", "v1")
	t.Setenv("KMS_PROVIDER", "gcpkms")
	t.Setenv("KMS_KEY_URI", "awskms://alias/master")

	cfg := config.Load()
	_, err := loadMasterKeyChain(context.Background(), cfg)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
