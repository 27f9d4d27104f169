package service

import (
	"context"
	"time"

	authDomain "github.com/allisson/tenantguard/internal/auth/domain"
	apperrors "github.com/allisson/tenantguard/internal/errors"
	"github.com/allisson/tenantguard/internal/metrics"
)

// credentialServiceWithMetrics decorates CredentialService with metrics instrumentation.
type credentialServiceWithMetrics struct {
	next    CredentialService
	metrics metrics.BusinessMetrics
}

// NewCredentialServiceWithMetrics wraps a CredentialService with metrics recording.
func NewCredentialServiceWithMetrics(
	service CredentialService,
	m metrics.BusinessMetrics,
) CredentialService {
	return &credentialServiceWithMetrics{
		next:    service,
		metrics: m,
	}
}

// Mint records metrics for credential minting operations.
func (c *credentialServiceWithMetrics) Mint(input *MintInput) (string, error) {
	start := time.Now()
	token, err := c.next.Mint(input)

	status := "success"
	if err != nil {
		status = "error"
	}

	ctx := context.Background()
	c.metrics.RecordOperation(ctx, "auth", "credential_mint", status)
	c.metrics.RecordDuration(ctx, "auth", "credential_mint", time.Since(start), status)

	return token, err
}

// Verify records metrics for credential verification operations. Expired and
// rejected credentials are labeled separately so dashboards can tell routine
// re-authentication from tampering.
func (c *credentialServiceWithMetrics) Verify(token string) (*authDomain.SessionPayload, error) {
	start := time.Now()
	payload, err := c.next.Verify(token)

	status := "success"
	switch {
	case err == nil:
	case apperrors.Is(err, authDomain.ErrCredentialExpired):
		status = "expired"
	default:
		status = "rejected"
	}

	ctx := context.Background()
	c.metrics.RecordOperation(ctx, "auth", "credential_verify", status)
	c.metrics.RecordDuration(ctx, "auth", "credential_verify", time.Since(start), status)

	return payload, err
}
