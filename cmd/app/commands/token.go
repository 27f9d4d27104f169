package commands

import (
	"encoding/json"
	"fmt"
	"time"

	authDomain "github.com/allisson/tenantguard/internal/auth/domain"
	authService "github.com/allisson/tenantguard/internal/auth/service"
)

// RunMintToken mints a capability-bound session credential and prints it.
// The capabilities argument is a JSON array of capability grants, e.g.:
//
//	[{"resource":"tenant:acme:documents","actions":["read","write"]}]
func RunMintToken(subject, tenantID, principalType, capabilitiesJSON string, ttl time.Duration) error {
	svc, _, err := loadCredentialService()
	if err != nil {
		return err
	}

	var capabilities []authDomain.Capability
	if err := json.Unmarshal([]byte(capabilitiesJSON), &capabilities); err != nil {
		return fmt.Errorf("invalid capabilities JSON: %w", err)
	}

	token, err := svc.Mint(&authService.MintInput{
		Subject:       subject,
		TenantID:      tenantID,
		PrincipalType: authDomain.PrincipalType(principalType),
		Capabilities:  capabilities,
		TTL:           ttl,
	})
	if err != nil {
		return fmt.Errorf("failed to mint credential: %w", err)
	}

	fmt.Println(token)
	return nil
}

// RunVerifyToken verifies a session credential and prints its payload as JSON.
func RunVerifyToken(token string) error {
	svc, _, err := loadCredentialService()
	if err != nil {
		return err
	}

	payload, err := svc.Verify(token)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
