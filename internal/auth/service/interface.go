// Package service provides authentication services: minting and verifying
// capability-bound session credentials, password hashing and policy checks,
// and usage-limit enforcement for matched capabilities.
package service

import (
	"time"

	authDomain "github.com/allisson/tenantguard/internal/auth/domain"
)

// MintInput carries the parameters for minting a session credential.
type MintInput struct {
	Subject       string
	TenantID      string
	PrincipalType authDomain.PrincipalType
	Capabilities  []authDomain.Capability
	// TTL is the credential lifetime. Zero selects the service default;
	// negative values are permitted and produce an already-expired
	// credential (useful for revocation-style tests).
	TTL time.Duration
}

// CredentialService mints and verifies signed, capability-bound session credentials.
type CredentialService interface {
	// Mint produces a signed, self-contained credential string.
	Mint(input *MintInput) (string, error)

	// Verify decodes and checks a credential, returning its payload.
	// Failures collapse into authDomain.ErrCredentialRejected, except expiry
	// which surfaces as authDomain.ErrCredentialExpired.
	Verify(token string) (*authDomain.SessionPayload, error)
}

// StrengthResult reports the outcome of a password policy check.
// Violations enumerates every failed rule, not just the first.
type StrengthResult struct {
	Valid      bool
	Violations []string
}

// PasswordService hashes and verifies stored credentials.
type PasswordService interface {
	// HashPassword produces a salted, slow hash of plaintext. Two calls with
	// the same plaintext produce different hashes.
	HashPassword(plaintext string) (string, error)

	// VerifyPassword performs a constant-time check of plaintext against hash.
	VerifyPassword(plaintext, hash string) bool

	// CheckPasswordStrength evaluates plaintext against the password policy.
	CheckPasswordStrength(plaintext string) StrengthResult
}

// AuditSink receives diagnostic detail about verification failures.
//
// Implementations are trusted: the reason string describes which internal
// check failed but never contains key material, signatures, or raw tokens.
// Caller-facing errors stay uniform regardless of what the sink records.
type AuditSink interface {
	CredentialRejected(subject, reason string)
}

// NopAuditSink discards all audit events.
type NopAuditSink struct{}

// CredentialRejected does nothing.
func (NopAuditSink) CredentialRejected(subject, reason string) {}
