package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/tenantguard/internal/auth/domain"
	apperrors "github.com/allisson/tenantguard/internal/errors"
)

// credentialClaims is the JWT claim set of a session credential.
type credentialClaims struct {
	TenantID       string                   `json:"tenant_id,omitempty"`
	PrincipalType  authDomain.PrincipalType `json:"principal_type"`
	Capabilities   []authDomain.Capability  `json:"capabilities"`
	CapabilityHash string                   `json:"capability_hash"`
	jwt.RegisteredClaims
}

// credentialService implements CredentialService using HS256-signed JWTs.
//
// The outer signature covers the whole payload; the embedded capability hash
// additionally binds the capability list under an independent HKDF-derived
// key (see capabilityHasher). Both must check out at verification time.
type credentialService struct {
	signingSecret []byte
	issuer        string
	defaultTTL    time.Duration
	hasher        *capabilityHasher
	audit         AuditSink
}

// NewCredentialService creates a CredentialService.
//
// The signing secret is required and must be at least 32 bytes; it is
// injected by the host process, never hard-coded. The audit sink receives
// rejection detail; pass nil to discard it.
func NewCredentialService(
	signingSecret []byte,
	issuer string,
	defaultTTL time.Duration,
	audit AuditSink,
) (CredentialService, error) {
	if len(signingSecret) < 32 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "signing secret must be at least 32 bytes")
	}
	if defaultTTL <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "default ttl must be positive")
	}
	if audit == nil {
		audit = NopAuditSink{}
	}

	hasher, err := newCapabilityHasher(signingSecret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to derive capability hash key")
	}

	return &credentialService{
		signingSecret: signingSecret,
		issuer:        issuer,
		defaultTTL:    defaultTTL,
		hasher:        hasher,
		audit:         audit,
	}, nil
}

// Mint produces a signed session credential bound to the given capabilities.
//
// expires_at is now+ttl (the service default when input.TTL is zero; negative
// values are honored and yield an already-expired credential). The capability
// hash is computed here and embedded in the claims; the payload is read-only
// from this point on.
func (s *credentialService) Mint(input *MintInput) (string, error) {
	if input == nil || input.Subject == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "subject is required")
	}
	if !input.PrincipalType.Valid() {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "unknown principal type")
	}
	for _, capability := range input.Capabilities {
		if err := capability.Validate(); err != nil {
			return "", err
		}
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = s.defaultTTL
	}

	now := time.Now().UTC()
	claims := credentialClaims{
		TenantID:       input.TenantID,
		PrincipalType:  input.PrincipalType,
		Capabilities:   input.Capabilities,
		CapabilityHash: s.hasher.hash(input.Capabilities),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   input.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.Must(uuid.NewV7()).String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingSecret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign credential")
	}
	return signed, nil
}

// Verify decodes a credential, checks the outer signature, recomputes the
// capability hash, and checks expiry.
//
// Every failure except expiry yields the uniform ErrCredentialRejected; the
// specific reason goes only to the audit sink. Expiry surfaces as
// ErrCredentialExpired so clients know to re-authenticate.
func (s *credentialService) Verify(token string) (*authDomain.SessionPayload, error) {
	if token == "" {
		s.audit.CredentialRejected("", "empty credential")
		return nil, authDomain.ErrCredentialRejected
	}

	claims := &credentialClaims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, authDomain.ErrCredentialRejected
			}
			return s.signingSecret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authDomain.ErrCredentialExpired
		}
		s.audit.CredentialRejected(claims.Subject, "signature or structure check failed")
		return nil, authDomain.ErrCredentialRejected
	}
	if !parsed.Valid {
		s.audit.CredentialRejected(claims.Subject, "invalid token")
		return nil, authDomain.ErrCredentialRejected
	}

	if !claims.PrincipalType.Valid() || claims.Subject == "" || claims.IssuedAt == nil {
		s.audit.CredentialRejected(claims.Subject, "malformed claims")
		return nil, authDomain.ErrCredentialRejected
	}

	// A valid outer signature is not enough: the capability list must still
	// match the digest embedded at mint time.
	if !s.hasher.verify(claims.Capabilities, claims.CapabilityHash) {
		s.audit.CredentialRejected(claims.Subject, "capability hash mismatch")
		return nil, authDomain.ErrCredentialRejected
	}

	return &authDomain.SessionPayload{
		Subject:        claims.Subject,
		TenantID:       claims.TenantID,
		PrincipalType:  claims.PrincipalType,
		Capabilities:   claims.Capabilities,
		CapabilityHash: claims.CapabilityHash,
		IssuedAt:       claims.IssuedAt.Time,
		ExpiresAt:      claims.ExpiresAt.Time,
	}, nil
}
