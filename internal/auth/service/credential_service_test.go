package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/tenantguard/internal/auth/domain"
)

const testIssuer = "tenantguard-test"

var testSigningSecret = []byte("0123456789abcdef0123456789abcdef")

type recordingAuditSink struct {
	subjects []string
	reasons  []string
}

func (r *recordingAuditSink) CredentialRejected(subject, reason string) {
	r.subjects = append(r.subjects, subject)
	r.reasons = append(r.reasons, reason)
}

func newTestCredentialService(t *testing.T, audit AuditSink) CredentialService {
	t.Helper()

	svc, err := NewCredentialService(testSigningSecret, testIssuer, time.Hour, audit)
	require.NoError(t, err)
	return svc
}

func testMintInput() *MintInput {
	return &MintInput{
		Subject:       "user-1",
		TenantID:      "acme",
		PrincipalType: authDomain.TenantUserPrincipal,
		Capabilities: []authDomain.Capability{{
			Resource: "tenant:acme:documents",
			Actions:  []authDomain.Action{authDomain.ReadAction, authDomain.WriteAction},
		}},
	}
}

func TestNewCredentialService(t *testing.T) {
	t.Run("rejects short signing secret", func(t *testing.T) {
		_, err := NewCredentialService([]byte("too-short"), testIssuer, time.Hour, nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive default ttl", func(t *testing.T) {
		_, err := NewCredentialService(testSigningSecret, testIssuer, 0, nil)
		assert.Error(t, err)
	})

	t.Run("nil audit sink is allowed", func(t *testing.T) {
		svc, err := NewCredentialService(testSigningSecret, testIssuer, time.Hour, nil)
		assert.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestCredentialService_Mint(t *testing.T) {
	svc := newTestCredentialService(t, nil)

	t.Run("mints a verifiable credential", func(t *testing.T) {
		token, err := svc.Mint(testMintInput())
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		payload, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", payload.Subject)
		assert.Equal(t, "acme", payload.TenantID)
		assert.Equal(t, authDomain.TenantUserPrincipal, payload.PrincipalType)
		assert.NotEmpty(t, payload.CapabilityHash)
		assert.True(t, payload.ExpiresAt.After(payload.IssuedAt))
	})

	t.Run("rejects missing subject", func(t *testing.T) {
		input := testMintInput()
		input.Subject = ""
		_, err := svc.Mint(input)
		assert.Error(t, err)
	})

	t.Run("rejects nil input", func(t *testing.T) {
		_, err := svc.Mint(nil)
		assert.Error(t, err)
	})

	t.Run("rejects unknown principal type", func(t *testing.T) {
		input := testMintInput()
		input.PrincipalType = "robot"
		_, err := svc.Mint(input)
		assert.Error(t, err)
	})

	t.Run("rejects invalid capability", func(t *testing.T) {
		input := testMintInput()
		input.Capabilities = []authDomain.Capability{{Resource: "", Actions: []authDomain.Action{authDomain.ReadAction}}}
		_, err := svc.Mint(input)
		assert.Error(t, err)
	})
}

func TestCredentialService_Verify(t *testing.T) {
	t.Run("expired credential returns ErrCredentialExpired", func(t *testing.T) {
		svc := newTestCredentialService(t, nil)
		input := testMintInput()
		input.TTL = -time.Second

		token, err := svc.Mint(input)
		require.NoError(t, err)

		payload, err := svc.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrCredentialExpired)
		assert.NotErrorIs(t, err, authDomain.ErrCredentialRejected)
		assert.Nil(t, payload)
	})

	t.Run("empty credential is rejected", func(t *testing.T) {
		svc := newTestCredentialService(t, nil)

		_, err := svc.Verify("")
		assert.ErrorIs(t, err, authDomain.ErrCredentialRejected)
	})

	t.Run("garbage credential is rejected", func(t *testing.T) {
		svc := newTestCredentialService(t, nil)

		_, err := svc.Verify("not.a.jwt")
		assert.ErrorIs(t, err, authDomain.ErrCredentialRejected)
	})

	t.Run("credential signed with a different secret is rejected", func(t *testing.T) {
		svc := newTestCredentialService(t, nil)
		other, err := NewCredentialService([]byte("ffffffffffffffffffffffffffffffff"), testIssuer, time.Hour, nil)
		require.NoError(t, err)

		token, err := other.Mint(testMintInput())
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrCredentialRejected)
	})

	t.Run("credential from a different issuer is rejected", func(t *testing.T) {
		svc := newTestCredentialService(t, nil)
		other, err := NewCredentialService(testSigningSecret, "someone-else", time.Hour, nil)
		require.NoError(t, err)

		token, err := other.Mint(testMintInput())
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrCredentialRejected)
	})

	t.Run("tampered capabilities with stale hash are rejected", func(t *testing.T) {
		svc := newTestCredentialService(t, nil)
		impl := svc.(*credentialService)

		// Simulate an attacker who can re-sign the token (e.g. a leaked
		// signing path) but cannot recompute the embedded capability digest:
		// escalate the capability list while keeping the original hash.
		original := testMintInput()
		staleHash := impl.hasher.hash(original.Capabilities)

		now := time.Now().UTC()
		claims := credentialClaims{
			TenantID:      original.TenantID,
			PrincipalType: original.PrincipalType,
			Capabilities: []authDomain.Capability{{
				Resource: "*",
				Actions:  []authDomain.Action{authDomain.WildcardAction},
			}},
			CapabilityHash: staleHash,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    testIssuer,
				Subject:   original.Subject,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningSecret)
		require.NoError(t, err)

		_, err = svc.Verify(forged)
		assert.ErrorIs(t, err, authDomain.ErrCredentialRejected)
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		svc := newTestCredentialService(t, nil)

		claims := credentialClaims{
			PrincipalType: authDomain.TenantUserPrincipal,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    testIssuer,
				Subject:   "user-1",
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(unsigned)
		assert.ErrorIs(t, err, authDomain.ErrCredentialRejected)
	})

	t.Run("rejections reach the audit sink", func(t *testing.T) {
		sink := &recordingAuditSink{}
		svc := newTestCredentialService(t, sink)

		_, err := svc.Verify("garbage")
		require.ErrorIs(t, err, authDomain.ErrCredentialRejected)
		require.Len(t, sink.reasons, 1)
		assert.NotContains(t, sink.reasons[0], "garbage")
	})

	t.Run("expiry does not reach the audit sink", func(t *testing.T) {
		sink := &recordingAuditSink{}
		svc := newTestCredentialService(t, sink)
		input := testMintInput()
		input.TTL = -time.Second

		token, err := svc.Mint(input)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, authDomain.ErrCredentialExpired)
		assert.Empty(t, sink.reasons)
	})
}

func TestCredentialService_EndToEnd(t *testing.T) {
	svc := newTestCredentialService(t, nil)

	token, err := svc.Mint(&MintInput{
		Subject:       "user-42",
		TenantID:      "acme",
		PrincipalType: authDomain.TenantUserPrincipal,
		Capabilities: []authDomain.Capability{{
			Resource: "tenant:acme:documents",
			Actions:  []authDomain.Action{authDomain.ReadAction, authDomain.WriteAction},
		}},
		TTL: time.Hour,
	})
	require.NoError(t, err)

	payload, err := svc.Verify(token)
	require.NoError(t, err)

	now := time.Now()
	assert.True(t, authDomain.Matches(payload.Capabilities, "tenant:acme:documents", authDomain.WriteAction, now))
	assert.False(t, authDomain.Matches(payload.Capabilities, "tenant:acme:documents", authDomain.DeleteAction, now))
	assert.False(t, authDomain.Matches(payload.Capabilities, "tenant:globex:documents", authDomain.ReadAction, now))
}
