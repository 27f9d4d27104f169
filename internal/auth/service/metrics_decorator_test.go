package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/tenantguard/internal/auth/domain"
)

// recordingMetrics captures recorded operations for assertions.
type recordingMetrics struct {
	operations []string
	statuses   []string
	durations  int
}

func (r *recordingMetrics) RecordOperation(_ context.Context, _, operation, status string) {
	r.operations = append(r.operations, operation)
	r.statuses = append(r.statuses, status)
}

func (r *recordingMetrics) RecordDuration(_ context.Context, _, _ string, _ time.Duration, _ string) {
	r.durations++
}

func TestCredentialServiceWithMetrics(t *testing.T) {
	t.Run("successful mint and verify record success", func(t *testing.T) {
		recorder := &recordingMetrics{}
		svc := NewCredentialServiceWithMetrics(newTestCredentialService(t, nil), recorder)

		token, err := svc.Mint(testMintInput())
		require.NoError(t, err)
		_, err = svc.Verify(token)
		require.NoError(t, err)

		assert.Equal(t, []string{"credential_mint", "credential_verify"}, recorder.operations)
		assert.Equal(t, []string{"success", "success"}, recorder.statuses)
		assert.Equal(t, 2, recorder.durations)
	})

	t.Run("mint failure records error", func(t *testing.T) {
		recorder := &recordingMetrics{}
		svc := NewCredentialServiceWithMetrics(newTestCredentialService(t, nil), recorder)

		_, err := svc.Mint(nil)
		require.Error(t, err)

		assert.Equal(t, []string{"error"}, recorder.statuses)
	})

	t.Run("expired credential records expired", func(t *testing.T) {
		recorder := &recordingMetrics{}
		inner := newTestCredentialService(t, nil)
		svc := NewCredentialServiceWithMetrics(inner, recorder)

		input := testMintInput()
		input.TTL = -time.Second
		token, err := inner.Mint(input)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, authDomain.ErrCredentialExpired)
		assert.Equal(t, []string{"expired"}, recorder.statuses)
	})

	t.Run("rejected credential records rejected", func(t *testing.T) {
		recorder := &recordingMetrics{}
		svc := NewCredentialServiceWithMetrics(newTestCredentialService(t, nil), recorder)

		_, err := svc.Verify("garbage")
		require.ErrorIs(t, err, authDomain.ErrCredentialRejected)
		assert.Equal(t, []string{"rejected"}, recorder.statuses)
	})
}
