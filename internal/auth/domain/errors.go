package domain

import (
	"github.com/allisson/tenantguard/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrCredentialRejected is the single uniform rejection for a session
	// credential that fails verification: bad signature, capability hash
	// mismatch, malformed structure, or unknown signing method. Which check
	// failed is deliberately not revealed; the detail goes only to the
	// audit sink.
	ErrCredentialRejected = errors.Wrap(errors.ErrUnauthorized, "credential rejected")

	// ErrCredentialExpired indicates a credential past its expiry time.
	// Surfaced distinctly from ErrCredentialRejected: expiry is not
	// security-sensitive and clients need it to re-authenticate.
	ErrCredentialExpired = errors.Wrap(errors.ErrExpired, "credential expired")

	// ErrNoBearerToken indicates an Authorization header that is missing or
	// not in "Bearer <token>" form. Distinct from rejection: no token was
	// presented at all.
	ErrNoBearerToken = errors.Wrap(errors.ErrUnauthorized, "no bearer token")
)
