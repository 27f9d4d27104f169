package domain

import (
	"time"
)

// SessionPayload is the verified content of a session credential.
//
// Created at mint time and read-only afterward: the credential service
// guarantees that CapabilityHash matches the keyed digest of Capabilities
// computed when the credential was issued, so any post-issuance change to
// the granted capabilities is detectable at verification time.
type SessionPayload struct {
	Subject        string        `json:"sub"`
	TenantID       string        `json:"tenant_id,omitempty"`
	PrincipalType  PrincipalType `json:"principal_type"`
	Capabilities   []Capability  `json:"capabilities"`
	CapabilityHash string        `json:"capability_hash"`
	IssuedAt       time.Time     `json:"issued_at"`
	ExpiresAt      time.Time     `json:"expires_at"`
}
