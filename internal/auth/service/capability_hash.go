package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/tenantguard/internal/auth/domain"
)

// capabilityHasher computes the keyed digest embedded in session credentials.
//
// The digest is HMAC-SHA256 over a canonical binary serialization of the
// capability list, keyed by an HKDF-derived key so the hash stays
// tamper-evident even against an attacker who could forge the outer token
// signature through some independent weakness.
type capabilityHasher struct {
	hashKey []byte
}

// newCapabilityHasher derives the hash key from the signing secret using
// HKDF-SHA256. Info parameter: "capability-hash-v1" (versioned for future
// algorithm changes); separates hash key usage from token signing usage.
func newCapabilityHasher(signingSecret []byte) (*capabilityHasher, error) {
	reader := hkdf.New(sha256.New, signingSecret, nil, []byte("capability-hash-v1"))
	hashKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, hashKey); err != nil {
		return nil, err
	}
	return &capabilityHasher{hashKey: hashKey}, nil
}

// hash returns the hex-encoded capability digest.
func (h *capabilityHasher) hash(capabilities []authDomain.Capability) string {
	mac := hmac.New(sha256.New, h.hashKey)
	mac.Write(canonicalizeCapabilities(capabilities))
	return hex.EncodeToString(mac.Sum(nil))
}

// verify performs a constant-time comparison of the embedded digest against
// a freshly computed one.
func (h *capabilityHasher) verify(capabilities []authDomain.Capability, embedded string) bool {
	embeddedRaw, err := hex.DecodeString(embedded)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, h.hashKey)
	mac.Write(canonicalizeCapabilities(capabilities))
	return hmac.Equal(embeddedRaw, mac.Sum(nil))
}

// canonicalizeCapabilities converts a capability list to a deterministic
// byte representation for hashing. All variable-length fields are
// length-prefixed to prevent ambiguity; optional constraint fields are
// preceded by a presence byte. JSON is deliberately not used here: field
// ordering and whitespace would make the digest encoder-dependent.
func canonicalizeCapabilities(capabilities []authDomain.Capability) []byte {
	buf := make([]byte, 0, 256)
	buf = appendUint32(buf, uint32(len(capabilities)))

	for i := range capabilities {
		c := &capabilities[i]
		buf = appendLengthPrefixed(buf, []byte(c.Resource))

		buf = appendUint32(buf, uint32(len(c.Actions)))
		for _, action := range c.Actions {
			buf = appendLengthPrefixed(buf, []byte(action))
		}

		if c.Constraints == nil {
			buf = append(buf, 0)
			continue
		}
		buf = append(buf, 1)

		if c.Constraints.ValidUntil != nil {
			buf = append(buf, 1)
			buf = binary.BigEndian.AppendUint64(buf, uint64(c.Constraints.ValidUntil.UnixNano()))
		} else {
			buf = append(buf, 0)
		}

		buf = appendUint32(buf, uint32(len(c.Constraints.IPRestrictions)))
		for _, entry := range c.Constraints.IPRestrictions {
			buf = appendLengthPrefixed(buf, []byte(entry))
		}

		if c.Constraints.UsageLimits != nil {
			buf = append(buf, 1)
			buf = binary.BigEndian.AppendUint64(buf, uint64(c.Constraints.UsageLimits.MaxRequestsPerHour))
			buf = binary.BigEndian.AppendUint64(buf, uint64(c.Constraints.UsageLimits.MaxTokensPerRequest))
		} else {
			buf = append(buf, 0)
		}
	}

	return buf
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	buf = appendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

func appendUint32(buf []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(buf, v)
}
