package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
)

// MasterKey is the root secret protecting one or more tenants' data.
//
// Master keys are never used to encrypt tenant data directly: per-tenant keys
// are derived from them on demand, so only the master key is a secret at rest.
// Keys should be stored in a KMS or injected through the environment, be
// exactly 32 bytes, and be generated from a CSPRNG.
type MasterKey struct {
	ID  string
	Key []byte
}

// MasterKeyEntry is a parsed "id:base64" master key configuration entry.
// The payload is either raw key material or KMS ciphertext, depending on
// whether a KMS key URI is configured.
type MasterKeyEntry struct {
	ID      string
	Payload []byte
}

// MasterKeyChain manages a collection of master keys with one designated as active.
//
// Keeping multiple keys allows master key rotation: new tenant keys derive from
// the active key while data derived from older keys remains decryptable until
// re-encrypted. Thread safety: the chain uses sync.Map internally.
type MasterKeyChain struct {
	activeID string
	keys     sync.Map
}

// NewMasterKeyChain creates an empty chain with the given active key ID.
func NewMasterKeyChain(activeID string) *MasterKeyChain {
	return &MasterKeyChain{activeID: activeID}
}

// Add stores a master key in the chain, copying the key material so the
// caller may zero its own buffer afterwards.
func (m *MasterKeyChain) Add(id string, key []byte) {
	stored := make([]byte, len(key))
	copy(stored, key)
	m.keys.Store(id, &MasterKey{ID: id, Key: stored})
}

// ActiveMasterKeyID returns the ID of the currently active master key.
func (m *MasterKeyChain) ActiveMasterKeyID() string {
	return m.activeID
}

// Get retrieves a master key from the chain by its ID.
func (m *MasterKeyChain) Get(id string) (*MasterKey, bool) {
	if masterKey, ok := m.keys.Load(id); ok {
		return masterKey.(*MasterKey), ok
	}
	return nil, false
}

// Active returns the master key used for deriving new tenant keys.
func (m *MasterKeyChain) Active() (*MasterKey, bool) {
	return m.Get(m.activeID)
}

// Close securely clears all master keys from memory and resets the chain.
// Call during shutdown or configuration reload so key material does not
// linger in memory.
func (m *MasterKeyChain) Close() {
	m.keys.Range(func(_, value any) bool {
		Zero(value.(*MasterKey).Key)
		return true
	})
	m.activeID = ""
	m.keys.Clear()
}

// ParseMasterKeyEntries parses the comma-separated "id:base64" master key
// configuration format and base64-decodes each payload. Payload size is not
// validated here: KMS-wrapped payloads are larger than the key they protect.
func ParseMasterKeyEntries(raw string) ([]MasterKeyEntry, error) {
	if raw == "" {
		return nil, ErrMasterKeysNotSet
	}

	var entries []MasterKeyEntry
	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 || p[0] == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMasterKeysFormat, part)
		}
		payload, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidMasterKeyBase64, p[0], err)
		}
		entries = append(entries, MasterKeyEntry{ID: p[0], Payload: payload})
	}

	return entries, nil
}

// LoadMasterKeyChain builds a chain from plaintext "id:base64key" entries.
//
// Each key must be exactly 32 bytes after base64 decoding. Decoded payloads
// are zeroed once copied into the chain; on error the partially built chain
// is closed so no key material survives a failed load. Use the crypto service
// KMS loader instead when keys are KMS-wrapped.
func LoadMasterKeyChain(rawKeys, activeID string) (*MasterKeyChain, error) {
	if activeID == "" {
		return nil, ErrActiveMasterKeyIDNotSet
	}

	entries, err := ParseMasterKeyEntries(rawKeys)
	if err != nil {
		return nil, err
	}

	mkc := NewMasterKeyChain(activeID)
	for _, entry := range entries {
		if len(entry.Payload) != KeySize {
			Zero(entry.Payload)
			mkc.Close()
			return nil, fmt.Errorf(
				"%w: master key %s must be %d bytes, got %d",
				ErrInvalidKeySize,
				entry.ID,
				KeySize,
				len(entry.Payload),
			)
		}
		mkc.Add(entry.ID, entry.Payload)
		Zero(entry.Payload)
	}

	if _, ok := mkc.Get(activeID); !ok {
		mkc.Close()
		return nil, fmt.Errorf("%w: %s", ErrActiveMasterKeyNotFound, activeID)
	}

	return mkc, nil
}
