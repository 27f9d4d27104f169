package service

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/allisson/tenantguard/internal/crypto/domain"
)

// KeyDerivationService derives per-tenant encryption keys from a master key
// using PBKDF2-SHA256.
//
// Derivation is a pure function of (master key, tenant ID, iteration count):
// the same inputs always produce the same 32-byte key, and changing either
// input changes the output. This lets one master secret protect any number of
// tenants with cryptographic isolation without storing per-tenant keys.
//
// The iteration count makes derivation deliberately slow. Callers on
// latency-sensitive paths should cache derived keys (see TenantKeychain).
type KeyDerivationService struct {
	iterations int
}

// NewKeyDerivation creates a KeyDerivationService with the given PBKDF2
// iteration count. Counts below 10000 are rejected as too weak.
func NewKeyDerivation(iterations int) (*KeyDerivationService, error) {
	if iterations < 10000 {
		return nil, fmt.Errorf("%w: iteration count %d is below minimum 10000",
			cryptoDomain.ErrInvalidKeySize, iterations)
	}
	return &KeyDerivationService{iterations: iterations}, nil
}

// DeriveTenantKey deterministically derives the tenant's 32-byte encryption key.
//
// The tenant ID acts as the salt (prefixed with a fixed context label so keys
// derived here can never collide with keys derived for another purpose from
// the same master key). The master key material is the PBKDF2 input.
func (k *KeyDerivationService) DeriveTenantKey(
	masterKey *cryptoDomain.MasterKey,
	tenantID string,
) ([]byte, error) {
	if masterKey == nil || len(masterKey.Key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", cryptoDomain.ErrInvalidKeySize)
	}

	salt := []byte("tenant-key:" + tenantID)
	return pbkdf2.Key(masterKey.Key, salt, k.iterations, cryptoDomain.KeySize, sha256.New), nil
}

// TenantKeychain memoizes tenant key derivation.
//
// Derivation is intentionally CPU-expensive, so deriving on every request is
// wasteful; because it is deterministic, caching is safe. Concurrent requests
// for the same tenant share a single derivation via singleflight.
type TenantKeychain struct {
	deriver KeyDeriver
	keys    sync.Map // map[string][]byte keyed by masterKeyID+":"+tenantID
	group   singleflight.Group
}

// NewTenantKeychain creates a keychain backed by the given deriver.
func NewTenantKeychain(deriver KeyDeriver) *TenantKeychain {
	return &TenantKeychain{deriver: deriver}
}

// TenantKey returns the tenant's derived key, deriving and caching it on
// first use. The returned slice is shared; callers must not mutate it.
func (tk *TenantKeychain) TenantKey(
	masterKey *cryptoDomain.MasterKey,
	tenantID string,
) ([]byte, error) {
	cacheKey := masterKey.ID + ":" + tenantID
	if key, ok := tk.keys.Load(cacheKey); ok {
		return key.([]byte), nil
	}

	key, err, _ := tk.group.Do(cacheKey, func() (any, error) {
		derived, err := tk.deriver.DeriveTenantKey(masterKey, tenantID)
		if err != nil {
			return nil, err
		}
		tk.keys.Store(cacheKey, derived)
		return derived, nil
	})
	if err != nil {
		return nil, err
	}
	return key.([]byte), nil
}

// Close zeroes all cached tenant keys and empties the keychain.
func (tk *TenantKeychain) Close() {
	tk.keys.Range(func(_, value any) bool {
		cryptoDomain.Zero(value.([]byte))
		return true
	})
	tk.keys.Clear()
}
