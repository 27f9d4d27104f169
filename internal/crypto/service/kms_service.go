package service

import (
	"context"
	"fmt"
	"strings"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/tenantguard/internal/crypto/domain"
	apperrors "github.com/allisson/tenantguard/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
// Returns a KMSKeeper which *secrets.Keeper implements.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// LoadMasterKeyChainKMS builds a master key chain from "id:base64" entries
// whose payloads are KMS ciphertexts, unwrapping each through the keeper.
//
// Unwrapped key material is zeroed after being copied into the chain. On any
// failure the partially built chain is closed so no key material survives.
func LoadMasterKeyChainKMS(
	ctx context.Context,
	keeper cryptoDomain.KMSKeeper,
	rawKeys, activeID string,
) (*cryptoDomain.MasterKeyChain, error) {
	if activeID == "" {
		return nil, cryptoDomain.ErrActiveMasterKeyIDNotSet
	}

	entries, err := cryptoDomain.ParseMasterKeyEntries(rawKeys)
	if err != nil {
		return nil, err
	}

	mkc := cryptoDomain.NewMasterKeyChain(activeID)
	for _, entry := range entries {
		key, err := keeper.Decrypt(ctx, entry.Payload)
		if err != nil {
			mkc.Close()
			return nil, fmt.Errorf("failed to unwrap master key %s: %w", entry.ID, err)
		}
		if len(key) != cryptoDomain.KeySize {
			cryptoDomain.Zero(key)
			mkc.Close()
			return nil, fmt.Errorf(
				"%w: master key %s must be %d bytes, got %d",
				cryptoDomain.ErrInvalidKeySize,
				entry.ID,
				cryptoDomain.KeySize,
				len(key),
			)
		}
		mkc.Add(entry.ID, key)
		cryptoDomain.Zero(key)
	}

	if _, ok := mkc.Get(activeID); !ok {
		mkc.Close()
		return nil, fmt.Errorf("%w: %s", cryptoDomain.ErrActiveMasterKeyNotFound, activeID)
	}

	return mkc, nil
}

// kmsProviderSchemes maps provider names to the URI scheme their gocloud
// driver registers.
var kmsProviderSchemes = map[string]string{
	"gcpkms":        "gcpkms://",
	"awskms":        "awskms://",
	"azurekeyvault": "azurekeyvault://",
	"hashivault":    "hashivault://",
	"localsecrets":  "base64key://",
}

// ValidateProviderKeyURI checks that keyURI carries the scheme of the named
// KMS provider, catching a provider/URI mix-up before any KMS connection is
// attempted. An empty provider skips the check: the URI scheme alone selects
// the driver.
func ValidateProviderKeyURI(provider, keyURI string) error {
	if provider == "" {
		return nil
	}

	scheme, ok := kmsProviderSchemes[provider]
	if !ok {
		return apperrors.Wrap(apperrors.ErrInvalidInput,
			fmt.Sprintf("unknown KMS provider %q", provider))
	}
	if !strings.HasPrefix(keyURI, scheme) {
		return apperrors.Wrap(apperrors.ErrInvalidInput,
			fmt.Sprintf("KMS key URI must use scheme %q for provider %q", scheme, provider))
	}
	return nil
}
