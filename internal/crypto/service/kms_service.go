package service

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	cryptoDomain "github.com/allisson/mealguard/internal/crypto/domain"
)

// kmsSchemes lists the key URI schemes registered above. base64key is the
// local keeper, meant for development and tests only.
var kmsSchemes = []string{"awskms", "azurekeyvault", "gcpkms", "hashivault", "base64key"}

// KMSService opens the keeper that wraps field key slots at rest.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

type kmsService struct{}

// NewKMSService returns a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens the keeper for keyURI. The caller closes it.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	u, err := url.Parse(keyURI)
	if err != nil || !slices.Contains(kmsSchemes, u.Scheme) {
		return nil, fmt.Errorf("%w: unsupported KMS key URI, expected one of %v", cryptoDomain.ErrConfig, kmsSchemes)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open KMS keeper for %s: %v", cryptoDomain.ErrConfig, u.Scheme, err)
	}
	return keeper, nil
}
