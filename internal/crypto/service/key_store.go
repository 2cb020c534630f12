package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	cryptoDomain "github.com/allisson/mealguard/internal/crypto/domain"
)

// keySet maps key versions to loaded keys. A published keySet is never mutated.
type keySet map[int]*cryptoDomain.Key

// KeyStore is the source of truth for field encryption keys.
//
// Keys are read from a KeySource on first use and cached until Invalidate is
// called. The cache is swapped atomically: concurrent first loads may both read
// the source, and since reading the same configuration is idempotent the last
// write wins and every caller observes a complete key set.
//
// The current version is an operator-set value rather than the highest loaded
// slot. Rotation is two steps: deploy the new slot, then promote it by raising
// the current version.
type KeyStore struct {
	source         KeySource
	keeper         cryptoDomain.KMSKeeper
	currentVersion int
	logger         *slog.Logger
	now            func() time.Time

	cache atomic.Pointer[keySet]
}

// KeyStoreOption configures optional KeyStore behavior.
type KeyStoreOption func(*KeyStore)

// WithKMSKeeper makes the KeyStore treat every slot as a KMS-wrapped key that
// must be unwrapped through keeper before use.
func WithKMSKeeper(keeper cryptoDomain.KMSKeeper) KeyStoreOption {
	return func(s *KeyStore) {
		s.keeper = keeper
	}
}

// WithClock overrides the clock used to stamp key activation times.
func WithClock(now func() time.Time) KeyStoreOption {
	return func(s *KeyStore) {
		s.now = now
	}
}

// NewKeyStore creates a KeyStore reading slots from source.
func NewKeyStore(
	source KeySource,
	currentVersion int,
	logger *slog.Logger,
	opts ...KeyStoreOption,
) *KeyStore {
	s := &KeyStore{
		source:         source,
		currentVersion: currentVersion,
		logger:         logger,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads and validates the key slots, caching the result.
// Returns ErrConfig if version 1 is absent, a slot does not decode to exactly
// 32 bytes, or the current version is not loaded.
func (s *KeyStore) Load(ctx context.Context) error {
	_, err := s.keys(ctx)
	return err
}

// CurrentVersion returns the version used for new encryptions.
func (s *KeyStore) CurrentVersion() int {
	return s.currentVersion
}

// Resolve returns the key for version, or the current key when version is 0.
func (s *KeyStore) Resolve(ctx context.Context, version int) (*cryptoDomain.Key, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return nil, err
	}

	if version == 0 {
		version = s.currentVersion
	}

	key, ok := keys[version]
	if !ok {
		return nil, fmt.Errorf("%w: version %d", cryptoDomain.ErrKeyNotFound, version)
	}
	return key, nil
}

// IsDeprecated reports whether version is older than the current version.
func (s *KeyStore) IsDeprecated(version int) bool {
	return version < s.currentVersion
}

// Invalidate drops the cached keys so the next access re-reads the source.
func (s *KeyStore) Invalidate() {
	s.cache.Store(nil)
	s.logger.Info("field encryption key cache invalidated")
}

// Versions describes every loaded key, sorted by version, without key material.
func (s *KeyStore) Versions(ctx context.Context) ([]cryptoDomain.KeyInfo, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]cryptoDomain.KeyInfo, 0, len(keys))
	for _, key := range keys {
		infos = append(infos, key.Info(s.currentVersion))
	}
	slices.SortFunc(infos, func(a, b cryptoDomain.KeyInfo) int {
		return a.Version - b.Version
	})
	return infos, nil
}

// GenerateKey returns a new random 32-byte key encoded the way slots are
// configured: base64, and wrapped with the KMS keeper when one is set.
func (s *KeyStore) GenerateKey(ctx context.Context) (string, error) {
	material := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(material)

	if _, err := rand.Read(material); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}

	if s.keeper == nil {
		return base64.StdEncoding.EncodeToString(material), nil
	}

	wrapped, err := s.keeper.Encrypt(ctx, material)
	if err != nil {
		return "", fmt.Errorf("failed to wrap key with KMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(wrapped), nil
}

// keys returns the cached key set, loading it on first use.
func (s *KeyStore) keys(ctx context.Context) (keySet, error) {
	if cached := s.cache.Load(); cached != nil {
		return *cached, nil
	}

	keys, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Store(&keys)

	s.logger.Info("field encryption keys loaded",
		slog.Int("key_count", len(keys)),
		slog.Int("current_version", s.currentVersion),
		slog.Bool("kms_wrapped", s.keeper != nil),
	)
	return keys, nil
}

// read builds a fresh key set from the source.
func (s *KeyStore) read(ctx context.Context) (keySet, error) {
	if s.currentVersion < 1 {
		return nil, fmt.Errorf(
			"%w: current version must be positive, got %d",
			cryptoDomain.ErrConfig,
			s.currentVersion,
		)
	}

	slots, err := s.source.Slots(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrConfig, err)
	}
	if _, ok := slots[1]; !ok {
		return nil, fmt.Errorf("%w: key version 1 is required", cryptoDomain.ErrConfig)
	}

	activatedAt := s.now().UTC()
	keys := make(keySet, len(slots))
	for version, encoded := range slots {
		if version < 1 {
			keys.wipe()
			return nil, fmt.Errorf("%w: key version %d is not positive", cryptoDomain.ErrConfig, version)
		}

		material, err := s.decode(ctx, encoded)
		if err != nil {
			keys.wipe()
			return nil, fmt.Errorf("%w: key version %d: %v", cryptoDomain.ErrConfig, version, err)
		}
		if len(material) != cryptoDomain.KeySize {
			cryptoDomain.Zero(material)
			keys.wipe()
			return nil, fmt.Errorf(
				"%w: key version %d must decode to %d bytes, got %d",
				cryptoDomain.ErrConfig,
				version,
				cryptoDomain.KeySize,
				len(material),
			)
		}

		keys[version] = &cryptoDomain.Key{
			Version:     version,
			Material:    material,
			ActivatedAt: activatedAt,
			Deprecated:  s.IsDeprecated(version),
		}
	}

	if _, ok := keys[s.currentVersion]; !ok {
		keys.wipe()
		return nil, fmt.Errorf(
			"%w: current version %d is not loaded",
			cryptoDomain.ErrConfig,
			s.currentVersion,
		)
	}
	return keys, nil
}

// wipe clears the material of a key set that was never published.
func (k keySet) wipe() {
	for _, key := range k {
		cryptoDomain.Zero(key.Material)
	}
}

// decode turns one configured slot into raw key material.
func (s *KeyStore) decode(ctx context.Context, encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, errors.New("invalid base64 encoding")
	}
	if s.keeper == nil {
		return raw, nil
	}

	material, err := s.keeper.Decrypt(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap key with KMS: %w", err)
	}
	return material, nil
}
