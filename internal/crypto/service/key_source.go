package service

import (
	"context"
	"fmt"

	"github.com/allisson/go-env"
)

// DefaultKeyEnvPrefix is the environment variable prefix of key slots:
// FIELD_ENCRYPTION_KEY_V1, FIELD_ENCRYPTION_KEY_V2, ...
const DefaultKeyEnvPrefix = "FIELD_ENCRYPTION_KEY_V"

// EnvKeySource reads key slots 1..MaxVersions from environment variables.
// Every call re-reads the environment so that an invalidated KeyStore picks up
// newly deployed slots.
type EnvKeySource struct {
	prefix      string
	maxVersions int
}

// NewEnvKeySource creates an EnvKeySource. An empty prefix uses DefaultKeyEnvPrefix.
func NewEnvKeySource(prefix string, maxVersions int) *EnvKeySource {
	if prefix == "" {
		prefix = DefaultKeyEnvPrefix
	}
	return &EnvKeySource{prefix: prefix, maxVersions: maxVersions}
}

// Slots returns the non-empty slots found in the environment.
func (s *EnvKeySource) Slots(ctx context.Context) (map[int]string, error) {
	if s.maxVersions < 1 {
		return nil, fmt.Errorf("max key versions must be positive, got %d", s.maxVersions)
	}

	slots := make(map[int]string)
	for version := 1; version <= s.maxVersions; version++ {
		if value := env.GetString(fmt.Sprintf("%s%d", s.prefix, version), ""); value != "" {
			slots[version] = value
		}
	}
	return slots, nil
}

// StaticKeySource serves fixed slots. Used by operator tooling and tests.
type StaticKeySource map[int]string

// Slots returns a copy of the configured slots.
func (s StaticKeySource) Slots(ctx context.Context) (map[int]string, error) {
	slots := make(map[int]string, len(s))
	for version, value := range s {
		slots[version] = value
	}
	return slots, nil
}
