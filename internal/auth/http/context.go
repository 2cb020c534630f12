// Package http provides the authentication gate, role checks, rate limits and
// the login endpoint.
package http

import (
	"context"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

// identityKey is a context key type for storing the authenticated identity.
type identityKey struct{}

// WithIdentity stores an authenticated identity in the context.
// This is called by AuthenticationMiddleware after the token and account both check out.
func WithIdentity(ctx context.Context, identity *authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the authenticated identity from the context.
// Returns (identity, true) if one is present, or (nil, false) otherwise.
func GetIdentity(ctx context.Context) (*authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authDomain.Identity)
	return identity, ok && identity != nil
}
