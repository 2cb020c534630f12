package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Identity is the authenticated caller of a single request.
//
// It is derived on every request from a verified token plus a live account
// lookup, and is never cached or persisted.
type Identity struct {
	ID       uuid.UUID
	Email    string
	TenantID uuid.UUID
	Role     Role
}

// HasRole reports whether the identity holds any of roles.
func (i *Identity) HasRole(roles ...Role) bool {
	return i != nil && slices.Contains(roles, i.Role)
}
