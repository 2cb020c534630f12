// Package domain defines the authentication and authorization domain models:
// roles, the request-scoped identity and the rejection errors of the auth gate.
package domain

import "slices"

// Role names the permission level of an account within its tenant.
type Role string

const (
	// RoleEmployee places meal orders for themselves.
	RoleEmployee Role = "employee"

	// RoleAdmin manages the accounts of their own tenant.
	RoleAdmin Role = "admin"

	// RoleSuperAdmin operates the platform, including field encryption keys.
	RoleSuperAdmin Role = "super_admin"
)

// Roles lists every known role.
var Roles = []Role{RoleEmployee, RoleAdmin, RoleSuperAdmin}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}
