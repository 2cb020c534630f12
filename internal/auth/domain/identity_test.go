package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleEmployee.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleSuperAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}

func TestIdentity_HasRole(t *testing.T) {
	identity := &Identity{ID: uuid.New(), Role: RoleAdmin}

	assert.True(t, identity.HasRole(RoleAdmin, RoleSuperAdmin))
	assert.False(t, identity.HasRole(RoleSuperAdmin))
	assert.False(t, identity.HasRole())

	var missing *Identity
	assert.False(t, missing.HasRole(RoleEmployee))
}
