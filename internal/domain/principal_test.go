package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalRoles(t *testing.T) {
	assert.True(t, Principal{Role: RoleAdmin}.IsStaff())
	assert.True(t, Principal{Role: RoleOwner}.IsStaff())
	assert.False(t, Principal{Role: RoleUser}.IsStaff())

	p := Principal{Role: RoleOwner}
	assert.True(t, p.Is(RoleOwner))
	assert.True(t, p.Is(RoleAdmin, RoleOwner))
	assert.False(t, p.Is(RoleAdmin))
	assert.False(t, p.Is())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleOwner.Valid())
	assert.False(t, Role("superuser").Valid())
}
