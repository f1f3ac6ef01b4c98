package session_test

import (
	"testing"

	"github.com/beanhaus/go-session"
	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, session.IsValidRole(session.RoleMember))
	assert.True(t, session.IsValidRole(session.RoleAdmin))
	assert.False(t, session.IsValidRole("superuser"))
	assert.False(t, session.IsValidRole(""))
}

func TestRoleIsAtLeast(t *testing.T) {
	tests := []struct {
		role     session.UserRole
		minRole  session.UserRole
		expected bool
	}{
		{session.RoleAdmin, session.RoleMember, true},
		{session.RoleAdmin, session.RoleAdmin, true},
		{session.RoleMember, session.RoleMember, true},
		{session.RoleMember, session.RoleAdmin, false},
		{"superuser", session.RoleMember, false},
		{session.RoleMember, "superuser", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" vs "+tt.minRole, func(t *testing.T) {
			assert.Equal(t, tt.expected, session.RoleIsAtLeast(tt.role, tt.minRole))
		})
	}
}

func TestParseRole(t *testing.T) {
	role, ok := session.ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, session.RoleAdmin, role)

	_, ok = session.ParseRole("superuser")
	assert.False(t, ok)
}

func TestGetAllRoles(t *testing.T) {
	roles := session.GetAllRoles()
	assert.Equal(t, []session.UserRole{session.RoleMember, session.RoleAdmin}, roles)
}
