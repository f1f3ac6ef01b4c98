package session_test

import (
	"testing"
	"time"

	"github.com/beanhaus/go-session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionObjectGetters(t *testing.T) {
	userID := uuid.New()
	issuedAt := time.Now().Add(-time.Minute)
	expiresAt := time.Now().Add(167 * time.Hour)

	s := &session.SessionObject{
		UserID:         userID.String(),
		Name:           "Pepe Rone",
		Email:          "pepe.rone@example.com",
		Role:           session.RoleAdmin,
		Issuer:         "beanhaus",
		IssuedAt:       &issuedAt,
		ExpirationDate: &expiresAt,
	}

	assert.Equal(t, userID.String(), s.GetUserID())
	assert.Equal(t, "Pepe Rone", s.GetName())
	assert.Equal(t, "pepe.rone@example.com", s.GetEmail())
	assert.Equal(t, session.RoleAdmin, s.GetRole())
	assert.Equal(t, "beanhaus", s.GetIssuer())
	assert.Equal(t, &issuedAt, s.GetIssuedAt())

	parsed, err := s.GetUserUUID()
	assert.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestSessionObjectRoleFallback(t *testing.T) {
	// Unknown roles in the claim-set never grant more than member access
	s := &session.SessionObject{
		UserID: uuid.NewString(),
		Role:   "superuser",
	}

	assert.Equal(t, session.RoleMember, s.GetRole())
	assert.False(t, s.IsAdmin())
	assert.True(t, s.HasRole(session.RoleMember))
	assert.False(t, s.IsAtLeast(session.RoleAdmin))
}

func TestSessionObjectRoleChecks(t *testing.T) {
	admin := &session.SessionObject{UserID: uuid.NewString(), Role: session.RoleAdmin}
	member := &session.SessionObject{UserID: uuid.NewString(), Role: session.RoleMember}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.IsAtLeast(session.RoleMember))
	assert.True(t, admin.IsAtLeast(session.RoleAdmin))

	assert.False(t, member.IsAdmin())
	assert.True(t, member.IsAtLeast(session.RoleMember))
	assert.False(t, member.IsAtLeast(session.RoleAdmin))
}

func TestHasUserUUID(t *testing.T) {
	assert.False(t, session.HasUserUUID(nil))

	assert.False(t, session.HasUserUUID(&session.SessionObject{
		UserID: "not-a-uuid",
	}))

	assert.True(t, session.HasUserUUID(&session.SessionObject{
		UserID: uuid.NewString(),
	}))
}
