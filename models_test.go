package session_test

import (
	"testing"
	"time"

	"github.com/beanhaus/go-session"
	"github.com/stretchr/testify/assert"
)

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     session.User
		expected string
	}{
		{
			name:     "first and last name",
			user:     session.User{FirstName: "Pepe", LastName: "Rone", Username: "peperone"},
			expected: "Pepe Rone",
		},
		{
			name:     "first name only",
			user:     session.User{FirstName: "Pepe", Username: "peperone"},
			expected: "Pepe",
		},
		{
			name:     "falls back to username",
			user:     session.User{Username: "peperone"},
			expected: "peperone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.DisplayName())
		})
	}
}

func TestUserEnsureStatus(t *testing.T) {
	u := &session.User{}
	u.EnsureStatus()
	assert.Equal(t, session.UserStatusActive, u.Status)

	u.Status = session.UserStatusSuspended
	u.EnsureStatus()
	assert.Equal(t, session.UserStatusSuspended, u.Status)
}

func TestUserHasPendingReset(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Minute)

	t.Run("no secret issued", func(t *testing.T) {
		u := &session.User{}
		assert.False(t, u.HasPendingReset(now))
	})

	t.Run("outstanding unexpired secret", func(t *testing.T) {
		u := &session.User{
			ResetToken:          "some-secret",
			ResetTokenExpiresAt: &future,
		}
		assert.True(t, u.HasPendingReset(now))
	})

	t.Run("expired secret", func(t *testing.T) {
		u := &session.User{
			ResetToken:          "some-secret",
			ResetTokenExpiresAt: &past,
		}
		assert.False(t, u.HasPendingReset(now))
	})

	t.Run("secret without expiry", func(t *testing.T) {
		u := &session.User{
			ResetToken: "some-secret",
		}
		assert.False(t, u.HasPendingReset(now))
	})
}
