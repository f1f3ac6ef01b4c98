package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFromClaims(t *testing.T) {
	now := time.Now()

	t.Run("maps the full claim-set", func(t *testing.T) {
		claims := jwt.MapClaims{
			"uid":   "user-1",
			"name":  "Pepe Rone",
			"email": "pepe.rone@example.com",
			"role":  RoleAdmin,
			"iss":   "beanhaus",
			"iat":   float64(now.Unix()),
			"exp":   float64(now.Add(168 * time.Hour).Unix()),
		}

		s, err := sessionFromClaims(claims)
		require.NoError(t, err)

		assert.Equal(t, "user-1", s.GetUserID())
		assert.Equal(t, "Pepe Rone", s.GetName())
		assert.Equal(t, "pepe.rone@example.com", s.GetEmail())
		assert.Equal(t, RoleAdmin, s.GetRole())
		assert.Equal(t, "beanhaus", s.GetIssuer())
		require.NotNil(t, s.GetIssuedAt())
		assert.Equal(t, now.Unix(), s.GetIssuedAt().Unix())
		require.NotNil(t, s.ExpirationDate)
	})

	t.Run("falls back to the subject claim", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub": "user-2",
		}

		s, err := sessionFromClaims(claims)
		require.NoError(t, err)
		assert.Equal(t, "user-2", s.GetUserID())
	})

	t.Run("rejects claims without a principal", func(t *testing.T) {
		s, err := sessionFromClaims(jwt.MapClaims{"name": "nobody"})

		assert.Nil(t, s)
		assert.ErrorIs(t, err, ErrUnableToMapClaims)
	})

	t.Run("rejects non-map claims", func(t *testing.T) {
		s, err := sessionFromClaims(&jwt.RegisteredClaims{Subject: "user-3"})

		assert.Nil(t, s)
		assert.ErrorIs(t, err, ErrUnableToMapClaims)
	})
}

func TestStatusAuthError(t *testing.T) {
	assert.NoError(t, statusAuthError(UserStatusActive))

	err := statusAuthError(UserStatusSuspended)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "suspended")

	err = statusAuthError("archived")
	assert.Error(t, err)
}
