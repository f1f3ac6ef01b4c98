package session_test

import (
	"testing"

	"github.com/beanhaus/go-session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes a password", func(t *testing.T) {
		hash, err := session.HashPassword("password123")

		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "password123", hash)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		hash, err := session.HashPassword("")

		assert.Empty(t, hash)
		assert.ErrorIs(t, err, session.ErrNoEmptyString)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := session.HashPassword("password123")
	require.NoError(t, err)

	t.Run("matching password", func(t *testing.T) {
		assert.NoError(t, session.ComparePasswordAndHash("password123", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := session.ComparePasswordAndHash("wrong_password", hash)
		assert.ErrorIs(t, err, session.ErrMismatchedHashAndPassword)
	})

	t.Run("garbage hash", func(t *testing.T) {
		err := session.ComparePasswordAndHash("password123", "not-a-bcrypt-hash")
		assert.Error(t, err)
	})
}

func TestRandomPasswordHash(t *testing.T) {
	hash := session.RandomPasswordHash()
	assert.NotEmpty(t, hash)
}
