package session_test

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/beanhaus/go-session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetSecret(t *testing.T) {
	secret, err := session.GenerateResetSecret()
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	t.Run("carries 256 bits of entropy", func(t *testing.T) {
		raw, err := base64.RawURLEncoding.DecodeString(secret)
		require.NoError(t, err)
		assert.Len(t, raw, 32)
	})

	t.Run("survives URL encoding untouched", func(t *testing.T) {
		// The secret travels as a link query parameter
		assert.Equal(t, secret, url.QueryEscape(secret))
	})

	t.Run("secrets are unique", func(t *testing.T) {
		seen := map[string]bool{secret: true}
		for i := 0; i < 64; i++ {
			s, err := session.GenerateResetSecret()
			require.NoError(t, err)
			assert.False(t, seen[s])
			seen[s] = true
		}
	})
}
