package session_test

import (
	"testing"

	"github.com/beanhaus/go-session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("requires a signing key", func(t *testing.T) {
		t.Setenv("SESSION_SIGNING_KEY", "")

		_, err := session.NewConfigFromEnv()
		assert.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("SESSION_SIGNING_KEY", "env-test-key")

		cfg, err := session.NewConfigFromEnv()
		require.NoError(t, err)

		assert.Equal(t, "env-test-key", cfg.GetSigningKey())
		assert.Equal(t, "HS256", cfg.GetSigningMethod())
		assert.Equal(t, "session", cfg.GetContextKey())
		assert.Equal(t, 168, cfg.GetTokenExpiration())
		assert.Equal(t, 720, cfg.GetExtendedTokenDuration())
		assert.Equal(t, "Bearer", cfg.GetAuthScheme())
		assert.Equal(t, "beanhaus", cfg.GetIssuer())
		assert.Equal(t, []string{"beanhaus"}, cfg.GetAudience())
		assert.Equal(t, "redirect", cfg.GetRejectedRouteKey())
		assert.Equal(t, "/login", cfg.GetRejectedRouteDefault())
		assert.True(t, cfg.GetSecureCookies())

		// Default token lookup walks the carrier cookies in precedence order
		assert.Equal(t, session.CarrierTokenLookup(), cfg.GetTokenLookup())
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("SESSION_SIGNING_KEY", "env-test-key")
		t.Setenv("SESSION_TOKEN_EXPIRATION", "24")
		t.Setenv("SESSION_ISSUER", "beanhaus-staging")
		t.Setenv("SESSION_AUDIENCE", "beanhaus,beanhaus-admin")
		t.Setenv("SESSION_SECURE_COOKIES", "false")
		t.Setenv("SESSION_TOKEN_LOOKUP", "header:Authorization")

		cfg, err := session.NewConfigFromEnv()
		require.NoError(t, err)

		assert.Equal(t, 24, cfg.GetTokenExpiration())
		assert.Equal(t, "beanhaus-staging", cfg.GetIssuer())
		assert.Equal(t, []string{"beanhaus", "beanhaus-admin"}, cfg.GetAudience())
		assert.False(t, cfg.GetSecureCookies())
		assert.Equal(t, "header:Authorization", cfg.GetTokenLookup())
	})
}

func TestSessionConfigTokenLookupFallback(t *testing.T) {
	cfg := &session.SessionConfig{}
	assert.Equal(t, session.CarrierTokenLookup(), cfg.GetTokenLookup())

	cfg.TokenLookup = "cookie:custom"
	assert.Equal(t, "cookie:custom", cfg.GetTokenLookup())
}
