package session

import (
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

// SessionConfig is the environment driven Config implementation. The zero
// value is unusable; build one through NewConfigFromEnv or fill the exported
// fields in tests.
type SessionConfig struct {
	SigningKey            string   `env:"SESSION_SIGNING_KEY,required,notEmpty"`
	SigningMethod         string   `env:"SESSION_SIGNING_METHOD" envDefault:"HS256"`
	ContextKey            string   `env:"SESSION_CONTEXT_KEY" envDefault:"session"`
	TokenExpiration       int      `env:"SESSION_TOKEN_EXPIRATION" envDefault:"168"`
	ExtendedTokenDuration int      `env:"SESSION_EXTENDED_TOKEN_DURATION" envDefault:"720"`
	TokenLookup           string   `env:"SESSION_TOKEN_LOOKUP"`
	AuthScheme            string   `env:"SESSION_AUTH_SCHEME" envDefault:"Bearer"`
	Issuer                string   `env:"SESSION_ISSUER" envDefault:"beanhaus"`
	Audience              []string `env:"SESSION_AUDIENCE" envSeparator:"," envDefault:"beanhaus"`
	RejectedRouteKey      string   `env:"SESSION_REJECTED_ROUTE_KEY" envDefault:"redirect"`
	RejectedRouteDefault  string   `env:"SESSION_REJECTED_ROUTE_DEFAULT" envDefault:"/login"`
	SecureCookies         bool     `env:"SESSION_SECURE_COOKIES" envDefault:"true"`
}

var _ Config = (*SessionConfig)(nil)

// NewConfigFromEnv loads configuration from the process environment. Any
// .env files given are loaded first without overriding existing variables.
func NewConfigFromEnv(dotenv ...string) (*SessionConfig, error) {
	if len(dotenv) > 0 {
		if err := godotenv.Load(dotenv...); err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to load env file")
		}
	}

	cfg := &SessionConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse session config")
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = CarrierTokenLookup()
	}

	return cfg, nil
}

func (c *SessionConfig) GetSigningKey() string { return c.SigningKey }

func (c *SessionConfig) GetSigningMethod() string { return c.SigningMethod }

func (c *SessionConfig) GetContextKey() string { return c.ContextKey }

func (c *SessionConfig) GetTokenExpiration() int { return c.TokenExpiration }

func (c *SessionConfig) GetExtendedTokenDuration() int { return c.ExtendedTokenDuration }

func (c *SessionConfig) GetTokenLookup() string {
	if c.TokenLookup == "" {
		return CarrierTokenLookup()
	}
	return c.TokenLookup
}

func (c *SessionConfig) GetAuthScheme() string { return c.AuthScheme }

func (c *SessionConfig) GetIssuer() string { return c.Issuer }

func (c *SessionConfig) GetAudience() []string { return c.Audience }

func (c *SessionConfig) GetRejectedRouteKey() string { return c.RejectedRouteKey }

func (c *SessionConfig) GetRejectedRouteDefault() string { return c.RejectedRouteDefault }

func (c *SessionConfig) GetSecureCookies() bool { return c.SecureCookies }
