package session

import (
	"context"

	"github.com/beanhaus/go-session/middleware/jwtware"
)

// ValidationListener aliases the jwtware listener so consumers can use
// session helpers directly.
type ValidationListener = jwtware.ValidationListener

// ContextEnricherAdapter stores the resolved session in the standard
// context so downstream handlers can use GetSession and Allowed without
// touching the router context.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}

	session, err := sessionFromAuthClaims(authClaims)
	if err != nil {
		return c
	}

	return WithSessionContext(c, session)
}

// RegisterValidationListeners appends listeners to a jwtware.Config in a safe, reusable way.
func RegisterValidationListeners(cfg *jwtware.Config, listeners ...ValidationListener) {
	if cfg == nil || len(listeners) == 0 {
		return
	}
	cfg.ValidationListeners = append(cfg.ValidationListeners, listeners...)
}
