package session

import (
	"context"
)

var userCtxKey = &contextKey{"user"}
var sessionCtxKey = &contextKey{"session"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithSessionContext sets the resolved SessionObject in the given context
func WithSessionContext(r context.Context, s *SessionObject) context.Context {
	return context.WithValue(r, sessionCtxKey, s)
}

// GetSession extracts the resolved SessionObject from the standard context.
// Collaborating CRUD handlers use this plus Authorize to gate operations.
func GetSession(ctx context.Context) (*SessionObject, bool) {
	raw, ok := ctx.Value(sessionCtxKey).(*SessionObject)
	return raw, ok
}

// Allowed is a convenience wrapper to run the authorization gate against
// whatever session the context carries (nil session for anonymous).
func Allowed(ctx context.Context, capability Capability) error {
	s, _ := GetSession(ctx)
	return Authorize(s, capability)
}
