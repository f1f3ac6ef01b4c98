package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the structured session claim-set embedded in a token
type AuthClaims interface {
	Subject() string
	UserID() string
	Role() string
	Email() string
	DisplayName() string
	HasRole(role string) bool
	IsAtLeast(minRole string) bool
	IsAdmin() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. The claim-set is
// intentionally small: principal id, display name, email, role, and the
// registered issuance/expiry pair. Expiry is absolute, fixed at issuance.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID      string   `json:"uid,omitempty"`
	Name     string   `json:"name,omitempty"`
	UserMail string   `json:"email,omitempty"`
	UserRole UserRole `json:"role,omitempty"`
	Scopes   []string `json:"scopes,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Role returns the global role
func (c *JWTClaims) Role() string {
	return c.UserRole
}

// Email returns the principal's email as recorded at issuance
func (c *JWTClaims) Email() string {
	return c.UserMail
}

// DisplayName returns the principal's display name as recorded at issuance
func (c *JWTClaims) DisplayName() string {
	return c.Name
}

// HasRole checks if the user has a specific role
func (c *JWTClaims) HasRole(role string) bool {
	return c.UserRole == role
}

// IsAtLeast checks if the user's role is at least the minimum required role
func (c *JWTClaims) IsAtLeast(minRole string) bool {
	return RoleIsAtLeast(c.UserRole, UserRole(minRole))
}

// IsAdmin is shorthand for HasRole(RoleAdmin)
func (c *JWTClaims) IsAdmin() bool {
	return c.UserRole == RoleAdmin
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
