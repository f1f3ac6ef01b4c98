package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ Session = &SessionObject{}
var _ RoleValidator = &SessionObject{}

// SessionObject is the resolved session claim-set. It has no identity
// beyond its encoding and is never persisted server-side.
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Name           string     `json:"name,omitempty"`
	Email          string     `json:"email,omitempty"`
	Role           UserRole   `json:"role,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetName() string {
	return s.Name
}

func (s *SessionObject) GetEmail() string {
	return s.Email
}

func (s *SessionObject) GetRole() UserRole {
	if _, ok := ParseRole(s.Role); !ok {
		return RoleMember
	}
	return s.Role
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

// HasRole checks if the user has a specific role
func (s *SessionObject) HasRole(role string) bool {
	return s.GetRole() == role
}

// IsAtLeast checks if the user's role is at least the minimum required role
func (s *SessionObject) IsAtLeast(minRole UserRole) bool {
	return RoleIsAtLeast(s.GetRole(), minRole)
}

// IsAdmin is shorthand for HasRole(RoleAdmin)
func (s *SessionObject) IsAdmin() bool {
	return s.GetRole() == RoleAdmin
}

func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf(
		"user=%s role=%s iss=%s iat=%s",
		s.UserID,
		s.Role,
		s.Issuer,
		issuedAt,
	)
}

// sessionFromAuthClaims creates a SessionObject from validated claims
func sessionFromAuthClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrUnableToDecodeSession
	}

	issuedAt := claims.IssuedAt()
	expiresAt := claims.Expires()

	return &SessionObject{
		UserID:         claims.UserID(),
		Name:           claims.DisplayName(),
		Email:          claims.Email(),
		Role:           claims.Role(),
		Issuer:         getIssuerFromClaims(claims),
		IssuedAt:       &issuedAt,
		ExpirationDate: &expiresAt,
	}, nil
}

// sessionFromClaims builds a SessionObject from raw JWT map claims, the
// shape the route middleware stores in request locals.
func sessionFromClaims(claims jwt.Claims) (*SessionObject, error) {
	mp, ok := claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnableToMapClaims
	}

	session := &SessionObject{}

	if uid, ok := mp["uid"].(string); ok && uid != "" {
		session.UserID = uid
	} else if sub, err := claims.GetSubject(); err == nil {
		session.UserID = sub
	}

	if name, ok := mp["name"].(string); ok {
		session.Name = name
	}

	if email, ok := mp["email"].(string); ok {
		session.Email = email
	}

	if role, ok := mp["role"].(string); ok {
		session.Role = role
	}

	if iss, err := claims.GetIssuer(); err == nil {
		session.Issuer = iss
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		session.IssuedAt = &iat.Time
	}

	if eat, err := claims.GetExpirationTime(); err == nil && eat != nil {
		session.ExpirationDate = &eat.Time
	}

	if session.UserID == "" {
		return nil, ErrUnableToMapClaims
	}

	return session, nil
}

// getIssuerFromClaims extracts the issuer from AuthClaims
func getIssuerFromClaims(claims AuthClaims) string {
	if jwtClaims, ok := claims.(*JWTClaims); ok {
		if jwtClaims.RegisteredClaims.Issuer != "" {
			return jwtClaims.RegisteredClaims.Issuer
		}
	}
	return claims.Subject()
}
