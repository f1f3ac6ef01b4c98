package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleMember is a regular customer-facing account
	RoleMember UserRole = "member"
	// RoleAdmin is a staff account with full catalog/ops access
	RoleAdmin UserRole = "admin"
)

// UserStatus tracks whether an account may authenticate
type UserStatus = string

const (
	// UserStatusActive may log in
	UserStatusActive UserStatus = "active"
	// UserStatusSuspended is blocked from logging in until reinstated
	UserStatusSuspended UserStatus = "suspended"
)

// User is the user model. The reset_token/reset_token_expires_at pair is
// the single outstanding reset-credential record: a new request overwrites
// it, redemption clears it.
type User struct {
	bun.BaseModel       `bun:"table:users,alias:usr"`
	ID                  uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role                UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	Status              UserStatus `bun:"status" json:"status,omitempty"`
	FirstName           string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName            string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Username            string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email               string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone               string     `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash        string     `bun:"password_hash" json:"-"`
	LoginAttempts       int        `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt      *time.Time `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt          *time.Time `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	ResetToken          string     `bun:"reset_token,nullzero" json:"-"`
	ResetTokenExpiresAt *time.Time `bun:"reset_token_expires_at,nullzero" json:"-"`
	ResetedAt           *time.Time `bun:"reseted_at,nullzero" json:"reseted_at,omitempty"`
	CreatedAt           *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt           *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt           *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// DisplayName is what we embed in the session claim-set
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// EnsureStatus backfills rows created before the status column existed
func (u *User) EnsureStatus() {
	if u.Status == "" {
		u.Status = UserStatusActive
	}
}

// HasPendingReset reports whether a reset secret is outstanding and unexpired
func (u *User) HasPendingReset(now time.Time) bool {
	if u.ResetToken == "" || u.ResetTokenExpiresAt == nil {
		return false
	}
	return u.ResetTokenExpiresAt.After(now)
}
