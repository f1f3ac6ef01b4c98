package session

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced to API consumers. Responses never distinguish the
// reason a credential was rejected beyond these coarse buckets.
const (
	TextCodeInvalidCreds       = "INVALID_CREDENTIALS"
	TextCodeTooManyAttempts    = "TOO_MANY_ATTEMPTS"
	TextCodeSessionNotFound    = "SESSION_NOT_FOUND"
	TextCodeSessionDecodeError = "SESSION_DECODE_ERROR"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeUnauthorized       = "UNAUTHORIZED"
	TextCodeForbidden          = "FORBIDDEN"
	TextCodeResetTokenInvalid  = "RESET_TOKEN_INVALID"
	TextCodeEmptyPassword      = "EMPTY_PASSWORD"
	TextCodeStoreUnavailable   = "STORE_UNAVAILABLE"
)

// ErrIdentityNotFound is the error we return for non found identities.
// Internal only: the HTTP layer collapses it into the generic
// invalid-credentials response.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound)

// ErrMismatchedHashAndPassword is returned when credentials do not verify
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrTooManyLoginAttempts is returned when a principal exhausted the attempt budget
var ErrTooManyLoginAttempts = errors.New("too many login attempts", errors.CategoryRateLimit).
	WithTextCode(TextCodeTooManyAttempts)

// ErrUnableToFindSession is the error when our request carries no credential
var ErrUnableToFindSession = errors.New("unable to find session", errors.CategoryAuth).
	WithTextCode(TextCodeSessionNotFound).
	WithCode(errors.CodeUnauthorized)

// ErrUnableToDecodeSession unable to decode JWT from a credential carrier
var ErrUnableToDecodeSession = errors.New("unable to decode session", errors.CategoryAuth).
	WithTextCode(TextCodeSessionDecodeError).
	WithCode(errors.CodeUnauthorized)

// ErrUnableToMapClaims unable to map JWT claims into the session claim-set
var ErrUnableToMapClaims = errors.New("unable to map claims", errors.CategoryAuth).
	WithTextCode(TextCodeSessionDecodeError).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired means the token is structurally valid but past its
// absolute expiry. Kept distinct from ErrTokenMalformed for logging only;
// both map to the same anonymized 401.
var ErrTokenExpired = errors.New("authentication token has expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers tampered, truncated, or otherwise undecodable tokens
var ErrTokenMalformed = errors.New("authentication token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthorized is the gate's denial when no usable credential resolved
var ErrUnauthorized = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is the gate's denial for a valid credential lacking the
// required capability. Distinct status semantics from ErrUnauthorized, same
// user-facing message shape.
var ErrForbidden = errors.New("access denied", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrResetTokenInvalid covers absent, mismatched, superseded, and expired
// reset secrets. Callers must not be able to tell these cases apart.
var ErrResetTokenInvalid = errors.New("invalid or expired password reset token", errors.CategoryValidation).
	WithTextCode(TextCodeResetTokenInvalid)

// ErrNoEmptyString is returned when hashing an empty password
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrStoreUnavailable signals a transient credential-store failure. It is
// fatal to the current request (fail closed) but must never be conflated
// with an authentication denial or cached as one.
var ErrStoreUnavailable = errors.New("credential store unavailable", errors.CategoryInternal).
	WithTextCode(TextCodeStoreUnavailable).
	WithCode(errors.CodeInternal)

// storeUnavailable wraps an infrastructure failure from the credential
// store into the ErrStoreUnavailable shape. Fail closed: the caller aborts
// the request, and the failure is never surfaced as an auth denial.
func storeUnavailable(err error) *errors.Error {
	return errors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
		WithTextCode(ErrStoreUnavailable.TextCode).
		WithCode(ErrStoreUnavailable.Code)
}

// statusAuthError maps a non-active account status to an auth denial
func statusAuthError(status UserStatus) error {
	switch status {
	case UserStatusActive:
		return nil
	case UserStatusSuspended:
		return errors.New("account is suspended", errors.CategoryAuth).
			WithTextCode("ACCOUNT_SUSPENDED").
			WithCode(errors.CodeUnauthorized)
	default:
		return errors.New("account status does not permit authentication", errors.CategoryAuth).
			WithTextCode("ACCOUNT_INACTIVE").
			WithCode(errors.CodeUnauthorized).
			WithMetadata(map[string]any{"status": status})
	}
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
