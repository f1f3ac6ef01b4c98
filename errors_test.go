package session_test

import (
	"errors"
	"testing"

	"github.com/beanhaus/go-session"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestIsTokenExpiredError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Structured token expired error",
			err:      session.ErrTokenExpired,
			expected: true,
		},
		{
			name:     "Legacy token expired error (string match)",
			err:      errors.New("some wrapper: token is expired"),
			expected: true,
		},
		{
			name:     "Different structured error",
			err:      session.ErrIdentityNotFound,
			expected: false,
		},
		{
			name:     "Different legacy error",
			err:      errors.New("invalid token"),
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := session.IsTokenExpiredError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsMalformedError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Structured malformed error",
			err:      session.ErrTokenMalformed,
			expected: true,
		},
		{
			name:     "Legacy malformed error (string match)",
			err:      errors.New("token is malformed"),
			expected: true,
		},
		{
			name:     "Missing JWT error (string match)",
			err:      errors.New("missing or malformed JWT"),
			expected: true,
		},
		{
			name:     "Different legacy error",
			err:      errors.New("invalid token"),
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := session.IsMalformedError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestStructuredErrorProperties(t *testing.T) {
	t.Run("ErrIdentityNotFound", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryNotFound, session.ErrIdentityNotFound.Category)
		assert.Equal(t, "identity not found", session.ErrIdentityNotFound.Message)
	})

	t.Run("ErrMismatchedHashAndPassword", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, session.ErrMismatchedHashAndPassword.Category)
		assert.Equal(t, session.TextCodeInvalidCreds, session.ErrMismatchedHashAndPassword.TextCode)
		assert.Equal(t, "the credentials provided are invalid", session.ErrMismatchedHashAndPassword.Message)
	})

	t.Run("ErrTooManyLoginAttempts", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryRateLimit, session.ErrTooManyLoginAttempts.Category)
		assert.Equal(t, session.TextCodeTooManyAttempts, session.ErrTooManyLoginAttempts.TextCode)
	})

	t.Run("ErrUnableToFindSession", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, session.ErrUnableToFindSession.Category)
		assert.Equal(t, session.TextCodeSessionNotFound, session.ErrUnableToFindSession.TextCode)
	})

	t.Run("ErrUnableToDecodeSession", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, session.ErrUnableToDecodeSession.Category)
		assert.Equal(t, session.TextCodeSessionDecodeError, session.ErrUnableToDecodeSession.TextCode)
	})

	t.Run("ErrTokenExpired", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, session.ErrTokenExpired.Category)
		assert.Equal(t, session.TextCodeTokenExpired, session.ErrTokenExpired.TextCode)
		assert.Equal(t, goerrors.CodeUnauthorized, session.ErrTokenExpired.Code)
	})

	t.Run("ErrTokenMalformed", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, session.ErrTokenMalformed.Category)
		assert.Equal(t, session.TextCodeTokenMalformed, session.ErrTokenMalformed.TextCode)
		assert.Equal(t, goerrors.CodeUnauthorized, session.ErrTokenMalformed.Code)
	})

	t.Run("ErrUnauthorized", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, session.ErrUnauthorized.Category)
		assert.Equal(t, session.TextCodeUnauthorized, session.ErrUnauthorized.TextCode)
		assert.Equal(t, goerrors.CodeUnauthorized, session.ErrUnauthorized.Code)
	})

	t.Run("ErrForbidden", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuthz, session.ErrForbidden.Category)
		assert.Equal(t, session.TextCodeForbidden, session.ErrForbidden.TextCode)
		assert.Equal(t, goerrors.CodeForbidden, session.ErrForbidden.Code)
	})

	t.Run("ErrResetTokenInvalid", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryValidation, session.ErrResetTokenInvalid.Category)
		assert.Equal(t, session.TextCodeResetTokenInvalid, session.ErrResetTokenInvalid.TextCode)
	})

	t.Run("ErrNoEmptyString", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryValidation, session.ErrNoEmptyString.Category)
		assert.Equal(t, session.TextCodeEmptyPassword, session.ErrNoEmptyString.TextCode)
	})

	t.Run("ErrStoreUnavailable", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryInternal, session.ErrStoreUnavailable.Category)
		assert.Equal(t, session.TextCodeStoreUnavailable, session.ErrStoreUnavailable.TextCode)
	})
}

func TestExpiredAndMalformedShareStatusCode(t *testing.T) {
	// Responses must not reveal whether a rejected token was expired or
	// tampered with; both map to the same status at the HTTP edge.
	assert.Equal(t, session.ErrTokenExpired.Code, session.ErrTokenMalformed.Code)
}
