package session_test

import (
	"errors"
	"testing"

	"github.com/beanhaus/go-session"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
)

func TestFormatValidationErrorToMap(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		out := session.FormatValidationErrorToMap(nil)
		assert.Empty(t, out)
	})

	t.Run("flattens field errors", func(t *testing.T) {
		verrs := validation.Errors{
			"email":    errors.New("must be a valid email address"),
			"password": errors.New("the length must be between 8 and 64"),
		}

		out := session.FormatValidationErrorToMap(verrs)

		assert.Equal(t, "must be a valid email address", out["email"])
		assert.Equal(t, "the length must be between 8 and 64", out["password"])
	})

	t.Run("non-validation error lands on the form key", func(t *testing.T) {
		out := session.FormatValidationErrorToMap(errors.New("boom"))
		assert.Equal(t, "boom", out["form"])
	})
}

func TestValidateStringEquals(t *testing.T) {
	rule := session.ValidateStringEquals("password123")

	assert.NoError(t, rule("password123"))
	assert.Error(t, rule("password124"))
	assert.Error(t, rule(42))
}
