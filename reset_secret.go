package session

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/goliatone/go-errors"
)

// resetSecretBytes yields a 256-bit secret, double the 128-bit floor the
// reset design requires.
const resetSecretBytes = 32

// GenerateResetSecret returns a URL-safe, cryptographically random secret
// for the password-reset flow. The secret travels as a link parameter in
// the dispatched message, so the encoding must stay URL-safe.
func GenerateResetSecret() (string, error) {
	buf := make([]byte, resetSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to generate reset secret")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
