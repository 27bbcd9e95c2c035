// Package secrets hashes and verifies operator tokens, such as the seed
// token guarding demo-data loading. Plaintext tokens are never stored;
// configuration carries only the bcrypt hash.
package secrets

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "extendbee/pkg/domain-errors"
)

// Hash produces a bcrypt hash of the given token for storage.
func Hash(token string) (string, error) {
	if token == "" {
		return "", dErrors.New(dErrors.CodeValidation, "token cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "token is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash token")
	}
	return string(hashed), nil
}

// Verify checks a plaintext token against a stored bcrypt hash.
func Verify(token, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid token")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not verify token")
	}
	return nil
}
