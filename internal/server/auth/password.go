package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/mbertrand/piquante/internal/common"
)

// HashPassword derives a salted one-way hash of the password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a candidate password against a stored bcrypt hash.
// Returns ErrorInvalidCredentials on mismatch.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return common.ErrorInvalidCredentials
	}
	return nil
}
