package helpers

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is lowered by tests.
var BcryptCost = bcrypt.DefaultCost

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

// IsStrongPassword requires at least one letter and one digit; length is
// checked by the request validator.
func IsStrongPassword(s string) bool {
	return hasLetter.MatchString(s) && hasNumber.MatchString(s)
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
