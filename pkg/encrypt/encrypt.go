package encrypt

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = bcrypt.DefaultCost

// ErrPasswordMismatch returned when the hash and the input do not match
var ErrPasswordMismatch = errors.New("password does not match")

var (
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[@#$%^&+=]`)
)

// ValidatePasswordStrength signup rule: at least 8 characters with one
// uppercase letter, one digit and one special character.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 ||
		!upperPattern.MatchString(password) ||
		!digitPattern.MatchString(password) ||
		!specialPattern.MatchString(password) {
		return errors.New("Password must be at least 8 characters long and contain at least one uppercase letter, one number, and one special character")
	}
	return nil
}

// HashPassword hash a password with bcrypt
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword verify a password against its bcrypt hash
func CheckPassword(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
