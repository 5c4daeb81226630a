package auth

import (
	"regexp"
	"unicode/utf8"

	"github.com/sujalbistaa/swipe/internal/apperr"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 20

	// PasswordMaxBytes is the most bcrypt will hash.
	PasswordMaxBytes = 72
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateUsername checks length first, then the allowed character set.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < UsernameMinLength || n > UsernameMaxLength {
		return apperr.Validation(apperr.CodeRegisterInvalidUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return apperr.Validation(apperr.CodeRegisterInvalidUsernameFormat)
	}
	return nil
}

// ValidatePassword enforces the configured minimum and bcrypt's byte limit.
func ValidatePassword(password string, minLength int) error {
	if utf8.RuneCountInString(password) < minLength || len(password) > PasswordMaxBytes {
		return apperr.Validation(apperr.CodeRegisterInvalidPassword)
	}
	return nil
}
