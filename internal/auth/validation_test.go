package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sujalbistaa/swipe/internal/apperr"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantCode string
	}{
		{"minimum length", "abc", ""},
		{"maximum length", strings.Repeat("a", 20), ""},
		{"mixed allowed characters", "Jane_Doe_99", ""},
		{"too short", "ab", apperr.CodeRegisterInvalidUsernameLength},
		{"empty", "", apperr.CodeRegisterInvalidUsernameLength},
		{"too long", strings.Repeat("a", 21), apperr.CodeRegisterInvalidUsernameLength},
		{"space", "jane doe", apperr.CodeRegisterInvalidUsernameFormat},
		{"hyphen", "jane-doe", apperr.CodeRegisterInvalidUsernameFormat},
		{"non ascii letter", "josé", apperr.CodeRegisterInvalidUsernameFormat},
		{"too short and bad format", "a!", apperr.CodeRegisterInvalidUsernameLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678", 8))
	assert.NoError(t, ValidatePassword("a much longer passphrase", 8))

	err := ValidatePassword("1234567", 8)
	assert.Equal(t, apperr.CodeRegisterInvalidPassword, apperr.CodeOf(err))

	err = ValidatePassword("12345678", 12)
	assert.Equal(t, apperr.CodeRegisterInvalidPassword, apperr.CodeOf(err))

	err = ValidatePassword("", 8)
	assert.Equal(t, apperr.CodeRegisterInvalidPassword, apperr.CodeOf(err))

	assert.NoError(t, ValidatePassword(strings.Repeat("p", PasswordMaxBytes), 8))
	err = ValidatePassword(strings.Repeat("p", PasswordMaxBytes+1), 8)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, apperr.CodeRegisterInvalidPassword, apperr.CodeOf(err))

	// 25 three-byte runes pass the rune minimum but exceed bcrypt's byte limit.
	err = ValidatePassword(strings.Repeat("€", 25), 8)
	assert.Equal(t, apperr.CodeRegisterInvalidPassword, apperr.CodeOf(err))
}
