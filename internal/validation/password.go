package validation

import (
	"errors"
	"strings"
)

const specialChars = `!@#$%^&*(),.?":{}|<>`

// passwordError marks password rule violations so callers can show the
// message to the user verbatim.
type passwordError string

func (e passwordError) Error() string { return string(e) }

// IsPasswordError reports whether err is a password rule violation.
func IsPasswordError(err error) bool {
	var pe passwordError
	return errors.As(err, &pe)
}

// ValidatePassword validates password strength: minimum 8 characters with
// at least one uppercase letter, one lowercase letter, one digit and one
// special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return passwordError("password must be at least 8 characters long")
	}

	// bcrypt silently truncates passwords longer than 72 bytes
	if len(password) > 72 {
		return passwordError("password must not exceed 72 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return passwordError("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return passwordError("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return passwordError("password must contain at least one number")
	}
	if !hasSpecial {
		return passwordError("password must contain at least one special character")
	}

	return nil
}
