package validation

import (
	"fmt"
	"unicode"
)

// Password policy bounds.
const (
	MinPasswordLen = 8
	MaxPasswordLen = 16
)

// ValidatePassword checks the registration password policy:
// 8 to 16 characters with at least one digit and at least one
// non-alphanumeric character.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		return fmt.Errorf("password must be %d to %d characters long", MinPasswordLen, MaxPasswordLen)
	}

	var hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSymbol = true
		}
	}

	if !hasDigit {
		return fmt.Errorf("password must contain at least one numerical character")
	}
	if !hasSymbol {
		return fmt.Errorf("password must contain at least one non alpha-numerical character")
	}

	return nil
}
