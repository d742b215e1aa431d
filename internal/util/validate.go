package util

import (
	"errors"
	"unicode"
)

// ValidatePassword runs the client-side strength check before a signup
// request ever leaves the app.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return errors.New("password must include both letters and numbers")
	}
	return nil
}
