// Package validation contains input validation helpers shared by services and handlers.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateUsername checks that a username is well formed.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < MinUsernameLength {
		return errors.New("username must be at least 3 characters long")
	}
	if len(username) > MaxUsernameLength {
		return errors.New("username must be at most 30 characters long")
	}
	if !usernamePattern.MatchString(username) {
		return errors.New("username may only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}

// ValidateEmail checks that an email address is plausibly valid.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword enforces the password policy: minimum length plus at
// least one upper-case and one lower-case letter.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters long")
	}
	if len(password) > MaxPasswordLength {
		return errors.New("password must be at most 72 characters long")
	}

	var hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if !hasUpper || !hasLower {
		return errors.New("password must contain both upper-case and lower-case letters")
	}
	return nil
}
