// Package validation contains input validation rules shared by services and handlers.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

const (
	MinPasswordLength = 6
	MaxNameLength     = 50
	MaxBioLength      = 500
	MaxCommentLength  = 500
	MaxContentLength  = 1000
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique index agree on a canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that the email has a plausible address format.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("Email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("Please provide a valid email")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("Password is required")
	}
	if len(password) < MinPasswordLength {
		return errors.New("Password must be at least 6 characters")
	}
	return nil
}

// ValidateName checks the display name length bounds.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("Name is required")
	}
	if len(name) > MaxNameLength {
		return errors.New("Name cannot exceed 50 characters")
	}
	return nil
}

// ValidateBio checks the profile bio length bound.
func ValidateBio(bio string) error {
	if len(bio) > MaxBioLength {
		return errors.New("Bio cannot exceed 500 characters")
	}
	return nil
}

// ValidateComment checks that a comment is non-empty after trimming and
// within the length bound.
func ValidateComment(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("Comment text is required")
	}
	if len(text) > MaxCommentLength {
		return errors.New("Comment cannot exceed 500 characters")
	}
	return nil
}

// ValidateContent checks the post caption length bound. Captions are optional.
func ValidateContent(content string) error {
	if len(content) > MaxContentLength {
		return errors.New("Content cannot exceed 1000 characters")
	}
	return nil
}
