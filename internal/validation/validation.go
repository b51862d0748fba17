// Package validation holds the input checks shared by the API handlers.
// Each function returns a *FieldError naming the offending field so
// handlers can surface it directly.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldError is a validation failure attributable to a single input field
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldErr(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the shape of an email address
func ValidateEmail(email string) error {
	if email == "" {
		return fieldErr("email", "email is required")
	}
	if !emailRegex.MatchString(email) {
		return fieldErr("email", "invalid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fieldErr("password", "password must be at least 8 characters")
	}
	return nil
}

var pinRegex = regexp.MustCompile(`^[0-9]{4,6}$`)

// ValidatePin checks that a PIN is 4 to 6 digits
func ValidatePin(pin string) error {
	if !pinRegex.MatchString(pin) {
		return fieldErr("pin", "pin must be 4 to 6 digits")
	}
	return nil
}

// ValidateName checks a display name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fieldErr("name", "name is required")
	}
	if len(trimmed) < 2 {
		return fieldErr("name", "name must be at least 2 characters")
	}
	if len(trimmed) > 100 {
		return fieldErr("name", "name must be at most 100 characters")
	}
	return nil
}

// ValidateDate checks a calendar date in YYYY-MM-DD form
func ValidateDate(field, value string) error {
	if value == "" {
		return fieldErr(field, "date is required")
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fieldErr(field, "date must be in YYYY-MM-DD format")
	}
	return nil
}

// ValidateTimeOfDay checks a clock time in HH:MM form
func ValidateTimeOfDay(field, value string) error {
	if value == "" {
		return fieldErr(field, "time is required")
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return fieldErr(field, "time must be in HH:MM format")
	}
	return nil
}

// TimeBefore reports whether a is strictly before b; both must already be
// valid HH:MM values.
func TimeBefore(a, b string) bool {
	return a < b
}
