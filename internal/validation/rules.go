// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/socioclub/membership/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// dniRegex matches a national identity document number: 7 or 8 digits
	dniRegex = regexp.MustCompile(`^[0-9]{7,8}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength validates password meets minimum security requirements
type PasswordStrength struct {
	MinLength     int
	MaxLength     int
	RequireUpper  bool
	RequireNumber bool
}

// Validate checks if the password meets the configured requirements
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength),
		)
	}

	if p.MaxLength > 0 && len(s) > p.MaxLength {
		return validation.NewError(
			"validation_password_max_length",
			fmt.Sprintf("password must be at most %d characters", p.MaxLength),
		)
	}

	if p.RequireUpper && !hasUpperCase(s) {
		return validation.NewError(
			"validation_password_uppercase",
			"password must contain at least one uppercase letter",
		)
	}

	if p.RequireNumber && !hasNumber(s) {
		return validation.NewError("validation_password_number", "password must contain at least one number")
	}

	return nil
}

// BirthDate validates that a birth date is not in the future and that the
// subject's age is within [MinAge, MaxAge] years.
type BirthDate struct {
	MinAge int
	MaxAge int
}

// Validate checks if the birth date meets the configured age bounds
func (b BirthDate) Validate(value interface{}) error {
	d, ok := value.(time.Time)
	if !ok {
		return validation.NewError("validation_birth_date", "birth date must be a date")
	}
	if d.IsZero() {
		// Required is a separate rule
		return nil
	}

	now := time.Now()
	if d.After(now) {
		return validation.NewError("validation_birth_date_future", "birth date must not be in the future")
	}

	age := yearsBetween(d, now)
	if age < b.MinAge {
		return validation.NewError(
			"validation_birth_date_min_age",
			fmt.Sprintf("must be at least %d years old", b.MinAge),
		)
	}
	if b.MaxAge > 0 && age > b.MaxAge {
		return validation.NewError(
			"validation_birth_date_max_age",
			fmt.Sprintf("must be at most %d years old", b.MaxAge),
		)
	}

	return nil
}

// yearsBetween computes full years elapsed from birth to now.
func yearsBetween(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// hasUpperCase checks if string contains uppercase letters
func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// hasNumber checks if string contains numbers
func hasNumber(s string) bool {
	for _, r := range s {
		if unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// DNI validates a national identity document number (7 or 8 digits)
var DNI = validation.NewStringRuleWithError(
	func(s string) bool {
		return dniRegex.MatchString(s)
	},
	validation.NewError("validation_dni_format", "must be a 7 or 8 digit document number"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
