// Package domain defines the identity domain: value objects for email and
// password, the user and role entities, and their business errors.
package domain

import (
	"regexp"
	"strings"
)

// maxEmailLength bounds the normalized address.
const maxEmailLength = 255

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// Email is an immutable, always well-formed email address. The zero value is
// not a valid Email; construction through NewEmail is the only way to obtain
// one, so an instance never holds an invalid address. Equality is by the
// normalized (trimmed, lower-cased) value.
type Email struct {
	value string
}

// NewEmail normalizes and validates raw, returning ErrInvalidEmail when it is
// blank, longer than 255 characters, or does not match the address pattern.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, ErrInvalidEmail
	}
	if len(normalized) > maxEmailLength {
		return Email{}, ErrInvalidEmail
	}
	if !emailPattern.MatchString(normalized) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: normalized}, nil
}

// String returns the normalized address.
func (e Email) String() string {
	return e.value
}

// LocalPart returns the part before the first "@".
func (e Email) LocalPart() string {
	local, _, _ := strings.Cut(e.value, "@")
	return local
}

// Domain returns the part after the first "@".
func (e Email) Domain() string {
	_, domain, _ := strings.Cut(e.value, "@")
	return domain
}

// IsZero reports whether the Email was never constructed.
func (e Email) IsZero() bool {
	return e.value == ""
}
