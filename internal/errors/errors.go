// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user doesn't have permission.
	ErrForbidden = errors.New("forbidden")
)

// Stable machine-readable codes for business invariant violations. Calling layers
// branch on these codes rather than on concrete error values.
const (
	CodeDuplicateUser    = "USUARIO_DUPLICADO"
	CodeDuplicateProfile = "PERFIL_DUPLICADO"
	CodeDuplicateDNI     = "DNI_DUPLICADO"
	CodeInvalidEmail     = "EMAIL_INVALIDO"
	CodeWeakPassword     = "PASSWORD_DEBIL"
	CodeEntityNotFound   = "ENTIDAD_NO_ENCONTRADA"
)

// CodedError is a business error carrying a stable machine-readable code plus a
// human message. It unwraps to one of the sentinel root errors above so callers
// can branch on either the code or the error class.
type CodedError struct {
	code    string
	message string
	root    error
}

// NewCoded creates a CodedError with the given root sentinel, code and message.
func NewCoded(root error, code, message string) *CodedError {
	return &CodedError{code: code, message: message, root: root}
}

// Error returns the human-readable message.
func (e *CodedError) Error() string {
	return e.message
}

// Code returns the stable machine-readable code.
func (e *CodedError) Code() string {
	return e.code
}

// Unwrap returns the sentinel root so errors.Is works against the error class.
func (e *CodedError) Unwrap() error {
	return e.root
}

// CodeOf extracts the business code from an error chain. Returns an empty
// string when no CodedError is present.
func CodeOf(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return ""
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
