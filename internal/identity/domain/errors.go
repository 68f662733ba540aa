package domain

import (
	"github.com/socioclub/membership/internal/errors"
)

// Identity business errors. Each carries the stable code consumed by callers.
var (
	// ErrUserNotFound indicates no user matched the given id or email. Login
	// failures surface this same error on wrong password so responses do not
	// reveal which part failed.
	ErrUserNotFound = errors.NewCoded(errors.ErrNotFound, errors.CodeEntityNotFound, "user not found")

	// ErrRoleNotFound indicates the requested role does not exist.
	ErrRoleNotFound = errors.NewCoded(errors.ErrNotFound, errors.CodeEntityNotFound, "role not found")

	// ErrUserAlreadyExists indicates the email is already registered.
	ErrUserAlreadyExists = errors.NewCoded(errors.ErrConflict, errors.CodeDuplicateUser, "email already registered")

	// ErrInvalidEmail indicates the email fails format or length validation.
	ErrInvalidEmail = errors.NewCoded(errors.ErrInvalidInput, errors.CodeInvalidEmail, "invalid email address")

	// ErrWeakPassword indicates the password fails the strength rules.
	ErrWeakPassword = errors.NewCoded(
		errors.ErrInvalidInput,
		errors.CodeWeakPassword,
		"password must be 8-100 characters with at least one uppercase letter and one digit",
	)
)
