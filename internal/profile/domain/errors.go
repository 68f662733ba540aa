package domain

import (
	"github.com/socioclub/membership/internal/errors"
)

// Profile business errors.
var (
	// ErrProfileNotFound indicates no profile matched the given id or user id.
	ErrProfileNotFound = errors.NewCoded(errors.ErrNotFound, errors.CodeEntityNotFound, "profile not found")

	// ErrPhotoNotFound indicates the referenced profile photo does not exist.
	ErrPhotoNotFound = errors.NewCoded(errors.ErrNotFound, errors.CodeEntityNotFound, "profile photo not found")

	// ErrProfileAlreadyExists indicates the user already has a profile.
	ErrProfileAlreadyExists = errors.NewCoded(
		errors.ErrConflict,
		errors.CodeDuplicateProfile,
		"user already has a profile",
	)

	// ErrDNIAlreadyExists indicates the DNI is registered to another profile.
	ErrDNIAlreadyExists = errors.NewCoded(
		errors.ErrConflict,
		errors.CodeDuplicateDNI,
		"dni already registered to another profile",
	)
)
