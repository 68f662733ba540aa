// Package dto provides data transfer objects for the identity HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/socioclub/membership/internal/validation"
)

// DateLayout is the wire format for dates.
const DateLayout = "2006-01-02"

// RegisterUserRequest represents the API request for member registration.
// Registration carries the profile data: the account and its profile are
// created together.
type RegisterUserRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	SexID     int64   `json:"sex_id"`
	DNI       string  `json:"dni"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate string  `json:"birth_date"`
	Phone     *string `json:"phone"`
}

// Validate validates the RegisterUserRequest using the jellydator/validation library
func (r *RegisterUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			appValidation.PasswordStrength{
				MinLength:     8,
				MaxLength:     100,
				RequireUpper:  true,
				RequireNumber: true,
			},
		),
		validation.Field(&r.SexID,
			validation.Required.Error("sex_id is required"),
			validation.Min(int64(1)).Error("sex_id must be positive"),
		),
		validation.Field(&r.DNI,
			validation.Required.Error("dni is required"),
			appValidation.DNI,
		),
		validation.Field(&r.FirstName,
			validation.Required.Error("first_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("first_name must be between 1 and 100 characters"),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("last_name must be between 1 and 100 characters"),
		),
		validation.Field(&r.BirthDate,
			validation.Required.Error("birth_date is required"),
			validation.Date(DateLayout).Error("birth_date must be in YYYY-MM-DD format"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// LoginRequest represents the API request for authentication
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the LoginRequest using the jellydator/validation library
func (r *LoginRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}
