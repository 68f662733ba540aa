// Package dto provides data transfer objects for the profile HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	appValidation "github.com/socioclub/membership/internal/validation"
)

// DateLayout is the wire format for dates.
const DateLayout = "2006-01-02"

// CreateProfileRequest represents the API request for profile creation.
type CreateProfileRequest struct {
	UserID       uuid.UUID `json:"user_id"`
	SexID        int64     `json:"sex_id"`
	DNI          string    `json:"dni"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	BirthDate    string    `json:"birth_date"`
	ContactEmail string    `json:"contact_email"`
	Phone        *string   `json:"phone"`
}

// Validate validates the CreateProfileRequest using the jellydator/validation library
func (r *CreateProfileRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required.Error("user_id is required"),
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
		validation.Field(&r.ContactEmail,
			validation.Required.Error("contact_email is required"),
			appValidation.Email,
		),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateProfileRequest represents the API request for a profile update.
type UpdateProfileRequest struct {
	SexID        int64   `json:"sex_id"`
	DNI          string  `json:"dni"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	ContactEmail string  `json:"contact_email"`
	Phone        *string `json:"phone"`
	AddressID    *int64  `json:"address_id"`
	SocialLinkID *int64  `json:"social_link_id"`
}

// Validate validates the UpdateProfileRequest using the jellydator/validation library
func (r *UpdateProfileRequest) Validate() error {
	err := validation.ValidateStruct(r,
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
		validation.Field(&r.ContactEmail,
			validation.Required.Error("contact_email is required"),
			appValidation.Email,
		),
	)
	return appValidation.WrapValidationError(err)
}
