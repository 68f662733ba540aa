// Package dto provides data transfer objects for the profile HTTP layer.
package dto

import (
	"time"

	"github.com/socioclub/membership/internal/profile/domain"
	"github.com/socioclub/membership/internal/profile/usecase"
)

// ToCreateProfileInput converts a CreateProfileRequest DTO to a use case input.
// The birth date has already been validated against DateLayout.
func ToCreateProfileInput(req CreateProfileRequest) (usecase.CreateProfileInput, error) {
	birthDate, err := time.Parse(DateLayout, req.BirthDate)
	if err != nil {
		return usecase.CreateProfileInput{}, err
	}

	return usecase.CreateProfileInput{
		UserID:       req.UserID,
		SexID:        req.SexID,
		DNI:          req.DNI,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    birthDate,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
	}, nil
}

// ToUpdateProfileInput converts an UpdateProfileRequest DTO to a use case input
func ToUpdateProfileInput(req UpdateProfileRequest) usecase.UpdateProfileInput {
	return usecase.UpdateProfileInput{
		SexID:        req.SexID,
		DNI:          req.DNI,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		AddressID:    req.AddressID,
		SocialLinkID: req.SocialLinkID,
	}
}

// ToProfileResponse converts a domain UserProfile model to a ProfileResponse DTO.
// This enforces the boundary between internal domain models and external API contracts.
func ToProfileResponse(profile *domain.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:           profile.ID,
		UserID:       profile.UserID,
		SexID:        profile.SexID,
		DNI:          profile.DNI,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		FullName:     profile.FullName(),
		BirthDate:    profile.BirthDate.Format(DateLayout),
		ContactEmail: profile.ContactEmail.String(),
		Phone:        profile.Phone,
		AddressID:    profile.AddressID,
		SocialLinkID: profile.SocialLinkID,
		PhotoID:      profile.PhotoID,
		Verified:     profile.Verified,
		Complete:     profile.IsComplete(),
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
}
