// Package dto provides data transfer objects for the identity HTTP layer.
package dto

import (
	"time"

	"github.com/socioclub/membership/internal/identity/domain"
	"github.com/socioclub/membership/internal/identity/usecase"
	profileDomain "github.com/socioclub/membership/internal/profile/domain"
)

// ToRegisterUserInput converts a RegisterUserRequest DTO to a use case input.
// The birth date has already been validated against DateLayout.
func ToRegisterUserInput(req RegisterUserRequest) (usecase.RegisterUserInput, error) {
	birthDate, err := time.Parse(DateLayout, req.BirthDate)
	if err != nil {
		return usecase.RegisterUserInput{}, err
	}

	return usecase.RegisterUserInput{
		Email:     req.Email,
		Password:  req.Password,
		SexID:     req.SexID,
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
		Phone:     req.Phone,
	}, nil
}

// ToLoginInput converts a LoginRequest DTO to a use case input
func ToLoginInput(req LoginRequest) usecase.LoginInput {
	return usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}
}

// ToUserResponse converts a domain User model to a UserResponse DTO.
// This enforces the boundary between internal domain models and external API contracts.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email.String(),
		RoleID:        user.RoleID,
		EmailVerified: user.EmailVerified,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// ToRegisterUserResponse converts a registration output to its API response.
func ToRegisterUserResponse(user *domain.User, profile *profileDomain.UserProfile) RegisterUserResponse {
	return RegisterUserResponse{
		User: ToUserResponse(user),
		Profile: ProfileSummaryResponse{
			ID:        profile.ID,
			DNI:       profile.DNI,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			BirthDate: profile.BirthDate.Format(DateLayout),
		},
	}
}

// ToListUsersResponse converts a page of users to its API response.
func ToListUsersResponse(users []*domain.User, offset, limit int) ListUsersResponse {
	items := make([]UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, ToUserResponse(user))
	}
	return ListUsersResponse{Users: items, Offset: offset, Limit: limit}
}
