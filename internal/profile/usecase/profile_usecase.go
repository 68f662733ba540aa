package usecase

import (
	"context"
	"errors"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/database"
	identityDomain "github.com/socioclub/membership/internal/identity/domain"
	"github.com/socioclub/membership/internal/profile/domain"
	appValidation "github.com/socioclub/membership/internal/validation"
)

// CreateProfileInput contains the input data for profile creation. Used when
// a profile is created for an existing account, outside registration.
type CreateProfileInput struct {
	UserID       uuid.UUID `json:"user_id"`
	SexID        int64     `json:"sex_id"`
	DNI          string    `json:"dni"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	BirthDate    time.Time `json:"birth_date"`
	ContactEmail string    `json:"contact_email"`
	Phone        *string   `json:"phone"`
}

// UpdateProfileInput contains the mutable profile fields.
type UpdateProfileInput struct {
	SexID        int64   `json:"sex_id"`
	DNI          string  `json:"dni"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	ContactEmail string  `json:"contact_email"`
	Phone        *string `json:"phone"`
	AddressID    *int64  `json:"address_id"`
	SocialLinkID *int64  `json:"social_link_id"`
}

// AttachPhotoInput carries an uploaded photo.
type AttachPhotoInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProfileUseCase handles profile business logic
type ProfileUseCase struct {
	txManager   database.TxManager
	profileRepo ProfileRepository
	photoRepo   PhotoRepository
	users       UserGetter
	media       MediaStorage
}

// NewProfileUseCase creates a new ProfileUseCase
func NewProfileUseCase(
	txManager database.TxManager,
	profileRepo ProfileRepository,
	photoRepo PhotoRepository,
	users UserGetter,
	media MediaStorage,
) UseCase {
	return &ProfileUseCase{
		txManager:   txManager,
		profileRepo: profileRepo,
		photoRepo:   photoRepo,
		users:       users,
		media:       media,
	}
}

func (uc *ProfileUseCase) validateCreateProfileInput(input CreateProfileInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.UserID, validation.Required.Error("user_id is required")),
		validation.Field(&input.SexID,
			validation.Required.Error("sex_id is required"),
			validation.Min(int64(1)).Error("sex_id must be positive"),
		),
		validation.Field(&input.DNI,
			validation.Required.Error("dni is required"),
			appValidation.DNI,
		),
		validation.Field(&input.FirstName,
			validation.Required.Error("first_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("first_name must be between 1 and 100 characters"),
		),
		validation.Field(&input.LastName,
			validation.Required.Error("last_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("last_name must be between 1 and 100 characters"),
		),
		validation.Field(&input.BirthDate,
			validation.Required.Error("birth_date is required"),
			appValidation.BirthDate{MinAge: 18, MaxAge: 120},
		),
		validation.Field(&input.ContactEmail,
			validation.Required.Error("contact_email is required"),
			appValidation.Email,
		),
	)
	return appValidation.WrapValidationError(err)
}

func (uc *ProfileUseCase) validateUpdateProfileInput(input UpdateProfileInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.SexID,
			validation.Required.Error("sex_id is required"),
			validation.Min(int64(1)).Error("sex_id must be positive"),
		),
		validation.Field(&input.DNI,
			validation.Required.Error("dni is required"),
			appValidation.DNI,
		),
		validation.Field(&input.FirstName,
			validation.Required.Error("first_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("first_name must be between 1 and 100 characters"),
		),
		validation.Field(&input.LastName,
			validation.Required.Error("last_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("last_name must be between 1 and 100 characters"),
		),
		validation.Field(&input.ContactEmail,
			validation.Required.Error("contact_email is required"),
			appValidation.Email,
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateProfile creates a profile for an existing user. The owning user must
// exist, must not already have a profile, and the DNI must be unused. The
// insert runs in a transaction so a racing duplicate still maps to the same
// errors via the store's constraints.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.UserProfile, error) {
	if err := uc.validateCreateProfileInput(input); err != nil {
		return nil, err
	}

	contactEmail, err := identityDomain.NewEmail(input.ContactEmail)
	if err != nil {
		return nil, err
	}

	if _, err := uc.users.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	exists, err := uc.profileRepo.ExistsByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrProfileAlreadyExists
	}

	exists, err = uc.profileRepo.ExistsByDNI(ctx, input.DNI)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDNIAlreadyExists
	}

	profile := domain.NewUserProfile(
		input.UserID, input.SexID, input.DNI,
		input.FirstName, input.LastName, input.BirthDate, contactEmail,
	)
	profile.ID = uuid.Must(uuid.NewV7())
	profile.SetPhone(input.Phone)

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.profileRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateProfile applies the mutable fields to an existing profile. When the
// DNI changes, uniqueness is re-checked before the write.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.UserProfile, error) {
	if err := uc.validateUpdateProfileInput(input); err != nil {
		return nil, err
	}

	contactEmail, err := identityDomain.NewEmail(input.ContactEmail)
	if err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DNI != profile.DNI {
		exists, err := uc.profileRepo.ExistsByDNI(ctx, input.DNI)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDNIAlreadyExists
		}
		profile.ChangeDNI(input.DNI)
	}

	profile.SexID = input.SexID
	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.ContactEmail = contactEmail
	profile.SetPhone(input.Phone)
	profile.SetAddressID(input.AddressID)
	profile.SetSocialLinkID(input.SocialLinkID)

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.profileRepo.Update(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// AttachPhoto stores the uploaded photo bytes, records the photo, and links
// it to the profile. Record and link happen in one transaction; a blob
// written for a failed transaction is unreferenced and harmless. When the
// profile already has a photo, the superseded record is removed in the same
// transaction and its blob deleted after commit.
func (uc *ProfileUseCase) AttachPhoto(ctx context.Context, id uuid.UUID, input AttachPhotoInput) (*domain.UserProfile, error) {
	err := validation.Errors{
		"filename":     validation.Validate(input.Filename, validation.Required.Error("filename is required")),
		"content_type": validation.Validate(input.ContentType, validation.Required.Error("content_type is required")),
		"data":         validation.Validate(input.Data, validation.Required.Error("photo data is required")),
	}.Filter()
	if err := appValidation.WrapValidationError(err); err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var previous *domain.ProfilePhoto
	if profile.PhotoID != nil {
		previous, err = uc.photoRepo.GetByID(ctx, *profile.PhotoID)
		if err != nil && !errors.Is(err, domain.ErrPhotoNotFound) {
			return nil, err
		}
	}

	objectKey, err := uc.media.Save(ctx, profile.UserID, input.Filename, input.ContentType, input.Data)
	if err != nil {
		return nil, err
	}

	photo := &domain.ProfilePhoto{
		ID:          uuid.Must(uuid.NewV7()),
		ObjectKey:   objectKey,
		ContentType: input.ContentType,
		SizeBytes:   int64(len(input.Data)),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.photoRepo.Create(ctx, photo); err != nil {
			return err
		}
		profile.AttachPhoto(photo.ID)
		if err := uc.profileRepo.Update(ctx, profile); err != nil {
			return err
		}
		if previous != nil {
			return uc.photoRepo.Delete(ctx, previous.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if previous != nil {
		// The record is already gone; a failed blob delete only leaves an
		// unreferenced object behind.
		_ = uc.media.Delete(ctx, previous.ObjectKey)
	}

	return profile, nil
}

// GetProfile retrieves a profile by ID
func (uc *ProfileUseCase) GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	return uc.profileRepo.GetByID(ctx, id)
}

// GetProfileByUserID retrieves the profile linked to a user
func (uc *ProfileUseCase) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}
