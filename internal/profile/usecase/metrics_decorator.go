package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/metrics"
	"github.com/socioclub/membership/internal/profile/domain"
)

// profileUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type profileUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewProfileUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewProfileUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &profileUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *profileUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFromError(err)

	p.metrics.RecordOperation(ctx, metrics.DomainProfile, operation, status)
	p.metrics.RecordDuration(ctx, metrics.DomainProfile, operation, time.Since(start), status)
}

// CreateProfile records metrics for profile creation operations.
func (p *profileUseCaseWithMetrics) CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.UserProfile, error) {
	start := time.Now()
	profile, err := p.next.CreateProfile(ctx, input)
	p.record(ctx, "profile_create", start, err)
	return profile, err
}

// UpdateProfile records metrics for profile update operations.
func (p *profileUseCaseWithMetrics) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.UserProfile, error) {
	start := time.Now()
	profile, err := p.next.UpdateProfile(ctx, id, input)
	p.record(ctx, "profile_update", start, err)
	return profile, err
}

// AttachPhoto records metrics for photo upload operations.
func (p *profileUseCaseWithMetrics) AttachPhoto(ctx context.Context, id uuid.UUID, input AttachPhotoInput) (*domain.UserProfile, error) {
	start := time.Now()
	profile, err := p.next.AttachPhoto(ctx, id, input)
	p.record(ctx, "profile_attach_photo", start, err)
	return profile, err
}

// GetProfile records metrics for profile retrieval operations.
func (p *profileUseCaseWithMetrics) GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	start := time.Now()
	profile, err := p.next.GetProfile(ctx, id)
	p.record(ctx, "profile_get", start, err)
	return profile, err
}

// GetProfileByUserID records metrics for profile retrieval by user.
func (p *profileUseCaseWithMetrics) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	start := time.Now()
	profile, err := p.next.GetProfileByUserID(ctx, userID)
	p.record(ctx, "profile_get_by_user", start, err)
	return profile, err
}
