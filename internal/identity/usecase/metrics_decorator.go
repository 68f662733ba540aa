package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/identity/domain"
	"github.com/socioclub/membership/internal/metrics"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFromError(err)

	u.metrics.RecordOperation(ctx, metrics.DomainIdentity, operation, status)
	u.metrics.RecordDuration(ctx, metrics.DomainIdentity, operation, time.Since(start), status)
}

// RegisterUser records metrics for registration operations.
func (u *userUseCaseWithMetrics) RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	start := time.Now()
	output, err := u.next.RegisterUser(ctx, input)
	u.record(ctx, "user_register", start, err)
	return output, err
}

// Login records metrics for authentication operations.
func (u *userUseCaseWithMetrics) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Login(ctx, input)
	u.record(ctx, "user_login", start, err)
	return user, err
}

// VerifyEmail records metrics for email verification operations.
func (u *userUseCaseWithMetrics) VerifyEmail(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.VerifyEmail(ctx, userID)
	u.record(ctx, "user_verify_email", start, err)
	return user, err
}

// GetUser records metrics for user retrieval operations.
func (u *userUseCaseWithMetrics) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetUser(ctx, id)
	u.record(ctx, "user_get", start, err)
	return user, err
}

// GetUserByEmail records metrics for user retrieval by email.
func (u *userUseCaseWithMetrics) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetUserByEmail(ctx, email)
	u.record(ctx, "user_get_by_email", start, err)
	return user, err
}

// ListUsers records metrics for user listing operations.
func (u *userUseCaseWithMetrics) ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.ListUsers(ctx, offset, limit)
	u.record(ctx, "user_list", start, err)
	return users, err
}
