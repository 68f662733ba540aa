// Package repository provides data persistence implementations for profile entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/database"
	identitydomain "github.com/socioclub/membership/internal/identity/domain"
	"github.com/socioclub/membership/internal/profile/domain"

	apperrors "github.com/socioclub/membership/internal/errors"
)

const profileColumns = `id, user_id, sex_id, dni, first_name, last_name, birth_date, contact_email,
	phone, address_id, social_link_id, photo_id, verified, created_at, updated_at`

// PostgreSQLProfileRepository handles profile persistence for PostgreSQL. All
// methods are transaction-scoped when the context carries a transaction.
type PostgreSQLProfileRepository struct {
	db *sql.DB
}

// NewPostgreSQLProfileRepository creates a new PostgreSQLProfileRepository
func NewPostgreSQLProfileRepository(db *sql.DB) *PostgreSQLProfileRepository {
	return &PostgreSQLProfileRepository{
		db: db,
	}
}

// Create inserts a new profile. Concurrent creations racing past the
// uniqueness pre-checks surface here via the constraints on user_id and dni.
func (r *PostgreSQLProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO profiles (` + profileColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		profile.ID, profile.UserID, profile.SexID, profile.DNI,
		profile.FirstName, profile.LastName, profile.BirthDate, profile.ContactEmail.String(),
		profile.Phone, profile.AddressID, profile.SocialLinkID, profile.PhotoID, profile.Verified,
	)
	if err != nil {
		switch {
		case isProfileUniqueViolation(err, "profiles_user_id_key"):
			return domain.ErrProfileAlreadyExists
		case isProfileUniqueViolation(err, "profiles_dni_key"):
			return domain.ErrDNIAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create profile")
	}
	return nil
}

// Update persists the mutable profile state.
func (r *PostgreSQLProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE profiles
			  SET sex_id = $2, dni = $3, first_name = $4, last_name = $5, birth_date = $6, contact_email = $7,
			      phone = $8, address_id = $9, social_link_id = $10, photo_id = $11, verified = $12, updated_at = NOW()
			  WHERE id = $1`

	result, err := querier.ExecContext(ctx, query,
		profile.ID, profile.SexID, profile.DNI, profile.FirstName, profile.LastName,
		profile.BirthDate, profile.ContactEmail.String(), profile.Phone,
		profile.AddressID, profile.SocialLinkID, profile.PhotoID, profile.Verified,
	)
	if err != nil {
		if isProfileUniqueViolation(err, "profiles_dni_key") {
			return domain.ErrDNIAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update profile")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update profile")
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// GetByID retrieves a profile by ID
func (r *PostgreSQLProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	return scanProfile(querier.QueryRowContext(ctx, query, id))
}

// GetByUserID retrieves the profile linked to a user
func (r *PostgreSQLProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	return scanProfile(querier.QueryRowContext(ctx, query, userID))
}

// GetByDNI retrieves a profile by document number
func (r *PostgreSQLProfileRepository) GetByDNI(ctx context.Context, dni string) (*domain.UserProfile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE dni = $1`

	return scanProfile(querier.QueryRowContext(ctx, query, dni))
}

// ExistsByUserID reports whether the user already has a profile
func (r *PostgreSQLProfileRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check profile existence")
	}
	return exists, nil
}

// ExistsByDNI reports whether the document number is already registered
func (r *PostgreSQLProfileRepository) ExistsByDNI(ctx context.Context, dni string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE dni = $1)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, dni).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check dni existence")
	}
	return exists, nil
}

// rowScanner abstracts *sql.Row for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.UserProfile, error) {
	var (
		profile      domain.UserProfile
		contactEmail string
		phone        sql.NullString
		addressID    sql.NullInt64
		socialLinkID sql.NullInt64
		photoID      uuid.NullUUID
	)

	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.SexID, &profile.DNI,
		&profile.FirstName, &profile.LastName, &profile.BirthDate, &contactEmail,
		&phone, &addressID, &socialLinkID, &photoID, &profile.Verified,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get profile")
	}

	profile.ContactEmail, err = identitydomain.NewEmail(contactEmail)
	if err != nil {
		return nil, apperrors.Wrap(err, "stored contact email is corrupt")
	}
	if phone.Valid {
		profile.Phone = &phone.String
	}
	if addressID.Valid {
		profile.AddressID = &addressID.Int64
	}
	if socialLinkID.Valid {
		profile.SocialLinkID = &socialLinkID.Int64
	}
	if photoID.Valid {
		profile.PhotoID = &photoID.UUID
	}

	return &profile, nil
}

// isProfileUniqueViolation checks if the error is a unique constraint
// violation on the given constraint.
func isProfileUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	if !strings.Contains(errMsg, "duplicate key") && !strings.Contains(errMsg, "unique constraint") {
		return false
	}
	return strings.Contains(errMsg, constraint)
}
