package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/database"
	"github.com/socioclub/membership/internal/profile/domain"

	apperrors "github.com/socioclub/membership/internal/errors"
)

// MySQLProfileRepository handles profile persistence for MySQL
type MySQLProfileRepository struct {
	db *sql.DB
}

// NewMySQLProfileRepository creates a new MySQLProfileRepository
func NewMySQLProfileRepository(db *sql.DB) *MySQLProfileRepository {
	return &MySQLProfileRepository{
		db: db,
	}
}

// Create inserts a new profile
func (r *MySQLProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO profiles (` + profileColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	var photoID any
	if profile.PhotoID != nil {
		photoID = profile.PhotoID.String()
	}

	_, err := querier.ExecContext(ctx, query,
		profile.ID.String(), profile.UserID.String(), profile.SexID, profile.DNI,
		profile.FirstName, profile.LastName, profile.BirthDate, profile.ContactEmail.String(),
		profile.Phone, profile.AddressID, profile.SocialLinkID, photoID, profile.Verified,
	)
	if err != nil {
		switch {
		case isMySQLProfileDuplicate(err, "uniq_profiles_user_id"):
			return domain.ErrProfileAlreadyExists
		case isMySQLProfileDuplicate(err, "uniq_profiles_dni"):
			return domain.ErrDNIAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create profile")
	}
	return nil
}

// Update persists the mutable profile state
func (r *MySQLProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE profiles
			  SET sex_id = ?, dni = ?, first_name = ?, last_name = ?, birth_date = ?, contact_email = ?,
			      phone = ?, address_id = ?, social_link_id = ?, photo_id = ?, verified = ?, updated_at = NOW()
			  WHERE id = ?`

	var photoID any
	if profile.PhotoID != nil {
		photoID = profile.PhotoID.String()
	}

	result, err := querier.ExecContext(ctx, query,
		profile.SexID, profile.DNI, profile.FirstName, profile.LastName,
		profile.BirthDate, profile.ContactEmail.String(), profile.Phone,
		profile.AddressID, profile.SocialLinkID, photoID, profile.Verified, profile.ID.String(),
	)
	if err != nil {
		if isMySQLProfileDuplicate(err, "uniq_profiles_dni") {
			return domain.ErrDNIAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update profile")
	}

	// RowsAffected reports matched rows here because Connect opens MySQL
	// connections with clientFoundRows; resubmitting unchanged fields is not
	// a miss.
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
func (r *MySQLProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`

	return scanProfile(querier.QueryRowContext(ctx, query, id.String()))
}

// GetByUserID retrieves the profile linked to a user
func (r *MySQLProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ?`

	return scanProfile(querier.QueryRowContext(ctx, query, userID.String()))
}

// GetByDNI retrieves a profile by document number
func (r *MySQLProfileRepository) GetByDNI(ctx context.Context, dni string) (*domain.UserProfile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE dni = ?`

	return scanProfile(querier.QueryRowContext(ctx, query, dni))
}

// ExistsByUserID reports whether the user already has a profile
func (r *MySQLProfileRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, userID.String()).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check profile existence")
	}
	return exists, nil
}

// ExistsByDNI reports whether the document number is already registered
func (r *MySQLProfileRepository) ExistsByDNI(ctx context.Context, dni string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE dni = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, dni).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check dni existence")
	}
	return exists, nil
}

// isMySQLProfileDuplicate checks if the error is a MySQL duplicate entry
// error on the given unique key.
func isMySQLProfileDuplicate(err error, key string) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") && strings.Contains(errMsg, key)
}
