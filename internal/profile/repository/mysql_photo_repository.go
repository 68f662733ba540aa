package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/database"
	"github.com/socioclub/membership/internal/profile/domain"

	apperrors "github.com/socioclub/membership/internal/errors"
)

// MySQLPhotoRepository handles profile photo persistence for MySQL.
type MySQLPhotoRepository struct {
	db *sql.DB
}

// NewMySQLPhotoRepository creates a new MySQLPhotoRepository
func NewMySQLPhotoRepository(db *sql.DB) *MySQLPhotoRepository {
	return &MySQLPhotoRepository{
		db: db,
	}
}

// Create inserts a photo record referencing a stored blob.
func (r *MySQLPhotoRepository) Create(ctx context.Context, photo *domain.ProfilePhoto) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO profile_photos (id, object_key, content_type, size_bytes, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query, photo.ID.String(), photo.ObjectKey, photo.ContentType, photo.SizeBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to create profile photo")
	}
	return nil
}

// Delete removes a photo record. Used when a replacement photo supersedes it.
func (r *MySQLPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM profile_photos WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, id.String()); err != nil {
		return apperrors.Wrap(err, "failed to delete profile photo")
	}
	return nil
}

// GetByID retrieves a photo record by ID
func (r *MySQLPhotoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProfilePhoto, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, object_key, content_type, size_bytes, created_at
			  FROM profile_photos WHERE id = ?`

	var photo domain.ProfilePhoto
	err := querier.QueryRowContext(ctx, query, id.String()).Scan(
		&photo.ID, &photo.ObjectKey, &photo.ContentType, &photo.SizeBytes, &photo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get profile photo")
	}

	return &photo, nil
}
