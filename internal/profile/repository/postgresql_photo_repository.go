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

// PostgreSQLPhotoRepository handles profile photo persistence for PostgreSQL.
type PostgreSQLPhotoRepository struct {
	db *sql.DB
}

// NewPostgreSQLPhotoRepository creates a new PostgreSQLPhotoRepository
func NewPostgreSQLPhotoRepository(db *sql.DB) *PostgreSQLPhotoRepository {
	return &PostgreSQLPhotoRepository{
		db: db,
	}
}

// Create inserts a photo record referencing a stored blob.
func (r *PostgreSQLPhotoRepository) Create(ctx context.Context, photo *domain.ProfilePhoto) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO profile_photos (id, object_key, content_type, size_bytes, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(ctx, query, photo.ID, photo.ObjectKey, photo.ContentType, photo.SizeBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to create profile photo")
	}
	return nil
}

// Delete removes a photo record. Used when a replacement photo supersedes it.
func (r *PostgreSQLPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM profile_photos WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete profile photo")
	}
	return nil
}

// GetByID retrieves a photo record by ID
func (r *PostgreSQLPhotoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProfilePhoto, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, object_key, content_type, size_bytes, created_at
			  FROM profile_photos WHERE id = $1`

	var photo domain.ProfilePhoto
	err := querier.QueryRowContext(ctx, query, id).Scan(
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
