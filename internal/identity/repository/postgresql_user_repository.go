// Package repository provides data persistence implementations for identity entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/database"
	"github.com/socioclub/membership/internal/identity/domain"

	apperrors "github.com/socioclub/membership/internal/errors"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL. All
// methods are transaction-scoped when the context carries a transaction.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user. A concurrent registration racing past the
// uniqueness pre-check surfaces here as ErrUserAlreadyExists via the unique
// constraint on email.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, email, password_hash, role_id, email_verified, last_login_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		user.ID, user.Email.String(), user.Password.Hash(), user.RoleID, user.EmailVerified, user.LastLoginAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err, "users_email_key") {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Update persists the mutable user state (verified flag, last login, password).
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET email = $2, password_hash = $3, role_id = $4, email_verified = $5, last_login_at = $6, updated_at = NOW()
			  WHERE id = $1`

	result, err := querier.ExecContext(ctx, query,
		user.ID, user.Email.String(), user.Password.Hash(), user.RoleID, user.EmailVerified, user.LastLoginAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, role_id, email_verified, last_login_at, created_at, updated_at
			  FROM users WHERE id = $1`

	return scanUser(querier.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by normalized email
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, role_id, email_verified, last_login_at, created_at, updated_at
			  FROM users WHERE email = $1`

	return scanUser(querier.QueryRowContext(ctx, query, email.String()))
}

// ExistsByEmail reports whether a user with the given email is registered
func (r *PostgreSQLUserRepository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, email.String()).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check user existence")
	}
	return exists, nil
}

// List retrieves a page of users ordered by creation time
func (r *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, role_id, email_verified, last_login_at, created_at, updated_at
			  FROM users ORDER BY created_at LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	return users, nil
}

// rowScanner abstracts *sql.Row for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser rehydrates a user row, rebuilding the email and password value
// objects from their stored representations.
func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user         domain.User
		email        string
		passwordHash string
		lastLoginAt  sql.NullTime
	)

	err := row.Scan(
		&user.ID, &email, &passwordHash, &user.RoleID,
		&user.EmailVerified, &lastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	user.Email, err = domain.NewEmail(email)
	if err != nil {
		return nil, apperrors.Wrap(err, "stored email is corrupt")
	}
	user.Password, err = domain.PasswordFromHash(passwordHash)
	if err != nil {
		return nil, apperrors.Wrap(err, "stored password hash is corrupt")
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		user.LastLoginAt = &t
	}

	return &user, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation on the given constraint.
func isPostgreSQLUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	if !strings.Contains(errMsg, "duplicate key") && !strings.Contains(errMsg, "unique constraint") {
		return false
	}
	return strings.Contains(errMsg, constraint)
}
