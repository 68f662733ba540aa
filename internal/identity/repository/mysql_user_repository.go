package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/database"
	"github.com/socioclub/membership/internal/identity/domain"

	apperrors "github.com/socioclub/membership/internal/errors"
)

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, email, password_hash, role_id, email_verified, last_login_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		user.ID.String(), user.Email.String(), user.Password.Hash(), user.RoleID.String(),
		user.EmailVerified, user.LastLoginAt,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err, "uniq_users_email") {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Update persists the mutable user state
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET email = ?, password_hash = ?, role_id = ?, email_verified = ?, last_login_at = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query,
		user.Email.String(), user.Password.Hash(), user.RoleID.String(),
		user.EmailVerified, user.LastLoginAt, user.ID.String(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	// RowsAffected reports matched rows here because Connect opens MySQL
	// connections with clientFoundRows; a same-values update is not a miss.
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
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, role_id, email_verified, last_login_at, created_at, updated_at
			  FROM users WHERE id = ?`

	return scanUser(querier.QueryRowContext(ctx, query, id.String()))
}

// GetByEmail retrieves a user by normalized email
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, role_id, email_verified, last_login_at, created_at, updated_at
			  FROM users WHERE email = ?`

	return scanUser(querier.QueryRowContext(ctx, query, email.String()))
}

// ExistsByEmail reports whether a user with the given email is registered
func (r *MySQLUserRepository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, email.String()).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check user existence")
	}
	return exists, nil
}

// List retrieves a page of users ordered by creation time
func (r *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, role_id, email_verified, last_login_at, created_at, updated_at
			  FROM users ORDER BY created_at LIMIT ? OFFSET ?`

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

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate entry error
// on the given unique key.
func isMySQLDuplicateEntry(err error, key string) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") && strings.Contains(errMsg, key)
}
