package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/tpdocs/tpdocs/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEMailExists  = errors.New("eMail already exists")
)

const userColumns = `id, e_mail, password_hash, first_name, last_name, roles, created_at`

// CreateUser inserts a new user into the database.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, e_mail, password_hash, first_name, last_name, roles, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.EMail,
		user.Password,
		user.FirstName,
		user.LastName,
		pq.Array(user.Roles),
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEMailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetUserByEMail retrieves a user by their e-mail address.
func (r *Repository) GetUserByEMail(ctx context.Context, eMail string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE e_mail = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, eMail))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by eMail: %w", err)
	}

	return user, nil
}

// ListUsers retrieves users sorted by descending creation time.
func (r *Repository) ListUsers(ctx context.Context, skip, limit int) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// UpdateUser replaces all mutable fields of a user record.
func (r *Repository) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET e_mail = $2, password_hash = $3, first_name = $4, last_name = $5, roles = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.EMail,
		user.Password,
		user.FirstName,
		user.LastName,
		pq.Array(user.Roles),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEMailExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteUser removes a user and returns its last known state.
func (r *Repository) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return user, nil
}

// scanUser scans a user from a row.
func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.EMail,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		pq.Array(&user.Roles),
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if user.Roles == nil {
		user.Roles = []string{}
	}
	return &user, nil
}
