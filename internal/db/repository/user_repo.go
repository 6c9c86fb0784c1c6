package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"usersvc/internal/db"
	dom "usersvc/internal/domain/user"
	"usersvc/internal/logging"
)

const (
	insertUserQuery = `INSERT INTO users (name, email)
VALUES ($1, $2)
RETURNING id, name, email, created_at, updated_at`

	getUserQuery = `SELECT id, name, email, created_at, updated_at
FROM users
WHERE id = $1`

	listUsersQuery = `SELECT id, name, email, created_at, updated_at
FROM users
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	countUsersQuery = `SELECT COUNT(*) FROM users`

	// COALESCE keeps the current column value when the bound parameter is
	// NULL, which is how absent fields of a partial update are expressed.
	updateUserQuery = `UPDATE users SET
    name = COALESCE($1, name),
    email = COALESCE($2, email),
    updated_at = now()
WHERE id = $3
RETURNING id, name, email, created_at, updated_at`

	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

// UserRepository is the only component that issues queries against the users
// table.
type UserRepository struct {
	db     db.DBTX
	logger logging.Logger
}

func NewUserRepository(dbtx db.DBTX, logger logging.Logger) dom.Repository {
	return &UserRepository{
		db:     dbtx,
		logger: logger.With("component", "user_repo"),
	}
}

func (r *UserRepository) GetById(ctx context.Context, id int64) (*dom.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getUserQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dom.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, filter dom.ListFilter) ([]dom.User, int64, error) {
	rows, err := r.db.QueryContext(ctx, listUsersQuery, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := make([]dom.User, 0, filter.Limit)
	for rows.Next() {
		var u dom.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	// The count runs outside the window query's snapshot; total and page may
	// skew slightly under concurrent writes.
	var total int64
	if err := r.db.QueryRowContext(ctx, countUsersQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) error {
	created, err := scanUser(r.db.QueryRowContext(ctx, insertUserQuery, u.Name, u.Email))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return dom.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	*u = *created
	return nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, patch dom.Patch) (*dom.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, updateUserQuery, patch.Name, patch.Email, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dom.ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, dom.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		return dom.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*dom.User, error) {
	var u dom.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
