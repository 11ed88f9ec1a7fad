package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/VenkataVardineni/careerbuildai/pkg/model"
	"github.com/jackc/pgx/v5/pgconn"
)

func (r *Repository) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
INSERT INTO users (email, username, full_name, hashed_password, is_active, is_guest)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at
`
	row := r.db.QueryRow(ctx, q, u.Email, u.Username, u.FullName, u.HashedPassword, u.IsActive, u.IsGuest)
	if err := row.Scan(&u.UserID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		// unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, email, username, full_name, hashed_password, is_active, is_guest, created_at, updated_at
FROM users WHERE email = $1
`
	var u model.User
	row := r.db.QueryRow(ctx, q, email)
	if err := row.Scan(&u.UserID, &u.Email, &u.Username, &u.FullName, &u.HashedPassword,
		&u.IsActive, &u.IsGuest, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, notFoundOr(err, "scan user by email")
	}
	return &u, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
SELECT id, email, username, full_name, hashed_password, is_active, is_guest, created_at, updated_at
FROM users WHERE id = $1
`
	var u model.User
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&u.UserID, &u.Email, &u.Username, &u.FullName, &u.HashedPassword,
		&u.IsActive, &u.IsGuest, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, notFoundOr(err, "scan user by id")
	}
	return &u, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	const q = `
SELECT id, email, username, full_name, hashed_password, is_active, is_guest, created_at, updated_at
FROM users ORDER BY id ASC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.UserID, &u.Email, &u.Username, &u.FullName, &u.HashedPassword,
			&u.IsActive, &u.IsGuest, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		out = append(out, u)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
