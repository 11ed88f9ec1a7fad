package repository

import (
	"context"
	"fmt"

	"github.com/VenkataVardineni/careerbuildai/pkg/model"
)

func (r *Repository) CreateUserSession(ctx context.Context, s *model.UserSession) (*model.UserSession, error) {
	const q = `
INSERT INTO user_sessions (session_id, user_id, refresh_token, is_revoked, expires_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at
`
	row := r.db.QueryRow(ctx, q, s.SessionID, s.UserID, s.RefreshToken, s.IsRevoked, s.ExpiresAt)
	if err := row.Scan(&s.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

func (r *Repository) GetUserSession(ctx context.Context, sessionID string) (*model.UserSession, error) {
	const q = `
SELECT session_id, user_id, refresh_token, is_revoked, expires_at, created_at
FROM user_sessions WHERE session_id = $1
`
	var s model.UserSession
	row := r.db.QueryRow(ctx, q, sessionID)
	if err := row.Scan(&s.SessionID, &s.UserID, &s.RefreshToken, &s.IsRevoked, &s.ExpiresAt, &s.CreatedAt); err != nil {
		return nil, notFoundOr(err, "scan session")
	}
	return &s, nil
}

func (r *Repository) RevokeUserSession(ctx context.Context, sessionID string) error {
	const q = `UPDATE user_sessions SET is_revoked = TRUE WHERE session_id = $1`
	tag, err := r.db.Exec(ctx, q, sessionID)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteUserSession(ctx context.Context, sessionID string) error {
	const q = `DELETE FROM user_sessions WHERE session_id = $1`
	if _, err := r.db.Exec(ctx, q, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
