package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mshrynzw/auriary/pkg/model"
)

func (r *Repository) CreateUserSession(ctx context.Context, s *model.UserSession) (*model.UserSession, error) {
	const q = `
INSERT INTO r_user_sessions (session_id, user_id, refresh_token, expires_at, is_revoked, created_at)
VALUES ($1, $2, $3, $4, $5, now())
`
	_, err := r.db.Exec(ctx, q, s.SessionID, s.UserID, s.RefreshToken, s.ExpiresAt, s.IsRevoked)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

func (r *Repository) GetUserSession(ctx context.Context, sessionID string) (model.UserSession, error) {
	const q = `
SELECT session_id, user_id, refresh_token, expires_at, is_revoked, created_at
FROM r_user_sessions
WHERE session_id = $1
`
	var s model.UserSession
	row := r.db.QueryRow(ctx, q, sessionID)
	if err := row.Scan(&s.SessionID, &s.UserID, &s.RefreshToken, &s.ExpiresAt, &s.IsRevoked, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserSession{}, ErrNotFound
		}
		return model.UserSession{}, fmt.Errorf("scan session: %w", err)
	}
	return s, nil
}

func (r *Repository) RevokeUserSession(ctx context.Context, sessionID string) error {
	const q = `UPDATE r_user_sessions SET is_revoked = true WHERE session_id = $1`
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
	const q = `DELETE FROM r_user_sessions WHERE session_id = $1`
	tag, err := r.db.Exec(ctx, q, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
