package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mshrynzw/auriary/pkg/model"
)

// CreateUser inserts a new user and returns the new user's id.
func (r *Repository) CreateUser(ctx context.Context, email, displayName, passwordHash string) (string, error) {
	id := uuid.New().String()
	const q = `
INSERT INTO m_users (user_id, email, display_name, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
`
	_, err := r.db.Exec(ctx, q, id, email, displayName, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// DeleteUser removes the account and everything hanging off it in one
// transaction.
func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		const qSessions = `DELETE FROM r_user_sessions WHERE user_id = $1`
		if _, err := tx.Exec(ctx, qSessions, userID); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}

		const qDiaries = `DELETE FROM t_diaries WHERE user_id = $1`
		if _, err := tx.Exec(ctx, qDiaries, userID); err != nil {
			return fmt.Errorf("delete diaries: %w", err)
		}

		const qMedications = `DELETE FROM m_medications WHERE user_id = $1`
		if _, err := tx.Exec(ctx, qMedications, userID); err != nil {
			return fmt.Errorf("delete medications: %w", err)
		}

		const qUser = `DELETE FROM m_users WHERE user_id = $1`
		tag, err := tx.Exec(ctx, qUser, userID)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetUserByEmail returns a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	const q = `
SELECT user_id, email, display_name, password_hash, created_at, updated_at
FROM m_users
WHERE email = $1
`
	var u model.User
	row := r.db.QueryRow(ctx, q, email)
	if err := row.Scan(&u.UserID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("scan user by email: %w", err)
	}
	return u, nil
}

// GetUserByID returns a user by id.
func (r *Repository) GetUserByID(ctx context.Context, id string) (model.User, error) {
	const q = `
SELECT user_id, email, display_name, password_hash, created_at, updated_at
FROM m_users
WHERE user_id = $1
`
	var u model.User
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&u.UserID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("scan user by id: %w", err)
	}
	return u, nil
}
