package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mshrynzw/auriary/pkg"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateDate = errors.New("diary for this date already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository is the Postgres access layer. When crypto is non-nil, diary
// notes are encrypted at rest.
type Repository struct {
	db     DB
	crypto *pkg.Crypto
}

func NewRepository(db DB, crypto *pkg.Crypto) *Repository {
	return &Repository{db: db, crypto: crypto}
}

func (r *Repository) execTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
