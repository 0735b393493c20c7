package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/homework"
)

const createCursorsTable = `CREATE TABLE IF NOT EXISTS poll_cursors (
	name       TEXT PRIMARY KEY,
	from_date  BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type PostgresCursorRepository struct {
	db *sql.DB
}

func NewPostgresCursorRepository(db *sql.DB) *PostgresCursorRepository {
	return &PostgresCursorRepository{db: db}
}

// EnsureSchema creates the poll_cursors table if it does not exist.
func (r *PostgresCursorRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCursorsTable); err != nil {
		return fmt.Errorf("error creating poll_cursors table: %w", err)
	}
	return nil
}

func (r *PostgresCursorRepository) Get(ctx context.Context, name string) (int64, error) {
	query := `SELECT from_date FROM poll_cursors WHERE name = $1`
	var from int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(&from)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, homework.ErrCursorNotFound
		}
		return 0, fmt.Errorf("error getting poll cursor %s: %w", name, err)
	}
	return from, nil
}

func (r *PostgresCursorRepository) Save(ctx context.Context, name string, from int64) error {
	query := `INSERT INTO poll_cursors (name, from_date, updated_at)
               VALUES ($1, $2, NOW())
               ON CONFLICT (name) DO UPDATE SET from_date = EXCLUDED.from_date, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, name, from); err != nil {
		return fmt.Errorf("error saving poll cursor %s: %w", name, err)
	}
	return nil
}
