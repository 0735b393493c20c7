// Package memory keeps the poll cursor in process memory when no database is configured.
package memory

import (
	"context"

	"homework_status_bot/internal/domain/homework"
)

// CursorRepository is a homework.CursorRepository without persistence.
// It is owned by the single poll loop and is not safe for concurrent use.
type CursorRepository struct {
	cursors map[string]int64
}

func NewCursorRepository() *CursorRepository {
	return &CursorRepository{cursors: make(map[string]int64)}
}

func (r *CursorRepository) Get(_ context.Context, name string) (int64, error) {
	from, ok := r.cursors[name]
	if !ok {
		return 0, homework.ErrCursorNotFound
	}
	return from, nil
}

func (r *CursorRepository) Save(_ context.Context, name string, from int64) error {
	r.cursors[name] = from
	return nil
}
