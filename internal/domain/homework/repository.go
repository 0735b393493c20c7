package homework

import (
	"context"
	"errors"
)

// ErrCursorNotFound is returned when no cursor was stored under the given name yet.
var ErrCursorNotFound = errors.New("poll cursor not found")

// CursorRepository persists the poll cursor between process restarts.
type CursorRepository interface {
	Get(ctx context.Context, name string) (int64, error)
	Save(ctx context.Context, name string, from int64) error
}
