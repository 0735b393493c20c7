package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Only the poll loop talks to the database, one query at a time.
const (
	cursorPoolSize     = 2
	cursorConnLifetime = 30 * time.Minute
	cursorConnIdleTime = 5 * time.Minute
	connectTimeout     = 10 * time.Second
)

// NewPostgresConnection opens the cursor database and verifies it is reachable
// within connectTimeout. The caller owns the returned pool.
func NewPostgresConnection(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening cursor database: %w", err)
	}
	db.SetMaxOpenConns(cursorPoolSize)
	db.SetMaxIdleConns(cursorPoolSize)
	db.SetConnMaxLifetime(cursorConnLifetime)
	db.SetConnMaxIdleTime(cursorConnIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cursor database unreachable: %w", err)
	}
	return db, nil
}
