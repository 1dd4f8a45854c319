package store

import (
	"context"
	"database/sql"
)

// Conn runs statements written with ? placeholders against a Store,
// rebinding them for its dialect. Repositories hold a *Conn rather than a
// bare *sql.DB so that they stay dialect-agnostic.
type Conn struct {
	db      *sql.DB
	dialect Dialect
}

// NewConn wraps a Store's pool.
func NewConn(s Store) *Conn {
	return &Conn{db: s.DB(), dialect: s.Dialect()}
}

func (c *Conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, c.dialect.Rebind(query), args...)
}

func (c *Conn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return c.db.QueryRowContext(ctx, c.dialect.Rebind(query), args...)
}

func (c *Conn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, c.dialect.Rebind(query), args...)
}

// Classify reduces err to an Outcome using the store's dialect.
func (c *Conn) Classify(err error) Outcome {
	return c.dialect.Classify(err)
}
