package store

import (
	"context"
	"fmt"
)

// Options selects and configures a backend for Open.
type Options struct {
	Driver string // "sqlite" (default) or "postgres"
	Path   string // SQLite database file
	URL    string // PostgreSQL connection URL
	Pool   PoolOptions
}

// Open returns the Store named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", "sqlite":
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite: database path is required")
		}
		return NewSQLite(opts.Path)
	case "postgres":
		if opts.URL == "" {
			return nil, fmt.Errorf("postgres: database url is required")
		}
		return NewPostgres(ctx, opts.URL, opts.Pool)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}
