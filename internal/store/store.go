// Package store owns the relational database handle. It hides the driver
// behind a small adapter: statements are written once with ? placeholders,
// and driver errors are reduced to a closed set of Outcomes.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// Migration is one versioned schema step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// Dialect captures the differences between supported databases.
type Dialect interface {
	// Name returns the driver family, "sqlite" or "postgres".
	Name() string

	// Rebind rewrites ? placeholders into the dialect's bind syntax.
	Rebind(query string) string

	// Classify reduces a driver error to an Outcome.
	Classify(err error) Outcome
}

// Store is a migrated database handle shared by all repositories.
type Store interface {
	DB() *sql.DB
	Dialect() Dialect
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
	Migrate(ctx context.Context, component string, migrations []Migration) error
	Close() error
}

// base implements the dialect-independent parts of Store.
type base struct {
	db      *sql.DB
	dialect Dialect
	mu      sync.Mutex // Serialize migrations
	once    sync.Once  // Ensure _migrations table created once
}

// DB returns the underlying *sql.DB for direct queries.
func (s *base) DB() *sql.DB {
	return s.db
}

// Dialect returns the store's SQL dialect.
func (s *base) Dialect() Dialect {
	return s.dialect
}

// Tx executes fn within a database transaction. The transaction is
// committed if fn returns nil, rolled back otherwise.
func (s *base) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// Migrate runs pending migrations for the named component. Already-applied
// migrations (tracked in the shared _migrations table) are skipped.
// Migrations must be provided in ascending Version order.
func (s *base) Migrate(ctx context.Context, component string, migrations []Migration) error {
	if err := s.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range migrations {
		applied, err := s.isMigrationApplied(ctx, component, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := s.applyMigration(ctx, component, m); err != nil {
			return fmt.Errorf("migration %s/%d (%s): %w", component, m.Version, m.Description, err)
		}
	}

	return nil
}

// Close closes the underlying database connection pool.
func (s *base) Close() error {
	return s.db.Close()
}

func (s *base) ensureMigrationsTable(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		_, err = s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS _migrations (
				component   TEXT      NOT NULL,
				version     INTEGER   NOT NULL,
				description TEXT      NOT NULL,
				applied_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (component, version)
			)
		`)
	})
	return err
}

func (s *base) isMigrationApplied(ctx context.Context, component string, version int) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(
		"SELECT COUNT(*) FROM _migrations WHERE component = ? AND version = ?"),
		component, version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check migration %s/%d: %w", component, version, err)
	}
	return count > 0, nil
}

func (s *base) applyMigration(ctx context.Context, component string, m Migration) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := m.Up(tx); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, s.dialect.Rebind(
			"INSERT INTO _migrations (component, version, description) VALUES (?, ?, ?)"),
			component, m.Version, m.Description,
		)
		return err
	})
}
