package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Compile-time interface guard.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store backed by SQLite via modernc.org/sqlite.
type SQLiteStore struct {
	base
}

// NewSQLite opens (or creates) a SQLite database at the given path and
// applies recommended pragmas for WAL mode, foreign keys, and performance.
// Returns the concrete type; callers assign to Store where needed.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single write connection. WAL enables concurrent readers.
	// A single connection also keeps per-connection pragmas (foreign_keys) in force.
	db.SetMaxOpenConns(1)

	// Verify the connection works.
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	// Apply recommended pragmas (modernc.org/sqlite requires SQL statements, not DSN params).
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA cache_size=-20000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	return &SQLiteStore{base: base{db: db, dialect: sqliteDialect{}}}, nil
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

// Rebind is the identity: SQLite accepts ? natively.
func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) Classify(err error) Outcome {
	if err == nil {
		return OutcomeOther
	}
	if errors.Is(err, sql.ErrNoRows) {
		return OutcomeRowNotFound
	}
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return OutcomeOther
	}
	code := se.Code()
	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
		code&0xff == sqlite3.SQLITE_CONSTRAINT:
		return OutcomeConstraintViolation
	case code&0xff == sqlite3.SQLITE_MISMATCH:
		return OutcomeInvalidValue
	}
	return OutcomeOther
}
