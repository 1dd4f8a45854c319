package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// Compile-time interface guard.
var _ Store = (*PostgresStore)(nil)

// PoolOptions tunes the database/sql connection pool.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// PostgresStore implements Store backed by PostgreSQL via pgx.
type PostgresStore struct {
	base
}

// NewPostgres connects to the PostgreSQL database at url and verifies the
// connection.
func NewPostgres(ctx context.Context, url string, opts PoolOptions) (*PostgresStore, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{base: base{db: db, dialect: postgresDialect{}}}, nil
}

// PostgreSQL error codes the store recognizes.
const (
	pgForeignKeyViolation       = "23503"
	pgIntegrityConstraintClass  = "23"
	pgInvalidTextRepresentation = "22P02"
	pgNumericValueOutOfRange    = "22003"
)

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

// Rebind numbers each ? outside of quoted text as $1, $2, ...
func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote rune
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (postgresDialect) Classify(err error) Outcome {
	if err == nil {
		return OutcomeOther
	}
	if errors.Is(err, sql.ErrNoRows) {
		return OutcomeRowNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return OutcomeOther
	}
	switch {
	case pgErr.Code == pgForeignKeyViolation,
		strings.HasPrefix(pgErr.Code, pgIntegrityConstraintClass):
		return OutcomeConstraintViolation
	case pgErr.Code == pgInvalidTextRepresentation,
		pgErr.Code == pgNumericValueOutOfRange:
		return OutcomeInvalidValue
	}
	return OutcomeOther
}
