// Package schema defines the database tables for categories, users,
// reviews and comments, in one migration list per supported dialect.
package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/HerbHall/boardreviews/internal/store"
)

// Component is the name under which schema migrations are tracked.
const Component = "core"

// Migrations returns the migration list for the named dialect.
func Migrations(dialect string) ([]store.Migration, error) {
	switch dialect {
	case "sqlite":
		return sqliteMigrations, nil
	case "postgres":
		return postgresMigrations, nil
	default:
		return nil, fmt.Errorf("no schema for dialect %q", dialect)
	}
}

// Apply runs all pending schema migrations against s.
func Apply(ctx context.Context, s store.Store) error {
	migrations, err := Migrations(s.Dialect().Name())
	if err != nil {
		return err
	}
	if err := s.Migrate(ctx, Component, migrations); err != nil {
		return fmt.Errorf("schema migrations: %w", err)
	}
	return nil
}

func execAll(tx *sql.Tx, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// sqliteNow yields millisecond-precision UTC timestamps so comments posted
// within the same second still sort by creation time.
const sqliteNow = `(strftime('%Y-%m-%d %H:%M:%f+00:00', 'now'))`

var sqliteMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create categories, users, reviews and comments",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE TABLE categories (
					slug        TEXT PRIMARY KEY,
					description TEXT NOT NULL
				)`,
				`CREATE TABLE users (
					username   TEXT PRIMARY KEY,
					name       TEXT NOT NULL,
					avatar_url TEXT NOT NULL
				)`,
				`CREATE TABLE reviews (
					review_id      INTEGER PRIMARY KEY,
					title          TEXT NOT NULL,
					review_body    TEXT NOT NULL,
					designer       TEXT NOT NULL,
					review_img_url TEXT NOT NULL DEFAULT '` + DefaultReviewImgURL + `',
					votes          INTEGER NOT NULL DEFAULT 0,
					category       TEXT NOT NULL REFERENCES categories(slug),
					owner          TEXT NOT NULL REFERENCES users(username),
					created_at     DATETIME NOT NULL DEFAULT ` + sqliteNow + `
				)`,
				`CREATE TABLE comments (
					comment_id INTEGER PRIMARY KEY,
					review_id  INTEGER NOT NULL REFERENCES reviews(review_id) ON DELETE CASCADE,
					author     TEXT NOT NULL REFERENCES users(username),
					body       TEXT NOT NULL,
					votes      INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL DEFAULT ` + sqliteNow + `
				)`,
				`CREATE INDEX idx_reviews_category ON reviews(category)`,
				`CREATE INDEX idx_comments_review ON comments(review_id, created_at)`,
			})
		},
	},
}

var postgresMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create categories, users, reviews and comments",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE TABLE categories (
					slug        VARCHAR PRIMARY KEY,
					description VARCHAR NOT NULL
				)`,
				`CREATE TABLE users (
					username   VARCHAR PRIMARY KEY,
					name       VARCHAR NOT NULL,
					avatar_url VARCHAR NOT NULL
				)`,
				`CREATE TABLE reviews (
					review_id      BIGSERIAL PRIMARY KEY,
					title          VARCHAR NOT NULL,
					review_body    VARCHAR NOT NULL,
					designer       VARCHAR NOT NULL,
					review_img_url VARCHAR NOT NULL DEFAULT '` + DefaultReviewImgURL + `',
					votes          INT NOT NULL DEFAULT 0,
					category       VARCHAR NOT NULL REFERENCES categories(slug),
					owner          VARCHAR NOT NULL REFERENCES users(username),
					created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
				)`,
				`CREATE TABLE comments (
					comment_id BIGSERIAL PRIMARY KEY,
					review_id  BIGINT NOT NULL REFERENCES reviews(review_id) ON DELETE CASCADE,
					author     VARCHAR NOT NULL REFERENCES users(username),
					body       VARCHAR NOT NULL,
					votes      INT NOT NULL DEFAULT 0,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				)`,
				`CREATE INDEX idx_reviews_category ON reviews(category)`,
				`CREATE INDEX idx_comments_review ON comments(review_id, created_at)`,
			})
		},
	},
}

// DefaultReviewImgURL is stored when a review has no image of its own.
const DefaultReviewImgURL = "https://images.pexels.com/photos/163064/play-stone-network-networked-interactive-163064.jpeg"
