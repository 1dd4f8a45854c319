// Package services provides repository interfaces and SQL implementations
// for data access. This layer executes validated query plans against the
// store, shapes rows into entities, and turns storage outcomes into domain
// errors (not-found, empty list) for the HTTP API.
package services

import (
	"errors"
	"fmt"

	"github.com/HerbHall/boardreviews/internal/store"
)

// Sentinel errors returned by repositories.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReviewNotFound is the not-found error for single-review reads and
	// updates. errors.Is(ErrReviewNotFound, ErrNotFound) holds.
	ErrReviewNotFound = fmt.Errorf("review ID %w", ErrNotFound)
)

// Repositories bundles every repository over one connection.
type Repositories struct {
	Categories CategoryRepository
	Users      UserRepository
	Reviews    ReviewRepository
	Comments   CommentRepository
}

// NewRepositories builds SQL repositories sharing conn.
func NewRepositories(conn *store.Conn) *Repositories {
	return &Repositories{
		Categories: NewSQLCategoryRepository(conn),
		Users:      NewSQLUserRepository(conn),
		Reviews:    NewSQLReviewRepository(conn),
		Comments:   NewSQLCommentRepository(conn),
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// isNoRows reports whether conn classifies err as an empty single-row read.
func isNoRows(conn *store.Conn, err error) bool {
	return conn.Classify(err) == store.OutcomeRowNotFound
}
