package testutil

import (
	"context"
	"testing"

	"github.com/HerbHall/boardreviews/internal/schema"
	"github.com/HerbHall/boardreviews/internal/seed"
	"github.com/HerbHall/boardreviews/internal/store"
)

// NewEmptyStore creates an in-memory SQLiteStore with the schema applied and
// no rows. The store is automatically closed when the test completes.
func NewEmptyStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	db, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("testutil.NewStore: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := schema.Apply(context.Background(), db); err != nil {
		t.Fatalf("testutil.NewStore: %v", err)
	}
	return db
}

// NewStore creates an in-memory SQLiteStore seeded with the "test" dataset.
func NewStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	db := NewEmptyStore(t)
	Seed(t, db)
	return db
}

// Seed replaces the contents of s with the "test" dataset.
func Seed(t *testing.T, s store.Store) {
	t.Helper()
	ds, err := seed.Load("test")
	if err != nil {
		t.Fatalf("testutil.Seed: %v", err)
	}
	if err := seed.Apply(context.Background(), s, ds); err != nil {
		t.Fatalf("testutil.Seed: %v", err)
	}
}
