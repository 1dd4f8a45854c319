package schema

import (
	"context"
	"testing"

	"github.com/HerbHall/boardreviews/internal/store"
)

func TestMigrations_KnownDialects(t *testing.T) {
	for _, name := range []string{"sqlite", "postgres"} {
		m, err := Migrations(name)
		if err != nil {
			t.Fatalf("Migrations(%q): %v", name, err)
		}
		if len(m) == 0 {
			t.Errorf("Migrations(%q) is empty", name)
		}
		for i, mig := range m {
			if mig.Version != i+1 {
				t.Errorf("Migrations(%q)[%d].Version = %d, want %d", name, i, mig.Version, i+1)
			}
		}
	}
	if _, err := Migrations("mysql"); err == nil {
		t.Error("Migrations(mysql) succeeded, want error")
	}
}

func TestApply_SQLite(t *testing.T) {
	s, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	// Applying twice must be a no-op the second time.
	for i := 0; i < 2; i++ {
		if err := Apply(ctx, s); err != nil {
			t.Fatalf("Apply #%d: %v", i+1, err)
		}
	}

	for _, table := range []string{"categories", "users", "reviews", "comments"} {
		var n int
		err := s.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		if err != nil {
			t.Fatalf("sqlite_master: %v", err)
		}
		if n != 1 {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestApply_Defaults(t *testing.T) {
	s, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer s.Close()
	ctx := context.Background()
	if err := Apply(ctx, s); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	db := s.DB()
	mustExec := func(q string, args ...any) {
		t.Helper()
		if _, err := db.Exec(q, args...); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
	}
	mustExec(`INSERT INTO categories (slug, description) VALUES ('strategy', 'Plan ahead')`)
	mustExec(`INSERT INTO users (username, name, avatar_url) VALUES ('u1', 'User', 'http://x')`)
	mustExec(`INSERT INTO reviews (title, review_body, designer, category, owner) VALUES ('T', 'B', 'D', 'strategy', 'u1')`)

	var (
		img   string
		votes int
	)
	if err := db.QueryRow(`SELECT review_img_url, votes FROM reviews`).Scan(&img, &votes); err != nil {
		t.Fatalf("select review: %v", err)
	}
	if img != DefaultReviewImgURL {
		t.Errorf("review_img_url = %q, want default", img)
	}
	if votes != 0 {
		t.Errorf("votes = %d, want 0", votes)
	}

	mustExec(`INSERT INTO comments (review_id, author, body) VALUES (1, 'u1', 'hi')`)
	mustExec(`DELETE FROM reviews WHERE review_id = 1`)
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&n); err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if n != 0 {
		t.Errorf("comments after review delete = %d, want 0 (cascade)", n)
	}
}
