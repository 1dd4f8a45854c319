// Package seed loads the embedded datasets and writes them into a store.
// Seeding replaces the contents of every table.
package seed

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/boardreviews/internal/store"
	"github.com/HerbHall/boardreviews/pkg/models"
)

//go:embed data/*.yaml
var datasets embed.FS

// Dataset is the full contents of the database.
type Dataset struct {
	Categories []models.Category `yaml:"categories"`
	Users      []models.User     `yaml:"users"`
	Reviews    []Review          `yaml:"reviews"`
	Comments   []Comment         `yaml:"comments"`
}

// Review is a review row without its id; ids follow list order.
type Review struct {
	Title        string    `yaml:"title"`
	Designer     string    `yaml:"designer"`
	Owner        string    `yaml:"owner"`
	ReviewImgURL string    `yaml:"review_img_url"`
	ReviewBody   string    `yaml:"review_body"`
	Category     string    `yaml:"category"`
	CreatedAt    time.Time `yaml:"created_at"`
	Votes        int       `yaml:"votes"`
}

// Comment references its review by 1-based position in Dataset.Reviews.
type Comment struct {
	Body      string    `yaml:"body"`
	Votes     int       `yaml:"votes"`
	Author    string    `yaml:"author"`
	Review    int       `yaml:"review"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Names lists the embedded datasets.
func Names() []string {
	entries, _ := datasets.ReadDir("data")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Load parses the named embedded dataset.
func Load(name string) (*Dataset, error) {
	raw, err := datasets.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown dataset %q (have %s)", name, strings.Join(Names(), ", "))
	}
	ds, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	return ds, nil
}

// Parse decodes a YAML dataset and checks that every comment names a review
// in the set.
func Parse(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	for i, c := range ds.Comments {
		if c.Review < 1 || c.Review > len(ds.Reviews) {
			return nil, fmt.Errorf("comment %d references review %d of %d",
				i+1, c.Review, len(ds.Reviews))
		}
	}
	return &ds, nil
}

// Apply replaces all rows in s with ds inside a single transaction.
func Apply(ctx context.Context, s store.Store, ds *Dataset) error {
	d := s.Dialect()
	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := truncate(ctx, tx, d.Name()); err != nil {
			return err
		}

		for _, c := range ds.Categories {
			if _, err := tx.ExecContext(ctx, d.Rebind(
				`INSERT INTO categories (slug, description) VALUES (?, ?)`),
				c.Slug, c.Description); err != nil {
				return fmt.Errorf("insert category %q: %w", c.Slug, err)
			}
		}

		for _, u := range ds.Users {
			if _, err := tx.ExecContext(ctx, d.Rebind(
				`INSERT INTO users (username, name, avatar_url) VALUES (?, ?, ?)`),
				u.Username, u.Name, u.AvatarURL); err != nil {
				return fmt.Errorf("insert user %q: %w", u.Username, err)
			}
		}

		reviewIDs := make([]int64, len(ds.Reviews))
		for i, r := range ds.Reviews {
			err := tx.QueryRowContext(ctx, d.Rebind(`
				INSERT INTO reviews (title, designer, owner, review_img_url, review_body, category, created_at, votes)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				RETURNING review_id`),
				r.Title, r.Designer, r.Owner, r.ReviewImgURL, r.ReviewBody, r.Category, r.CreatedAt.UTC(), r.Votes,
			).Scan(&reviewIDs[i])
			if err != nil {
				return fmt.Errorf("insert review %q: %w", r.Title, err)
			}
		}

		for i, c := range ds.Comments {
			if _, err := tx.ExecContext(ctx, d.Rebind(`
				INSERT INTO comments (body, votes, author, review_id, created_at)
				VALUES (?, ?, ?, ?, ?)`),
				c.Body, c.Votes, c.Author, reviewIDs[c.Review-1], c.CreatedAt.UTC()); err != nil {
				return fmt.Errorf("insert comment %d: %w", i+1, err)
			}
		}
		return nil
	})
}

// truncate empties every table and resets id sequences.
func truncate(ctx context.Context, tx *sql.Tx, dialect string) error {
	if dialect == "postgres" {
		_, err := tx.ExecContext(ctx,
			`TRUNCATE comments, reviews, users, categories RESTART IDENTITY CASCADE`)
		return err
	}
	// SQLite reuses max(rowid)+1 for INTEGER PRIMARY KEY, so emptying the
	// tables restarts ids at 1.
	for _, table := range []string{"comments", "reviews", "users", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Export reads every row of s into a Dataset. Reviews keep id order, so
// applying the result to an empty store reproduces the same ids when review
// ids are contiguous.
func Export(ctx context.Context, s store.Store) (*Dataset, error) {
	conn := store.NewConn(s)
	ds := &Dataset{
		Categories: []models.Category{},
		Users:      []models.User{},
		Reviews:    []Review{},
		Comments:   []Comment{},
	}

	rows, err := conn.QueryContext(ctx, `SELECT slug, description FROM categories ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.Slug, &c.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("export categories: %w", err)
		}
		ds.Categories = append(ds.Categories, c)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}

	rows, err = conn.QueryContext(ctx, `SELECT username, name, avatar_url FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.Name, &u.AvatarURL); err != nil {
			rows.Close()
			return nil, fmt.Errorf("export users: %w", err)
		}
		ds.Users = append(ds.Users, u)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}

	position := make(map[int64]int)
	rows, err = conn.QueryContext(ctx, `
		SELECT review_id, title, designer, owner, review_img_url, review_body, category, created_at, votes
		FROM reviews ORDER BY review_id`)
	if err != nil {
		return nil, fmt.Errorf("export reviews: %w", err)
	}
	for rows.Next() {
		var (
			id        int64
			r         Review
			createdAt store.NullTime
		)
		if err := rows.Scan(&id, &r.Title, &r.Designer, &r.Owner, &r.ReviewImgURL,
			&r.ReviewBody, &r.Category, &createdAt, &r.Votes); err != nil {
			rows.Close()
			return nil, fmt.Errorf("export reviews: %w", err)
		}
		r.CreatedAt = createdAt.Time
		ds.Reviews = append(ds.Reviews, r)
		position[id] = len(ds.Reviews)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("export reviews: %w", err)
	}

	rows, err = conn.QueryContext(ctx, `
		SELECT body, votes, author, review_id, created_at
		FROM comments ORDER BY comment_id`)
	if err != nil {
		return nil, fmt.Errorf("export comments: %w", err)
	}
	for rows.Next() {
		var (
			c         Comment
			reviewID  int64
			createdAt store.NullTime
		)
		if err := rows.Scan(&c.Body, &c.Votes, &c.Author, &reviewID, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("export comments: %w", err)
		}
		c.Review = position[reviewID]
		c.CreatedAt = createdAt.Time
		ds.Comments = append(ds.Comments, c)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("export comments: %w", err)
	}
	return ds, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}
