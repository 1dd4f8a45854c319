package services

import (
	"context"
	"fmt"

	"github.com/HerbHall/boardreviews/internal/store"
	"github.com/HerbHall/boardreviews/pkg/models"
)

// CategoryRepository provides read access to review categories.
type CategoryRepository interface {
	// List returns every category ordered by slug.
	List(ctx context.Context) ([]models.Category, error)
}

// Compile-time interface guard.
var _ CategoryRepository = (*SQLCategoryRepository)(nil)

// SQLCategoryRepository implements CategoryRepository over the categories table.
type SQLCategoryRepository struct {
	conn *store.Conn
}

// NewSQLCategoryRepository creates a CategoryRepository.
func NewSQLCategoryRepository(conn *store.Conn) *SQLCategoryRepository {
	return &SQLCategoryRepository{conn: conn}
}

func (r *SQLCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT slug, description FROM categories ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.Slug, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
