package services

import (
	"context"
	"fmt"

	"github.com/HerbHall/boardreviews/internal/store"
	"github.com/HerbHall/boardreviews/pkg/models"
)

// UserRepository provides read access to users.
type UserRepository interface {
	// List returns every user ordered by username.
	List(ctx context.Context) ([]models.User, error)
}

// Compile-time interface guard.
var _ UserRepository = (*SQLUserRepository)(nil)

// SQLUserRepository implements UserRepository over the users table.
type SQLUserRepository struct {
	conn *store.Conn
}

// NewSQLUserRepository creates a UserRepository.
func NewSQLUserRepository(conn *store.Conn) *SQLUserRepository {
	return &SQLUserRepository{conn: conn}
}

func (r *SQLUserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT username, name, avatar_url FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.Name, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
