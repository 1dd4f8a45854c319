package testutil

import "github.com/HerbHall/boardreviews/internal/query"

// Counts in the "test" dataset.
const (
	CategoryCount = 4
	UserCount     = 4
	ReviewCount   = 13
	CommentCount  = 6
)

// NewCommentRequest returns a valid comment body by a seeded user.
// Override individual fields with options.
func NewCommentRequest(opts ...func(*query.CommentRequest)) query.CommentRequest {
	c := query.CommentRequest{
		Username: "bainesface",
		Body:     "Ah MAZING!",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithUsername sets the comment author.
func WithUsername(name string) func(*query.CommentRequest) {
	return func(c *query.CommentRequest) { c.Username = name }
}

// WithBody sets the comment text.
func WithBody(body string) func(*query.CommentRequest) {
	return func(c *query.CommentRequest) { c.Body = body }
}
