package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/HerbHall/boardreviews/internal/query"
	"github.com/HerbHall/boardreviews/internal/store"
	"github.com/HerbHall/boardreviews/pkg/models"
)

// CommentRepository provides access to review comments.
type CommentRepository interface {
	// ListByReview returns the review's comments, newest first. A review
	// without comments yields an empty slice; a missing review fails with
	// ErrNotFound.
	ListByReview(ctx context.Context, reviewID int) ([]models.Comment, error)

	// Create stores a comment. The store's foreign keys decide whether the
	// review and author exist; a violation fails with ErrNotFound.
	Create(ctx context.Context, reviewID int, c query.NewComment) (*models.Comment, error)

	// Delete removes a comment. Fails with ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id int) error
}

// Compile-time interface guard.
var _ CommentRepository = (*SQLCommentRepository)(nil)

// SQLCommentRepository implements CommentRepository over the comments table.
type SQLCommentRepository struct {
	conn *store.Conn
}

// NewSQLCommentRepository creates a CommentRepository.
func NewSQLCommentRepository(conn *store.Conn) *SQLCommentRepository {
	return &SQLCommentRepository{conn: conn}
}

func (r *SQLCommentRepository) ListByReview(ctx context.Context, reviewID int) ([]models.Comment, error) {
	// reviews drives the join so a missing review yields no rows at all,
	// while a review without comments yields a single NULL comment row.
	rows, err := r.conn.QueryContext(ctx, `
		SELECT r.review_id, c.comment_id, c.author, c.body, c.votes, c.created_at
		FROM reviews r
		LEFT JOIN comments c ON c.review_id = r.review_id
		WHERE r.review_id = ?
		ORDER BY c.created_at DESC, c.comment_id DESC`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("list comments for review %d: %w", reviewID, err)
	}
	defer rows.Close()

	matched := 0
	comments := []models.Comment{}
	for rows.Next() {
		matched++
		var (
			rid          int
			id, votes    sql.NullInt64
			author, body sql.NullString
			createdAt    store.NullTime
		)
		if err := rows.Scan(&rid, &id, &author, &body, &votes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		if !id.Valid {
			continue
		}
		comments = append(comments, models.Comment{
			CommentID: int(id.Int64),
			ReviewID:  rid,
			Author:    author.String,
			Body:      body.String,
			Votes:     int(votes.Int64),
			CreatedAt: createdAt.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	if matched == 0 {
		return nil, fmt.Errorf("review %d: %w", reviewID, ErrNotFound)
	}
	return comments, nil
}

func (r *SQLCommentRepository) Create(ctx context.Context, reviewID int, c query.NewComment) (*models.Comment, error) {
	var (
		out       models.Comment
		createdAt store.NullTime
	)
	err := r.conn.QueryRowContext(ctx, `
		INSERT INTO comments (review_id, author, body)
		VALUES (?, ?, ?)
		RETURNING comment_id, review_id, author, body, votes, created_at`,
		reviewID, c.Author, c.Body,
	).Scan(&out.CommentID, &out.ReviewID, &out.Author, &out.Body, &out.Votes, &createdAt)
	if err != nil {
		if r.conn.Classify(err) == store.OutcomeConstraintViolation {
			return nil, fmt.Errorf("create comment on review %d by %q: %w", reviewID, c.Author, ErrNotFound)
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	out.CreatedAt = createdAt.Time
	return &out, nil
}

func (r *SQLCommentRepository) Delete(ctx context.Context, id int) error {
	res, err := r.conn.ExecContext(ctx,
		`DELETE FROM comments WHERE comment_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	return nil
}
