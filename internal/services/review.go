package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/HerbHall/boardreviews/internal/query"
	"github.com/HerbHall/boardreviews/internal/store"
	"github.com/HerbHall/boardreviews/pkg/models"
)

// ReviewRepository provides access to reviews.
type ReviewRepository interface {
	// Get returns a review with its comment count. Fails with
	// ErrReviewNotFound when no review has the id.
	Get(ctx context.Context, id int) (*models.ReviewDetail, error)

	// List executes a validated listing plan. An unfiltered listing is never
	// an error, even when empty. A category listing fails with ErrNotFound
	// only when the category itself does not exist.
	List(ctx context.Context, plan query.ReviewListPlan) ([]models.ReviewDetail, error)

	// UpdateVotes adds delta to the review's votes in a single statement and
	// returns the updated row. Fails with ErrReviewNotFound when no review
	// has the id.
	UpdateVotes(ctx context.Context, id, delta int) (*models.Review, error)
}

// Compile-time interface guard.
var _ ReviewRepository = (*SQLReviewRepository)(nil)

// SQLReviewRepository implements ReviewRepository over the reviews and
// comments tables.
type SQLReviewRepository struct {
	conn *store.Conn
}

// NewSQLReviewRepository creates a ReviewRepository.
func NewSQLReviewRepository(conn *store.Conn) *SQLReviewRepository {
	return &SQLReviewRepository{conn: conn}
}

// reviewColumns is the shared projection for review reads; r aliases reviews.
const reviewColumns = `r.review_id, r.title, r.review_body, r.designer, r.review_img_url,
	r.votes, r.category, r.owner, r.created_at`

// reviewDetailSelect counts comments with an outer join so reviews without
// comments report zero instead of disappearing.
const reviewDetailSelect = `SELECT ` + reviewColumns + `, COUNT(c.comment_id) AS comment_count`

func (r *SQLReviewRepository) Get(ctx context.Context, id int) (*models.ReviewDetail, error) {
	row := r.conn.QueryRowContext(ctx, reviewDetailSelect+`
		FROM reviews r
		LEFT JOIN comments c ON c.review_id = r.review_id
		WHERE r.review_id = ?
		GROUP BY r.review_id`, id)
	d, present, err := scanReviewDetail(row)
	if err != nil {
		if isNoRows(r.conn, err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review %d: %w", id, err)
	}
	if !present {
		return nil, ErrReviewNotFound
	}
	return &d, nil
}

func (r *SQLReviewRepository) List(ctx context.Context, plan query.ReviewListPlan) ([]models.ReviewDetail, error) {
	var (
		stmt string
		args []any
	)
	if plan.Filtered() {
		// categories drives the join: no rows means the category is
		// unknown, one all-NULL review row means it has no reviews.
		stmt = reviewDetailSelect + `
			FROM categories cat
			LEFT JOIN reviews r ON r.category = cat.slug
			LEFT JOIN comments c ON c.review_id = r.review_id
			WHERE cat.slug = ?
			GROUP BY cat.slug, r.review_id
			ORDER BY ` + plan.OrderBy()
		args = append(args, plan.Category)
	} else {
		stmt = reviewDetailSelect + `
			FROM reviews r
			LEFT JOIN comments c ON c.review_id = r.review_id
			GROUP BY r.review_id
			ORDER BY ` + plan.OrderBy()
	}

	//nolint:gosec // ORDER BY comes from the allow-list in package query
	rows, err := r.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	matched := 0
	reviews := []models.ReviewDetail{}
	for rows.Next() {
		matched++
		d, present, err := scanReviewDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		if present {
			reviews = append(reviews, d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	if plan.Filtered() && matched == 0 {
		return nil, fmt.Errorf("category %q: %w", plan.Category, ErrNotFound)
	}
	return reviews, nil
}

func (r *SQLReviewRepository) UpdateVotes(ctx context.Context, id, delta int) (*models.Review, error) {
	row := r.conn.QueryRowContext(ctx, `
		UPDATE reviews SET votes = votes + ?
		WHERE review_id = ?
		RETURNING review_id, title, review_body, designer, review_img_url,
			votes, category, owner, created_at`,
		delta, id,
	)

	var rv models.Review
	var createdAt store.NullTime
	err := row.Scan(&rv.ReviewID, &rv.Title, &rv.ReviewBody, &rv.Designer, &rv.ReviewImgURL,
		&rv.Votes, &rv.Category, &rv.Owner, &createdAt)
	if err != nil {
		switch {
		case isNoRows(r.conn, err):
			return nil, ErrReviewNotFound
		case r.conn.Classify(err) == store.OutcomeInvalidValue:
			return nil, fmt.Errorf("update votes on review %d: %w", id, query.ErrWrongInput)
		}
		return nil, fmt.Errorf("update votes on review %d: %w", id, err)
	}
	rv.CreatedAt = createdAt.Time
	return &rv, nil
}

// scanReviewDetail scans one detail row. present is false when the review
// columns are NULL, which happens for a category with no reviews.
func scanReviewDetail(s rowScanner) (models.ReviewDetail, bool, error) {
	var (
		id                                     sql.NullInt64
		title, body, designer, img, cat, owner sql.NullString
		votes                                  sql.NullInt64
		createdAt                              store.NullTime
		count                                  int
	)
	err := s.Scan(&id, &title, &body, &designer, &img, &votes, &cat, &owner, &createdAt, &count)
	if err != nil {
		return models.ReviewDetail{}, false, err
	}
	if !id.Valid {
		return models.ReviewDetail{}, false, nil
	}
	return models.ReviewDetail{
		Review: models.Review{
			ReviewID:     int(id.Int64),
			Title:        title.String,
			ReviewBody:   body.String,
			Designer:     designer.String,
			ReviewImgURL: img.String,
			Votes:        int(votes.Int64),
			Category:     cat.String,
			Owner:        owner.String,
			CreatedAt:    createdAt.Time,
		},
		CommentCount: count,
	}, true, nil
}
