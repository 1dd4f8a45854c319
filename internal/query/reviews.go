package query

import (
	"fmt"
	"sort"
	"strings"
)

// Defaults applied when the listing parameters are omitted.
const (
	DefaultSortBy = "created_at"
	DefaultOrder  = "desc"
)

// reviewSortColumns maps the public sort_by values to qualified columns of
// the review listing projection. Only these values may reach ORDER BY.
var reviewSortColumns = map[string]string{
	"review_id":     "r.review_id",
	"title":         "r.title",
	"votes":         "r.votes",
	"category":      "r.category",
	"created_at":    "r.created_at",
	"designer":      "r.designer",
	"owner":         "r.owner",
	"comment_count": "comment_count",
}

// ReviewListPlan is a validated description of a review listing: an optional
// category filter and a sort. It never carries caller text destined for
// interpolation; Category is bound as a statement parameter.
type ReviewListPlan struct {
	Category   string // Exact category slug to filter on; empty means no filter.
	SortBy     string // Public sort key, e.g. "votes".
	Column     string // Allow-listed column for SortBy.
	Descending bool
}

// Filtered reports whether the plan restricts reviews to one category.
func (p ReviewListPlan) Filtered() bool {
	return p.Category != ""
}

// OrderBy renders the ORDER BY expression. review_id breaks ties so the
// listing is deterministic.
func (p ReviewListPlan) OrderBy() string {
	dir := "ASC"
	if p.Descending {
		dir = "DESC"
	}
	return p.Column + " " + dir + ", r.review_id " + dir
}

// BuildReviewListQuery validates the listing parameters. Empty values take
// the defaults (created_at, desc). sortBy must be an allow-listed column and
// order must be asc or desc in any letter case; anything else fails with
// ErrInvalidQuery. The category is not checked against known categories.
func BuildReviewListQuery(category, sortBy, order string) (ReviewListPlan, error) {
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	col, ok := reviewSortColumns[sortBy]
	if !ok {
		return ReviewListPlan{}, fmt.Errorf("%w: sort_by %q", ErrInvalidQuery, sortBy)
	}

	if order == "" {
		order = DefaultOrder
	}
	var desc bool
	switch strings.ToLower(order) {
	case "asc":
	case "desc":
		desc = true
	default:
		return ReviewListPlan{}, fmt.Errorf("%w: order %q", ErrInvalidQuery, order)
	}

	return ReviewListPlan{
		Category:   category,
		SortBy:     sortBy,
		Column:     col,
		Descending: desc,
	}, nil
}

// SortKeys returns the accepted sort_by values.
func SortKeys() []string {
	keys := make([]string, 0, len(reviewSortColumns))
	for k := range reviewSortColumns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
