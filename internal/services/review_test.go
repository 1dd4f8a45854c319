package services_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/boardreviews/internal/query"
	"github.com/HerbHall/boardreviews/internal/services"
	"github.com/HerbHall/boardreviews/internal/store"
	"github.com/HerbHall/boardreviews/internal/testutil"
	"github.com/HerbHall/boardreviews/pkg/models"
)

func mustPlan(t *testing.T, category, sortBy, order string) query.ReviewListPlan {
	t.Helper()
	plan, err := query.BuildReviewListQuery(category, sortBy, order)
	require.NoError(t, err)
	return plan
}

func TestReviewRepository_Get(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	got, err := repos.Reviews.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReviewID)
	assert.Equal(t, "Jenga", got.Title)
	assert.Equal(t, "Leslie Scott", got.Designer)
	assert.Equal(t, "philippaclaire9", got.Owner)
	assert.Equal(t, "dexterity", got.Category)
	assert.Equal(t, 5, got.Votes)
	assert.Equal(t, 3, got.CommentCount)
	assert.Equal(t, 2021, got.CreatedAt.Year())
}

func TestReviewRepository_GetCommentCount(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	tests := []struct {
		id   int
		want int
	}{
		{id: 1, want: 0},
		{id: 3, want: 3},
		{id: 12, want: 0},
	}
	for _, tt := range tests {
		got, err := repos.Reviews.Get(ctx, tt.id)
		require.NoError(t, err)
		assert.Equalf(t, tt.want, got.CommentCount, "review %d comment_count", tt.id)
	}
}

func TestReviewRepository_GetIsStable(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	first, err := repos.Reviews.Get(ctx, 3)
	require.NoError(t, err)
	second, err := repos.Reviews.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReviewRepository_GetMissing(t *testing.T) {
	repos := newRepos(t)

	_, err := repos.Reviews.Get(context.Background(), 15)
	require.ErrorIs(t, err, services.ErrReviewNotFound)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestReviewRepository_ListDefault(t *testing.T) {
	repos := newRepos(t)

	reviews, err := repos.Reviews.List(context.Background(), mustPlan(t, "", "", ""))
	require.NoError(t, err)
	require.Len(t, reviews, testutil.ReviewCount)

	assert.True(t, sort.SliceIsSorted(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	}), "reviews not sorted by created_at descending")
	assert.Equal(t, 7, reviews[0].ReviewID)
	assert.Equal(t, 13, reviews[len(reviews)-1].ReviewID)
}

func TestReviewRepository_ListByCategory(t *testing.T) {
	repos := newRepos(t)

	reviews, err := repos.Reviews.List(context.Background(), mustPlan(t, "dexterity", "", ""))
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Jenga", reviews[0].Title)
	assert.Equal(t, 3, reviews[0].CommentCount)

	reviews, err = repos.Reviews.List(context.Background(), mustPlan(t, "social deduction", "", ""))
	require.NoError(t, err)
	require.Len(t, reviews, 11)
	for _, r := range reviews {
		assert.Equal(t, "social deduction", r.Category)
	}
}

func TestReviewRepository_ListEmptyCategory(t *testing.T) {
	repos := newRepos(t)

	reviews, err := repos.Reviews.List(context.Background(), mustPlan(t, "children's games", "", ""))
	require.NoError(t, err)
	require.NotNil(t, reviews)
	require.Empty(t, reviews)
}

func TestReviewRepository_ListUnknownCategory(t *testing.T) {
	repos := newRepos(t)

	_, err := repos.Reviews.List(context.Background(), mustPlan(t, "tabletop", "", ""))
	require.ErrorIs(t, err, services.ErrNotFound)
	require.False(t, errors.Is(err, services.ErrReviewNotFound))
}

func TestReviewRepository_ListUnfilteredEmptyStore(t *testing.T) {
	repos := services.NewRepositories(store.NewConn(testutil.NewEmptyStore(t)))

	reviews, err := repos.Reviews.List(context.Background(), mustPlan(t, "", "", ""))
	require.NoError(t, err)
	require.NotNil(t, reviews)
	require.Empty(t, reviews)
}

func TestReviewRepository_ListSorted(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	tests := []struct {
		sortBy, order string
		less          func(a, b models.ReviewDetail) bool
	}{
		{"votes", "asc", func(a, b models.ReviewDetail) bool { return a.Votes <= b.Votes }},
		{"votes", "desc", func(a, b models.ReviewDetail) bool { return a.Votes >= b.Votes }},
		{"comment_count", "desc", func(a, b models.ReviewDetail) bool { return a.CommentCount >= b.CommentCount }},
		{"review_id", "asc", func(a, b models.ReviewDetail) bool { return a.ReviewID < b.ReviewID }},
		{"title", "asc", func(a, b models.ReviewDetail) bool { return a.Title <= b.Title }},
		{"owner", "DESC", func(a, b models.ReviewDetail) bool { return strings.Compare(a.Owner, b.Owner) >= 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy+"_"+tt.order, func(t *testing.T) {
			reviews, err := repos.Reviews.List(ctx, mustPlan(t, "", tt.sortBy, tt.order))
			require.NoError(t, err)
			require.Len(t, reviews, testutil.ReviewCount)
			for i := 1; i < len(reviews); i++ {
				assert.Truef(t, tt.less(reviews[i-1], reviews[i]),
					"rows %d and %d out of order for %s %s", i-1, i, tt.sortBy, tt.order)
			}
		})
	}
}

func TestReviewRepository_ListCommentCountOrder(t *testing.T) {
	repos := newRepos(t)

	reviews, err := repos.Reviews.List(context.Background(), mustPlan(t, "", "comment_count", "desc"))
	require.NoError(t, err)
	// Reviews 2 and 3 both have three comments; ties break on review_id.
	assert.Equal(t, 3, reviews[0].ReviewID)
	assert.Equal(t, 2, reviews[1].ReviewID)
	assert.Equal(t, 0, reviews[2].CommentCount)
}

func TestReviewRepository_UpdateVotes(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	got, err := repos.Reviews.UpdateVotes(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReviewID)
	assert.Equal(t, "Jenga", got.Title)
	assert.Equal(t, 6, got.Votes)
	assert.False(t, got.CreatedAt.IsZero())

	got, err = repos.Reviews.UpdateVotes(ctx, 2, -10)
	require.NoError(t, err)
	assert.Equal(t, -4, got.Votes)

	detail, err := repos.Reviews.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, -4, detail.Votes)
}

func TestReviewRepository_UpdateVotesZeroDelta(t *testing.T) {
	repos := newRepos(t)

	got, err := repos.Reviews.UpdateVotes(context.Background(), 12, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Votes)
}

func TestReviewRepository_UpdateVotesMissing(t *testing.T) {
	repos := newRepos(t)

	_, err := repos.Reviews.UpdateVotes(context.Background(), 15, 1)
	require.ErrorIs(t, err, services.ErrReviewNotFound)
}
