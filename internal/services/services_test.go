package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HerbHall/boardreviews/internal/services"
	"github.com/HerbHall/boardreviews/internal/store"
	"github.com/HerbHall/boardreviews/internal/testutil"
)

// newRepos returns repositories over a freshly seeded in-memory store.
func newRepos(t *testing.T) *services.Repositories {
	t.Helper()
	return services.NewRepositories(store.NewConn(testutil.NewStore(t)))
}

func TestCategoryRepository_List(t *testing.T) {
	repos := newRepos(t)

	cats, err := repos.Categories.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, testutil.CategoryCount)

	for _, c := range cats {
		require.NotEmpty(t, c.Slug)
		require.NotEmpty(t, c.Description)
	}
	require.Equal(t, "children's games", cats[0].Slug)
}

func TestCategoryRepository_ListEmpty(t *testing.T) {
	repos := services.NewRepositories(store.NewConn(testutil.NewEmptyStore(t)))

	cats, err := repos.Categories.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cats)
	require.Empty(t, cats)
}

func TestUserRepository_List(t *testing.T) {
	repos := newRepos(t)

	users, err := repos.Users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, testutil.UserCount)

	names := make([]string, 0, len(users))
	for _, u := range users {
		require.NotEmpty(t, u.Name)
		require.NotEmpty(t, u.AvatarURL)
		names = append(names, u.Username)
	}
	require.Equal(t, []string{"bainesface", "dav3rid", "mallionaire", "philippaclaire9"}, names)
}
