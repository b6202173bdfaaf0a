package follow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GeorgeMish/Yatube/internal/follow"
	"github.com/GeorgeMish/Yatube/internal/shared/dbtest"
	"github.com/GeorgeMish/Yatube/internal/user"
)

func TestFollow(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)
	repo := follow.NewRepository(store)
	svc := follow.NewService(repo)
	leo := dbtest.User(t, store, "leo")
	anna := dbtest.User(t, store, "anna")

	count := func() int64 {
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		return n
	}

	t.Run("first follow creates", func(t *testing.T) {
		created, err := svc.Follow(ctx, anna, leo)
		require.NoError(t, err)
		require.True(t, created)
		require.EqualValues(t, 1, count())

		ok, err := svc.IsFollowing(ctx, anna.ID, leo.ID)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("repeat follow is a no-op", func(t *testing.T) {
		created, err := svc.Follow(ctx, anna, leo)
		require.NoError(t, err)
		require.False(t, created)
		require.EqualValues(t, 1, count())
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		created, err := svc.Follow(ctx, leo, leo)
		require.NoError(t, err)
		require.False(t, created)
		require.EqualValues(t, 1, count())
	})

	t.Run("duplicate insert is absorbed by the unique index", func(t *testing.T) {
		created, err := repo.Create(ctx, anna.ID, leo.ID)
		require.NoError(t, err)
		require.False(t, created)
		require.EqualValues(t, 1, count())
	})

	t.Run("anonymous viewer follows nobody", func(t *testing.T) {
		ok, err := svc.IsFollowing(ctx, 0, leo.ID)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unfollow", func(t *testing.T) {
		removed, err := svc.Unfollow(ctx, leo, anna)
		require.NoError(t, err)
		require.False(t, removed)
		require.EqualValues(t, 1, count())

		removed, err = svc.Unfollow(ctx, anna, leo)
		require.NoError(t, err)
		require.True(t, removed)
		require.Zero(t, count())
	})
}

func TestUserDeleteCascadesFollows(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)
	repo := follow.NewRepository(store)
	leo := dbtest.User(t, store, "leo")
	anna := dbtest.User(t, store, "anna")
	ivan := dbtest.User(t, store, "ivan")

	for _, author := range []*user.User{leo, anna} {
		_, err := repo.Create(ctx, ivan.ID, author.ID)
		require.NoError(t, err)
	}

	require.NoError(t, user.NewRepository(store).Delete(ctx, leo.ID))
	ok, err := repo.Exists(ctx, ivan.ID, leo.ID)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = repo.Exists(ctx, ivan.ID, anna.ID)
	require.NoError(t, err)
	require.True(t, ok)
}
