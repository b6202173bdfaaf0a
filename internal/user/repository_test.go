package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/dbtest"
	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/user"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)
	repo := user.NewRepository(store)

	u, err := repo.Create(ctx, &user.User{Username: "leo", FirstName: "Leo", LastName: "Tolstoy"})
	require.NoError(t, err)
	require.NotZero(t, u.ID)

	got, err := repo.GetByUsername(ctx, "leo")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "Leo Tolstoy", got.FullName())

	_, err = repo.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, httpx.ErrNotFound)
	_, err = repo.GetByID(ctx, 12345)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteCascadesToPosts(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)
	author := dbtest.User(t, store, "leo")
	p := dbtest.Post(t, store, author, nil, "text", time.Now())

	require.NoError(t, user.NewRepository(store).Delete(ctx, author.ID))

	_, err := post.NewRepository(store).GetByID(ctx, p.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestProfileURL(t *testing.T) {
	require.Equal(t, "/profile/leo/", user.ProfileURL("leo"))
	require.Equal(t, "/profile/a%20b/", user.ProfileURL("a b"))
}

func TestFullNameFallsBackToUsername(t *testing.T) {
	require.Equal(t, "leo", user.User{Username: "leo"}.FullName())
	require.Equal(t, "Leo", user.User{Username: "leo", FirstName: "Leo"}.FullName())
}
