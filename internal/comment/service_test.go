package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GeorgeMish/Yatube/internal/comment"
	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/dbtest"
	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/shared/validate"
	"github.com/GeorgeMish/Yatube/internal/user"
)

func TestAdd(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)
	repo := comment.NewRepository(store)
	posts := post.NewRepository(store)
	svc := comment.NewService(repo, posts)

	leo := dbtest.User(t, store, "leo")
	anna := dbtest.User(t, store, "anna")
	p := dbtest.Post(t, store, leo, nil, "a post", time.Now())

	t.Run("valid comment", func(t *testing.T) {
		c, err := svc.Add(ctx, anna, p.ID, comment.Input{Text: " nice "})
		require.NoError(t, err)
		require.Equal(t, "nice", c.Text)

		n, err := repo.CountByPost(ctx, p.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		list, err := svc.ListByPost(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "anna", list[0].Author.Username)
		require.Equal(t, "nice", list[0].Text)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		_, err := svc.Add(ctx, anna, p.ID, comment.Input{Text: "  "})
		_, ok := validate.AsErrors(err)
		require.True(t, ok)

		n, err := repo.CountByPost(ctx, p.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.Add(ctx, anna, 9999, comment.Input{Text: "hi"})
		require.ErrorIs(t, err, httpx.ErrNotFound)
	})
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)
	repo := comment.NewRepository(store)
	leo := dbtest.User(t, store, "leo")
	p := dbtest.Post(t, store, leo, nil, "a post", time.Now())

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, &comment.Comment{PostID: &p.ID, AuthorID: leo.ID, Text: text, Created: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	list, err := repo.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "third", list[0].Text)
	require.Equal(t, "first", list[2].Text)
}

func TestCascade(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)
	repo := comment.NewRepository(store)
	leo := dbtest.User(t, store, "leo")
	anna := dbtest.User(t, store, "anna")
	p := dbtest.Post(t, store, leo, nil, "a post", time.Now())
	for _, author := range []*user.User{leo, anna} {
		_, err := repo.Create(ctx, &comment.Comment{PostID: &p.ID, AuthorID: author.ID, Text: "hi"})
		require.NoError(t, err)
	}

	t.Run("author deletion", func(t *testing.T) {
		require.NoError(t, user.NewRepository(store).Delete(ctx, anna.ID))
		n, err := repo.CountByPost(ctx, p.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("post deletion", func(t *testing.T) {
		require.NoError(t, post.NewRepository(store).Delete(ctx, p.ID))
		n, err := repo.CountByPost(ctx, p.ID)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func TestString(t *testing.T) {
	require.Equal(t, "a long comment ", comment.Comment{Text: "a long comment text"}.String())
}
