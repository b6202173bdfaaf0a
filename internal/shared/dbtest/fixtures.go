package dbtest

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"

	"github.com/GeorgeMish/Yatube/internal/group"
	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/db"
	"github.com/GeorgeMish/Yatube/internal/user"
)

func User(t testing.TB, s *db.Store, username string) *user.User {
	t.Helper()
	u := &user.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, s.Base.Create(u).Error)
	return u
}

func Group(t testing.TB, s *db.Store, slug string) *group.Group {
	t.Helper()
	g := &group.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, s.Base.Create(g).Error)
	return g
}

// Post stores a post published at pub; a nil g leaves it without a group.
func Post(t testing.TB, s *db.Store, author *user.User, g *group.Group, text string, pub time.Time) *post.Post {
	t.Helper()
	p := &post.Post{Text: text, AuthorID: author.ID, PubDate: pub}
	if g != nil {
		p.GroupID = &g.ID
	}
	require.NoError(t, s.Base.Omit(clause.Associations).Create(p).Error)
	return p
}

// Posts stores n posts one minute apart, the last one newest.
func Posts(t testing.TB, s *db.Store, author *user.User, g *group.Group, n int) []*post.Post {
	t.Helper()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	out := make([]*post.Post, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Post(t, s, author, g, "post number "+strconv.Itoa(i+1), base.Add(time.Duration(i)*time.Minute)))
	}
	return out
}
