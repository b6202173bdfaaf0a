package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/GeorgeMish/Yatube/internal/comment"
	"github.com/GeorgeMish/Yatube/internal/follow"
	"github.com/GeorgeMish/Yatube/internal/group"
	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/db"
	"github.com/GeorgeMish/Yatube/internal/user"
)

type Options struct {
	Users           int
	Groups          int
	PostsPerUser    int
	CommentsPerPost int
	// Seed makes runs reproducible; 0 picks one from the clock.
	Seed int64
}

type Summary struct {
	Users, Groups, Posts, Comments, Follows int
}

// Run fills the database with fake users, groups, posts, comments and
// follows. Usernames and slugs carry a suffix derived from the seed, so runs
// with different seeds can share a database.
func Run(ctx context.Context, store *db.Store, o Options) (Summary, error) {
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	f := gofakeit.New(o.Seed)
	run := f.LetterN(5)
	var sum Summary

	users := user.NewRepository(store)
	groups := group.NewRepository(store)
	posts := post.NewRepository(store)
	comments := comment.NewRepository(store)
	follows := follow.NewRepository(store)

	var us []*user.User
	for i := 0; i < o.Users; i++ {
		u, err := users.Create(ctx, &user.User{
			Username:  strings.ToLower(fmt.Sprintf("%s_%s%d", f.Username(), run, i)),
			Email:     f.Email(),
			FirstName: f.FirstName(),
			LastName:  f.LastName(),
		})
		if err != nil {
			return sum, err
		}
		us = append(us, u)
		sum.Users++
	}

	var gs []*group.Group
	for i := 0; i < o.Groups; i++ {
		word := f.BuzzWord()
		g, err := groups.Create(ctx, &group.Group{
			Title:       word,
			Slug:        fmt.Sprintf("%s-%s%d", slugify(word), strings.ToLower(run), i),
			Description: f.Sentence(12),
		})
		if err != nil {
			return sum, err
		}
		gs = append(gs, g)
		sum.Groups++
	}

	end := time.Now()
	start := end.AddDate(0, -6, 0)
	for _, u := range us {
		for i := 0; i < o.PostsPerUser; i++ {
			p := &post.Post{
				Text:     f.Paragraph(1, f.Number(1, 4), 12, " "),
				AuthorID: u.ID,
				PubDate:  f.DateRange(start, end),
			}
			if len(gs) > 0 && f.Bool() {
				p.GroupID = &gs[f.Number(0, len(gs)-1)].ID
			}
			if _, err := posts.Create(ctx, p); err != nil {
				return sum, err
			}
			sum.Posts++

			for c := 0; c < o.CommentsPerPost; c++ {
				author := us[f.Number(0, len(us)-1)]
				if _, err := comments.Create(ctx, &comment.Comment{
					PostID:   &p.ID,
					AuthorID: author.ID,
					Text:     f.Sentence(f.Number(3, 10)),
					Created:  f.DateRange(p.PubDate, end),
				}); err != nil {
					return sum, err
				}
				sum.Comments++
			}
		}
	}

	for _, u := range us {
		for _, a := range us {
			if u.ID == a.ID || !f.Bool() {
				continue
			}
			created, err := follows.Create(ctx, u.ID, a.ID)
			if err != nil {
				return sum, errors.Wrap(err, "seed follow")
			}
			if created {
				sum.Follows++
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"users": sum.Users, "groups": sum.Groups, "posts": sum.Posts,
		"comments": sum.Comments, "follows": sum.Follows,
	}).Info("seeded")
	return sum, nil
}

func slugify(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, s)
}
