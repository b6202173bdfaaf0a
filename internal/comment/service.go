package comment

import (
	"context"
	"strings"
	"time"

	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/validate"
	"github.com/GeorgeMish/Yatube/internal/user"
)

type Service interface {
	// Add stores a comment on the post. An invalid input returns the field
	// errors and stores nothing; an unknown post is httpx.ErrNotFound.
	Add(ctx context.Context, author *user.User, postID uint64, in Input) (*Comment, error)
	ListByPost(ctx context.Context, postID uint64) ([]Comment, error)
}

type service struct {
	repo  Repository
	posts post.Repository
	now   func() time.Time
}

func NewService(r Repository, posts post.Repository) Service {
	return &service{repo: r, posts: posts, now: time.Now}
}

func (s *service) Add(ctx context.Context, author *user.User, postID uint64, in Input) (*Comment, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	in.Text = strings.TrimSpace(in.Text)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	c := &Comment{PostID: &p.ID, AuthorID: author.ID, Text: in.Text, Created: s.now()}
	if _, err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Author = author
	return c, nil
}

func (s *service) ListByPost(ctx context.Context, postID uint64) ([]Comment, error) {
	return s.repo.ListByPost(ctx, postID)
}
