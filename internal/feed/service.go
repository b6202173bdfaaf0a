package feed

import (
	"context"

	"github.com/GeorgeMish/Yatube/internal/comment"
	"github.com/GeorgeMish/Yatube/internal/follow"
	"github.com/GeorgeMish/Yatube/internal/group"
	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/paginate"
	"github.com/GeorgeMish/Yatube/internal/user"
)

type Service interface {
	Index(ctx context.Context, page int) (*Page, error)
	// Group fails with httpx.ErrNotFound for an unknown slug.
	Group(ctx context.Context, slug string, page int) (*GroupFeed, error)
	// Profile reports whether viewerID follows the author; 0 is anonymous.
	Profile(ctx context.Context, username string, viewerID uint64, page int) (*ProfileFeed, error)
	Following(ctx context.Context, viewerID uint64, page int) (*Page, error)
	Detail(ctx context.Context, postID uint64) (*Detail, error)
}

type Deps struct {
	Repo     Repository
	Users    user.Repository
	Groups   group.Repository
	Posts    post.Repository
	Comments comment.Repository
	Follows  follow.Service
	PageSize int
}

type service struct{ Deps }

func NewService(d Deps) Service {
	if d.PageSize < 1 {
		d.PageSize = paginate.PageSize
	}
	return &service{d}
}

func (s *service) Index(ctx context.Context, page int) (*Page, error) {
	return s.Repo.Posts(ctx, Filter{}, page, s.PageSize)
}

func (s *service) Group(ctx context.Context, slug string, page int) (*GroupFeed, error) {
	g, err := s.Groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.Posts(ctx, Filter{GroupID: g.ID}, page, s.PageSize)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: g, Page: p}, nil
}

func (s *service) Profile(ctx context.Context, username string, viewerID uint64, page int) (*ProfileFeed, error) {
	author, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.Posts(ctx, Filter{AuthorID: author.ID}, page, s.PageSize)
	if err != nil {
		return nil, err
	}
	following, err := s.Follows.IsFollowing(ctx, viewerID, author.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileFeed{Author: author, FullName: author.FullName(), Count: p.Total, Following: following, Page: p}, nil
}

func (s *service) Following(ctx context.Context, viewerID uint64, page int) (*Page, error) {
	return s.Repo.Posts(ctx, Filter{FollowerID: viewerID}, page, s.PageSize)
}

func (s *service) Detail(ctx context.Context, postID uint64) (*Detail, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.Comments.ListByPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	n, err := s.Posts.CountByAuthor(ctx, p.AuthorID)
	if err != nil {
		return nil, err
	}
	return &Detail{Post: p, Comments: comments, Count: n}, nil
}
