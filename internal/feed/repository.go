package feed

import (
	"context"

	"github.com/pkg/errors"

	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/db"
	"github.com/GeorgeMish/Yatube/internal/shared/paginate"
)

type Repository interface {
	// Posts returns one page of the filtered posts, newest first, with
	// author and group loaded.
	Posts(ctx context.Context, f Filter, page, size int) (*Page, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Posts(ctx context.Context, f Filter, page, size int) (*Page, error) {
	q := r.store.Base.WithContext(ctx).Model(&post.Post{})
	if f.GroupID != 0 {
		q = q.Where("posts.group_id = ?", f.GroupID)
	}
	if f.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.FollowerID != 0 {
		q = q.Joins("JOIN follows ON follows.author_id = posts.author_id").
			Where("follows.user_id = ?", f.FollowerID)
	}
	p, err := paginate.Paginate[post.Post](post.Newest(q), page, size, post.WithRelations)
	return p, errors.Wrap(err, "feed posts")
}
