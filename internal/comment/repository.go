package comment

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"github.com/GeorgeMish/Yatube/internal/shared/db"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) (*Comment, error)
	// ListByPost returns the comments of a post newest-first with authors.
	ListByPost(ctx context.Context, postID uint64) ([]Comment, error)
	CountByPost(ctx context.Context, postID uint64) (int64, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(ctx context.Context, c *Comment) (*Comment, error) {
	if err := r.store.Base.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, errors.Wrap(err, "create comment")
	}
	return c, nil
}

func (r *repo) ListByPost(ctx context.Context, postID uint64) ([]Comment, error) {
	out := []Comment{}
	err := r.store.Base.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created DESC").Order("id DESC").
		Find(&out).Error
	return out, errors.Wrapf(err, "comments of post %d", postID)
}

func (r *repo) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := r.store.Base.WithContext(ctx).Model(&Comment{}).Where("post_id = ?", postID).Count(&n).Error
	return n, errors.Wrapf(err, "count comments of post %d", postID)
}
