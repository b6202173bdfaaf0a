package post

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GeorgeMish/Yatube/internal/shared/db"
)

// Newest orders posts newest-first; id breaks ties between equal pub dates.
// Apply it directly rather than through Scopes so Count can drop the ORDER BY.
func Newest(q *gorm.DB) *gorm.DB { return q.Order("posts.pub_date DESC").Order("posts.id DESC") }

// WithRelations eager-loads author and group.
func WithRelations(q *gorm.DB) *gorm.DB { return q.Preload("Author").Preload("Group") }

type Repository interface {
	Create(ctx context.Context, p *Post) (*Post, error)
	GetByID(ctx context.Context, id uint64) (*Post, error)
	Update(ctx context.Context, p *Post) error
	CountByAuthor(ctx context.Context, authorID uint64) (int64, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint64) error
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(ctx context.Context, p *Post) (*Post, error) {
	if err := r.store.Base.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, errors.Wrap(err, "create post")
	}
	return p, nil
}

func (r *repo) GetByID(ctx context.Context, id uint64) (*Post, error) {
	var p Post
	if err := r.store.Base.WithContext(ctx).Scopes(WithRelations).First(&p, id).Error; err != nil {
		return nil, db.NotFound(err, "post %d", id)
	}
	return &p, nil
}

// Update writes the editable columns only. pub_date is create-only.
func (r *repo) Update(ctx context.Context, p *Post) error {
	err := r.store.Base.WithContext(ctx).Model(&Post{ID: p.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]any{"text": p.Text, "group_id": p.GroupID, "image": p.Image}).Error
	return errors.Wrapf(err, "update post %d", p.ID)
}

func (r *repo) CountByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var n int64
	err := r.store.Base.WithContext(ctx).Model(&Post{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, errors.Wrapf(err, "count posts of %d", authorID)
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.store.Base.WithContext(ctx).Model(&Post{}).Count(&n).Error
	return n, errors.Wrap(err, "count posts")
}

func (r *repo) Delete(ctx context.Context, id uint64) error {
	return errors.Wrapf(r.store.Base.WithContext(ctx).Delete(&Post{}, id).Error, "delete post %d", id)
}
