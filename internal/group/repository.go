package group

import (
	"context"

	"github.com/pkg/errors"

	"github.com/GeorgeMish/Yatube/internal/shared/db"
)

type Repository interface {
	Create(ctx context.Context, g *Group) (*Group, error)
	GetByID(ctx context.Context, id uint64) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)
	List(ctx context.Context) ([]Group, error)
	Delete(ctx context.Context, id uint64) error
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(ctx context.Context, g *Group) (*Group, error) {
	if err := r.store.Base.WithContext(ctx).Create(g).Error; err != nil {
		return nil, errors.Wrapf(err, "create group %q", g.Slug)
	}
	return g, nil
}

func (r *repo) GetByID(ctx context.Context, id uint64) (*Group, error) {
	var g Group
	if err := r.store.Base.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, db.NotFound(err, "group %d", id)
	}
	return &g, nil
}

func (r *repo) GetBySlug(ctx context.Context, slug string) (*Group, error) {
	var g Group
	if err := r.store.Base.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, db.NotFound(err, "group %q", slug)
	}
	return &g, nil
}

// List returns every group ordered by title; it backs the group choices of
// the post form.
func (r *repo) List(ctx context.Context) ([]Group, error) {
	var out []Group
	if err := r.store.Base.WithContext(ctx).Order("title").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list groups")
	}
	return out, nil
}

// Delete removes the group. Its posts stay, with group_id set to NULL.
func (r *repo) Delete(ctx context.Context, id uint64) error {
	return errors.Wrapf(r.store.Base.WithContext(ctx).Delete(&Group{}, id).Error, "delete group %d", id)
}
