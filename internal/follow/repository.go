package follow

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GeorgeMish/Yatube/internal/shared/db"
)

type Repository interface {
	Exists(ctx context.Context, userID, authorID uint64) (bool, error)
	// Create inserts the pair. created is false when it already existed.
	Create(ctx context.Context, userID, authorID uint64) (created bool, err error)
	// Delete removes the pair. removed is false when there was nothing to remove.
	Delete(ctx context.Context, userID, authorID uint64) (removed bool, err error)
	Count(ctx context.Context) (int64, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Exists(ctx context.Context, userID, authorID uint64) (bool, error) {
	var n int64
	err := r.store.Base.WithContext(ctx).Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Limit(1).Count(&n).Error
	return n > 0, errors.Wrap(err, "follow exists")
}

func (r *repo) Create(ctx context.Context, userID, authorID uint64) (bool, error) {
	f := &Follow{UserID: userID, AuthorID: authorID}
	err := r.store.Base.WithContext(ctx).Omit(clause.Associations).Create(f).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return false, nil
	default:
		return false, errors.Wrapf(err, "follow %d -> %d", userID, authorID)
	}
}

func (r *repo) Delete(ctx context.Context, userID, authorID uint64) (bool, error) {
	res := r.store.Base.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&Follow{})
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "unfollow %d -> %d", userID, authorID)
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.store.Base.WithContext(ctx).Model(&Follow{}).Count(&n).Error
	return n, errors.Wrap(err, "count follows")
}
