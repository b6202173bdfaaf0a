package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/GeorgeMish/Yatube/internal/shared/db"
)

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id uint64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Delete(ctx context.Context, id uint64) error
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(ctx context.Context, u *User) (*User, error) {
	if err := r.store.Base.WithContext(ctx).Create(u).Error; err != nil {
		return nil, errors.Wrapf(err, "create user %q", u.Username)
	}
	return u, nil
}

func (r *repo) GetByID(ctx context.Context, id uint64) (*User, error) {
	var u User
	if err := r.store.Base.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, db.NotFound(err, "user %d", id)
	}
	return &u, nil
}

func (r *repo) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := r.store.Base.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, db.NotFound(err, "user %q", username)
	}
	return &u, nil
}

// Delete removes the user; posts, comments and follows go with it through
// ON DELETE CASCADE.
func (r *repo) Delete(ctx context.Context, id uint64) error {
	return errors.Wrapf(r.store.Base.WithContext(ctx).Delete(&User{}, id).Error, "delete user %d", id)
}
