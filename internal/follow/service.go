package follow

import (
	"context"

	"github.com/GeorgeMish/Yatube/internal/user"
)

type Service interface {
	// Follow makes follower receive author's posts. Following yourself or an
	// author already followed changes nothing.
	Follow(ctx context.Context, follower, author *user.User) (bool, error)
	// Unfollow is a no-op when follower does not follow author.
	Unfollow(ctx context.Context, follower, author *user.User) (bool, error)
	IsFollowing(ctx context.Context, followerID, authorID uint64) (bool, error)
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

func (s *service) Follow(ctx context.Context, follower, author *user.User) (bool, error) {
	if follower.ID == author.ID {
		return false, nil
	}
	exists, err := s.repo.Exists(ctx, follower.ID, author.ID)
	if err != nil || exists {
		return false, err
	}
	// a concurrent follow may still win the insert; the unique index turns
	// that into created == false
	return s.repo.Create(ctx, follower.ID, author.ID)
}

func (s *service) Unfollow(ctx context.Context, follower, author *user.User) (bool, error) {
	return s.repo.Delete(ctx, follower.ID, author.ID)
}

func (s *service) IsFollowing(ctx context.Context, followerID, authorID uint64) (bool, error) {
	if followerID == 0 {
		return false, nil
	}
	return s.repo.Exists(ctx, followerID, authorID)
}
