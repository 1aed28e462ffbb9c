package service

import (
	"context"

	"travel-diary/internal/model"
	"travel-diary/internal/repository"
)

// FollowService wraps follow-graph operations. All operations are
// idempotent: repeating a call converges to the same graph state.
type FollowService struct {
	follows *repository.FollowRepository
}

func NewFollowService(follows *repository.FollowRepository) *FollowService {
	return &FollowService{follows: follows}
}

// Follow adds the edge actor->target. Following yourself is rejected;
// an existing edge is a no-op.
func (s *FollowService) Follow(ctx context.Context, actor, target *model.User) error {
	if actor.ID == target.ID {
		return ErrSelfFollow
	}

	exists, err := s.follows.Exists(ctx, actor.ID, target.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.follows.Create(ctx, actor.ID, target.ID)
}

// Unfollow removes the edge actor->target if present.
func (s *FollowService) Unfollow(ctx context.Context, actor, target *model.User) error {
	return s.follows.Delete(ctx, actor.ID, target.ID)
}

func (s *FollowService) IsFollowing(ctx context.Context, actor, target *model.User) (bool, error) {
	return s.follows.Exists(ctx, actor.ID, target.ID)
}

func (s *FollowService) FollowerCount(ctx context.Context, user *model.User) (int64, error) {
	return s.follows.CountFollowers(ctx, user.ID)
}

func (s *FollowService) FollowingCount(ctx context.Context, user *model.User) (int64, error) {
	return s.follows.CountFollowing(ctx, user.ID)
}
