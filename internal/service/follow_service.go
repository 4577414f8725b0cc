package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/mysql"
)

type FollowService struct {
	repo  *mysql.FollowRepository
	users *mysql.UserRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		repo:  &mysql.FollowRepository{DB: db},
		users: &mysql.UserRepository{DB: db},
	}
}

// Follow creates the edge actor -> target. Strict creation: self-follow is
// invalid input, an existing edge is a conflict.
func (s *FollowService) Follow(ctx context.Context, actorID uint64, targetHandle string) error {
	target, err := s.resolveTarget(ctx, targetHandle)
	if err != nil {
		return err
	}
	if actorID == target.ID {
		return apperr.InvalidInput("cannot follow yourself")
	}
	return s.repo.Follow(ctx, actorID, target.ID)
}

// Unfollow removes the edge if present. A missing edge is success, not an
// error; only a missing target is NotFound.
func (s *FollowService) Unfollow(ctx context.Context, actorID uint64, targetHandle string) error {
	target, err := s.resolveTarget(ctx, targetHandle)
	if err != nil {
		return err
	}
	_, err = s.repo.Unfollow(ctx, actorID, target.ID)
	return err
}

func (s *FollowService) IsFollowing(ctx context.Context, actorID, targetID uint64) (bool, error) {
	return s.repo.IsFollowing(ctx, actorID, targetID)
}

func (s *FollowService) ListFollowers(ctx context.Context, targetHandle string) ([]model.User, error) {
	target, err := s.resolveTarget(ctx, targetHandle)
	if err != nil {
		return nil, err
	}
	return s.repo.ListFollowers(ctx, target.ID)
}

func (s *FollowService) ListFollowing(ctx context.Context, targetHandle string) ([]model.User, error) {
	target, err := s.resolveTarget(ctx, targetHandle)
	if err != nil {
		return nil, err
	}
	return s.repo.ListFollowing(ctx, target.ID)
}

func (s *FollowService) resolveTarget(ctx context.Context, handle string) (*model.User, error) {
	target, err := s.users.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return target, nil
}
