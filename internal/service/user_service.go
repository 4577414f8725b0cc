package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/mysql"
)

// UserService resolves public profiles. Identity rows are owned by the
// external identity service; nothing here mutates them.
type UserService struct {
	users *mysql.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: &mysql.UserRepository{DB: db}}
}

func (s *UserService) Profile(ctx context.Context, handle string) (*model.User, error) {
	u, err := s.users.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return u, nil
}
