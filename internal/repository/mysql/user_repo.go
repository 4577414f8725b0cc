package mysql

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/model"
)

// UserRepository is read-only except for the follower/following counters:
// the identity service owns the rows.
type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

// FindByHandle resolves a handle case-insensitively (handles are stored
// lowercase).
func (r *UserRepository) FindByHandle(ctx context.Context, handle string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).
		Where("handle = ?", strings.ToLower(handle)).
		First(&user).Error
	return &user, err
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []uint64) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}
