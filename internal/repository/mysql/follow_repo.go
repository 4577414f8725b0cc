package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
)

type FollowRepository struct {
	DB *gorm.DB
}

type OutboxRepository struct {
	DB *gorm.DB
}

type CountReconcilerRepo struct {
	DB *gorm.DB
}

// Pair is one user's cached counters, compared against the edge table
// during reconciliation.
type Pair struct {
	ID             uint64
	FollowingCount int64
	FollowerCount  int64
}

// Follow creates the edge. Strict: a second identical call is a conflict.
// Edge insert, counter adjustment and outbox row commit atomically; the
// unique index backstops concurrent duplicate inserts.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followeeID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		edge := model.Follow{FollowerID: followerID, FolloweeID: followeeID}
		if err := tx.Create(&edge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("already following")
			}
			return err
		}
		if err := adjustCounts(tx, followerID, followeeID, +1); err != nil {
			return err
		}
		return insertOutbox(tx, "follow", followerID, followeeID)
	})
}

// Unfollow deletes the edge if present. Absence is not an error: removal is
// deliberately lenient where creation is strict.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		if err := adjustCounts(tx, followerID, followeeID, -1); err != nil {
			return err
		}
		return insertOutbox(tx, "unfollow", followerID, followeeID)
	})
	return changed, err
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListFollowers returns the actors following userID, joined to their
// display attributes. Store-native order.
func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint64) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Model(&model.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Find(&users).Error
	return users, err
}

// ListFollowing returns the actors userID follows, joined to their display
// attributes.
func (r *FollowRepository) ListFollowing(ctx context.Context, userID uint64) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Model(&model.User{}).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}

// FolloweeIDs returns just the ids userID follows, for feed filtering.
func (r *FollowRepository) FolloweeIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error
	return ids, err
}

func adjustCounts(tx *gorm.DB, followerID, followeeID uint64, delta int64) error {
	if err := tx.Model(&model.User{}).
		Where("id = ?", followerID).
		UpdateColumn("following_count",
			gorm.Expr("CASE WHEN following_count + ? > 0 THEN following_count + ? ELSE 0 END", delta, delta)).
		Error; err != nil {
		return err
	}
	return tx.Model(&model.User{}).
		Where("id = ?", followeeID).
		UpdateColumn("follower_count",
			gorm.Expr("CASE WHEN follower_count + ? > 0 THEN follower_count + ? ELSE 0 END", delta, delta)).
		Error
}

func insertOutbox(tx *gorm.DB, event string, follower, followee uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_id":   uuid.NewString(),
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"follower":   follower,
		"followee":   followee,
	})
	ob := &model.SocialOutbox{
		EventType: event,
		Follower:  follower,
		Followee:  followee,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}

// ListPending returns up to batchSize unsent outbox rows, oldest first.
func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.SocialOutbox, error) {
	var list []model.SocialOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.SocialOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.SocialOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// ListUsers pages through users by id for reconciliation. Returns the batch
// and the cursor for the next one; an empty batch leaves the cursor as-is.
func (r *CountReconcilerRepo) ListUsers(ctx context.Context, batchSize int, lastID uint64) ([]Pair, uint64, error) {
	var list []Pair
	if err := r.DB.WithContext(ctx).Model(&model.User{}).
		Select("id", "following_count", "follower_count").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, err
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

// RealFollowing counts the edges userID actually holds as follower.
func (r *CountReconcilerRepo) RealFollowing(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&n).Error
	return n, err
}

// RealFollowers counts the edges pointing at userID.
func (r *CountReconcilerRepo) RealFollowers(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("followee_id = ?", userID).
		Count(&n).Error
	return n, err
}

func (r *CountReconcilerRepo) FixFollowingCount(ctx context.Context, userID uint64, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("following_count", real).Error
}

func (r *CountReconcilerRepo) FixFollowerCount(ctx context.Context, userID uint64, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("follower_count", real).Error
}
