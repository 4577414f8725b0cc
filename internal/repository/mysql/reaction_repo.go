package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/model"
)

type ReactionRepository struct {
	DB *gorm.DB
}

func countColumn(kind string) string {
	switch kind {
	case model.ReactionFire:
		return "fire_count"
	case model.ReactionWow:
		return "wow_count"
	default:
		return "like_count"
	}
}

// Toggle flips the actor's membership in one reaction set of one post.
// Delete-then-insert inside a single transaction: the conditional delete is
// the membership test, so check and mutation are one unit of work, and the
// unique index absorbs a racing duplicate insert. Returns the membership
// state after the flip and the new counter value.
func (r *ReactionRepository) Toggle(ctx context.Context, userID, postID uint64, kind string) (bool, int64, error) {
	var (
		reacted bool
		count   int64
	)
	col := countColumn(kind)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			return err
		}

		res := tx.Where("post_id = ? AND user_id = ? AND kind = ?", postID, userID, kind).
			Delete(&model.PostReaction{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			reacted = false
			if err := tx.Model(&model.Post{}).Where("id = ?", postID).
				UpdateColumn(col, gorm.Expr("CASE WHEN "+col+" > 0 THEN "+col+" - 1 ELSE 0 END")).
				Error; err != nil {
				return err
			}
		} else {
			err := tx.Create(&model.PostReaction{PostID: postID, UserID: userID, Kind: kind}).Error
			if err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Raced with an identical toggle; the row is there, so
					// the actor ends up reacted either way.
					reacted = true
					return tx.Model(&model.Post{}).Select(col).Where("id = ?", postID).
						Scan(&count).Error
				}
				return err
			}
			reacted = true
			if err := tx.Model(&model.Post{}).Where("id = ?", postID).
				UpdateColumn(col, gorm.Expr(col+" + 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Post{}).Select(col).Where("id = ?", postID).
			Scan(&count).Error
	})
	return reacted, count, err
}

// Count reads the counter column for one kind of one post.
func (r *ReactionRepository) Count(ctx context.Context, postID uint64, kind string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Select(countColumn(kind)).
		Where("id = ?", postID).
		Scan(&count).Error
	return count, err
}

func (r *ReactionRepository) HasReacted(ctx context.Context, userID, postID uint64, kind string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.PostReaction{}).
		Where("post_id = ? AND user_id = ? AND kind = ?", postID, userID, kind).
		Count(&n).Error
	return n > 0, err
}

// ViewerReactions returns every reaction the viewer holds on the given
// posts, for feed personalization.
func (r *ReactionRepository) ViewerReactions(ctx context.Context, viewerID uint64, postIDs []uint64) ([]model.PostReaction, error) {
	if viewerID == 0 || len(postIDs) == 0 {
		return nil, nil
	}
	var rows []model.PostReaction
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", viewerID, postIDs).
		Find(&rows).Error
	return rows, err
}
