package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/model"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, id).Error
	return &post, err
}

// DeleteByCreator hard-deletes the post only when operatorID is its direct
// author, as a single conditional statement. The reaction rows go with it.
// Returns the number of posts removed (0 or 1).
func (r *PostRepository) DeleteByCreator(ctx context.Context, postID, operatorID uint64) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND created_by_id = ?", postID, operatorID).
			Delete(&model.Post{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("post_id = ?", postID).Delete(&model.PostReaction{}).Error
	})
	return affected, err
}

// ListAll returns every post, newest first. The feed surface is unbounded.
func (r *PostRepository) ListAll(ctx context.Context) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// ListPopular returns every post ordered by like count, ties broken by
// recency then id so the order is deterministic.
func (r *PostRepository) ListPopular(ctx context.Context) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).
		Order("like_count DESC, created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// ListByUserAuthors returns user-authored posts whose author is in ids,
// newest first. Backs the friends feed.
func (r *PostRepository) ListByUserAuthors(ctx context.Context, ids []uint64) ([]model.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []model.Post
	err := r.DB.WithContext(ctx).
		Where("author_kind = ? AND author_id IN ?", model.AuthorUser, ids).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// BackfillAuthorKind stamps rows that predate the author-kind column as
// user-authored. Runs once at boot so read paths stay free of legacy
// branches.
func (r *PostRepository) BackfillAuthorKind(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("author_kind IS NULL OR author_kind = ''").
		Update("author_kind", model.AuthorUser)
	return res.RowsAffected, res.Error
}
