package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
)

type ClubRepository struct {
	DB *gorm.DB
}

// Create inserts the club and its creator membership in one transaction,
// so "creator is a member" holds from the first visible moment. A taken
// handle surfaces as a conflict.
func (r *ClubRepository) Create(ctx context.Context, club *model.Club) error {
	club.Handle = strings.ToLower(club.Handle)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(club).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("handle already taken")
			}
			return err
		}
		return tx.Create(&model.ClubMember{
			ClubID: club.ID,
			UserID: club.CreatorID,
		}).Error
	})
}

func (r *ClubRepository) FindByID(ctx context.Context, id uint64) (*model.Club, error) {
	var club model.Club
	err := r.DB.WithContext(ctx).First(&club, id).Error
	return &club, err
}

func (r *ClubRepository) FindByHandle(ctx context.Context, handle string) (*model.Club, error) {
	var club model.Club
	err := r.DB.WithContext(ctx).
		Where("handle = ?", strings.ToLower(handle)).
		First(&club).Error
	return &club, err
}

func (r *ClubRepository) List(ctx context.Context) ([]model.Club, error) {
	var list []model.Club
	err := r.DB.WithContext(ctx).Order("id DESC").Find(&list).Error
	return list, err
}

func (r *ClubRepository) ListByIDs(ctx context.Context, ids []uint64) ([]model.Club, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []model.Club
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

// Delete removes the club record and its membership rows. Posts authored by
// the club are left in place; feeds resolve them to a placeholder author.
func (r *ClubRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("club_id = ?", id).Delete(&model.ClubMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Club{}, id).Error
	})
}

// UpdateAppearance replaces the appearance sub-record wholesale.
func (r *ClubRepository) UpdateAppearance(ctx context.Context, id uint64, showCreator bool) error {
	return r.DB.WithContext(ctx).Model(&model.Club{}).Where("id = ?", id).
		Update("show_creator", showCreator).Error
}

// UpdateActionButton replaces the call-to-action sub-record wholesale.
// Empty kind clears the button.
func (r *ClubRepository) UpdateActionButton(ctx context.Context, id uint64, kind, value, label string) error {
	return r.DB.WithContext(ctx).Model(&model.Club{}).Where("id = ?", id).
		Updates(map[string]any{
			"action_kind":  kind,
			"action_value": value,
			"action_label": label,
		}).Error
}

func (r *ClubRepository) SetAvatar(ctx context.Context, id uint64, url string) error {
	return r.DB.WithContext(ctx).Model(&model.Club{}).Where("id = ?", id).
		Update("avatar_url", url).Error
}

type ClubMemberRepository struct {
	DB *gorm.DB
}

// Join appends the actor to the member set. Strict: joining twice is a
// conflict, enforced by the (club_id, user_id) unique index.
func (r *ClubMemberRepository) Join(ctx context.Context, clubID, userID uint64) error {
	err := r.DB.WithContext(ctx).Create(&model.ClubMember{
		ClubID: clubID,
		UserID: userID,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("already a member")
	}
	return err
}

// Leave removes the membership row if present; absence is a no-op. The
// creator guard lives in the service, above this call.
func (r *ClubMemberRepository) Leave(ctx context.Context, clubID, userID uint64) error {
	return r.DB.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&model.ClubMember{}).Error
}

func (r *ClubMemberRepository) IsMember(ctx context.Context, clubID, userID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.ClubMember{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Count(&n).Error
	return n > 0, err
}

// MemberIDs returns the ids of every member, creator included.
func (r *ClubMemberRepository) MemberIDs(ctx context.Context, clubID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.ClubMember{}).
		Where("club_id = ?", clubID).
		Pluck("user_id", &ids).Error
	return ids, err
}
