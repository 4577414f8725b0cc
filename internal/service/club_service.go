package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/mysql"
)

type ClubService struct {
	repo    *mysql.ClubRepository
	members *mysql.ClubMemberRepository
}

func NewClubService(db *gorm.DB) *ClubService {
	return &ClubService{
		repo:    &mysql.ClubRepository{DB: db},
		members: &mysql.ClubMemberRepository{DB: db},
	}
}

// CreateClub registers the club with creatorID as its first and permanent
// member. Handles are case-insensitive and unique across clubs.
func (s *ClubService) CreateClub(ctx context.Context, creatorID uint64, name, handle, description string) (*model.Club, error) {
	name = strings.TrimSpace(name)
	handle = strings.TrimSpace(handle)
	if name == "" {
		return nil, apperr.InvalidInput("club name required")
	}
	if handle == "" {
		return nil, apperr.InvalidInput("club handle required")
	}

	club := &model.Club{
		Name:        name,
		Handle:      handle,
		Description: description,
		CreatorID:   creatorID,
		ShowCreator: true,
	}
	if err := s.repo.Create(ctx, club); err != nil {
		return nil, err
	}
	return club, nil
}

func (s *ClubService) Get(ctx context.Context, handle string) (*model.Club, error) {
	club, err := s.repo.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("club")
		}
		return nil, err
	}
	return club, nil
}

// Resolve accepts either a numeric club id or a handle.
func (s *ClubService) Resolve(ctx context.Context, ref string) (*model.Club, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return s.findByID(ctx, id)
	}
	return s.Get(ctx, ref)
}

func (s *ClubService) List(ctx context.Context) ([]model.Club, error) {
	return s.repo.List(ctx)
}

func (s *ClubService) MemberIDs(ctx context.Context, clubID uint64) ([]uint64, error) {
	return s.members.MemberIDs(ctx, clubID)
}

// Join appends the actor to the member set. The creator is implicitly
// always a member and cannot join again; a second join is a conflict.
func (s *ClubService) Join(ctx context.Context, actorID, clubID uint64) error {
	club, err := s.findByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club.CreatorID == actorID {
		return apperr.Conflict("creator is always a member")
	}
	return s.members.Join(ctx, clubID, actorID)
}

// Leave removes the actor from the member set. Creators can never leave
// their own club: that would break the creator-is-a-member invariant, and
// there is no ownership transfer. Leaving while not a member is a no-op.
func (s *ClubService) Leave(ctx context.Context, actorID, clubID uint64) error {
	club, err := s.findByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club.CreatorID == actorID {
		return apperr.Conflict("creator cannot leave the club")
	}
	return s.members.Leave(ctx, clubID, actorID)
}

// Delete removes the club. Creator only. Posts authored by the club are
// intentionally left in place; feeds render them with a placeholder author.
func (s *ClubService) Delete(ctx context.Context, actorID, clubID uint64) error {
	if err := s.requireCreator(ctx, actorID, clubID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, clubID)
}

func (s *ClubService) UpdateAppearance(ctx context.Context, actorID, clubID uint64, showCreator bool) error {
	if err := s.requireCreator(ctx, actorID, clubID); err != nil {
		return err
	}
	return s.repo.UpdateAppearance(ctx, clubID, showCreator)
}

// UpdateActionButton replaces the call-to-action wholesale. An empty kind
// clears the button; otherwise the kind must be website, phone or email.
func (s *ClubService) UpdateActionButton(ctx context.Context, actorID, clubID uint64, kind, value, label string) error {
	if err := s.requireCreator(ctx, actorID, clubID); err != nil {
		return err
	}
	if kind == "" {
		return s.repo.UpdateActionButton(ctx, clubID, "", "", "")
	}
	if !model.ValidActionKind(kind) {
		return apperr.InvalidInput("action kind must be website, phone or email")
	}
	if strings.TrimSpace(value) == "" {
		return apperr.InvalidInput("action value required")
	}
	return s.repo.UpdateActionButton(ctx, clubID, kind, value, label)
}

func (s *ClubService) SetAvatar(ctx context.Context, actorID, clubID uint64, url string) error {
	if err := s.requireCreator(ctx, actorID, clubID); err != nil {
		return err
	}
	if strings.TrimSpace(url) == "" {
		return apperr.InvalidInput("avatar url required")
	}
	return s.repo.SetAvatar(ctx, clubID, url)
}

func (s *ClubService) ClearAvatar(ctx context.Context, actorID, clubID uint64) error {
	if err := s.requireCreator(ctx, actorID, clubID); err != nil {
		return err
	}
	return s.repo.SetAvatar(ctx, clubID, "")
}

func (s *ClubService) findByID(ctx context.Context, clubID uint64) (*model.Club, error) {
	club, err := s.repo.FindByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("club")
		}
		return nil, err
	}
	return club, nil
}

func (s *ClubService) requireCreator(ctx context.Context, actorID, clubID uint64) error {
	club, err := s.findByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club.CreatorID != actorID {
		return apperr.Forbidden("only the club creator may do this")
	}
	return nil
}
