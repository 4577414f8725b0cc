package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/mysql"
)

// Author is the sum type User(id) | Club(id) naming who a post speaks as.
type Author struct {
	Kind model.AuthorKind
	ID   uint64
}

// UserAuthor and ClubAuthor build the two variants.
func UserAuthor(id uint64) Author { return Author{Kind: model.AuthorUser, ID: id} }
func ClubAuthor(id uint64) Author { return Author{Kind: model.AuthorClub, ID: id} }

// AuthorView is the resolved display projection of an author, attached to
// feed items and post records.
type AuthorView struct {
	Kind      model.AuthorKind `json:"kind"`
	ID        uint64           `json:"id"`
	Handle    string           `json:"handle"`
	Name      string           `json:"name"`
	AvatarURL string           `json:"avatar_url,omitempty"`
	Role      string           `json:"role,omitempty"`
}

// authorIdentity is the capability interface both variants implement:
// resolve display attributes, and decide whether an actor may post as this
// author.
type authorIdentity interface {
	Display(ctx context.Context) (AuthorView, error)
	CanPostAs(ctx context.Context, actorID uint64) (bool, error)
}

type userAuthor struct {
	id    uint64
	users *mysql.UserRepository
}

func (a userAuthor) Display(ctx context.Context) (AuthorView, error) {
	u, err := a.users.FindByID(ctx, a.id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthorView{}, apperr.NotFound("user")
		}
		return AuthorView{}, err
	}
	return AuthorView{
		Kind:      model.AuthorUser,
		ID:        u.ID,
		Handle:    u.Handle,
		Name:      u.DisplayName,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
	}, nil
}

// A user author only speaks for itself.
func (a userAuthor) CanPostAs(ctx context.Context, actorID uint64) (bool, error) {
	return actorID == a.id, nil
}

type clubAuthor struct {
	id      uint64
	clubs   *mysql.ClubRepository
	members *mysql.ClubMemberRepository
}

func (a clubAuthor) Display(ctx context.Context) (AuthorView, error) {
	c, err := a.clubs.FindByID(ctx, a.id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthorView{}, apperr.NotFound("club")
		}
		return AuthorView{}, err
	}
	return AuthorView{
		Kind:      model.AuthorClub,
		ID:        c.ID,
		Handle:    c.Handle,
		Name:      c.Name,
		AvatarURL: c.AvatarURL,
	}, nil
}

// A club author speaks for any current member.
func (a clubAuthor) CanPostAs(ctx context.Context, actorID uint64) (bool, error) {
	return a.members.IsMember(ctx, a.id, actorID)
}

// deletedClubView stands in for a club that has since been deleted; its
// posts stay readable rather than breaking the feed.
func deletedClubView(id uint64) AuthorView {
	return AuthorView{
		Kind: model.AuthorClub,
		ID:   id,
		Name: "Deleted club",
	}
}
