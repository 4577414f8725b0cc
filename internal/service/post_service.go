package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/mysql"
)

type PostService struct {
	repo    *mysql.PostRepository
	users   *mysql.UserRepository
	clubs   *mysql.ClubRepository
	members *mysql.ClubMemberRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		repo:    &mysql.PostRepository{DB: db},
		users:   &mysql.UserRepository{DB: db},
		clubs:   &mysql.ClubRepository{DB: db},
		members: &mysql.ClubMemberRepository{DB: db},
	}
}

// CreatePostInput carries the caller-supplied fields of a new post.
type CreatePostInput struct {
	Author     Author
	Text       string
	ImageURL   string
	Location   string
	Visibility string
}

// CreatePost writes a post spoken as in.Author. The actor must be allowed
// to speak as that author: users only as themselves, clubs only through a
// current member. Authorization is checked before anything is written.
func (s *PostService) CreatePost(ctx context.Context, actorID uint64, in CreatePostInput) (*model.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, apperr.InvalidInput("post text required")
	}
	visibility := in.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	if visibility != model.VisibilityPublic && visibility != model.VisibilityPrivate {
		return nil, apperr.InvalidInput("visibility must be public or private")
	}

	identity := s.resolveAuthor(in.Author)
	if _, err := identity.Display(ctx); err != nil {
		return nil, err
	}
	ok, err := identity.CanPostAs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("not allowed to post as this author")
	}

	post := &model.Post{
		AuthorID:    in.Author.ID,
		AuthorKind:  in.Author.Kind,
		CreatedByID: actorID,
		Text:        text,
		ImageURL:    in.ImageURL,
		Location:    in.Location,
		Visibility:  visibility,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post. Only the direct author may delete; club
// membership grants no delete rights over other members' club posts. The
// permission check and the delete are one conditional statement.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint64) error {
	affected, err := s.repo.DeleteByCreator(ctx, postID, actorID)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	// Nothing deleted: distinguish a missing post from a foreign one.
	if _, err := s.repo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("post")
		}
		return err
	}
	return apperr.Forbidden("only the author may delete this post")
}

func (s *PostService) Get(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post")
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) resolveAuthor(a Author) authorIdentity {
	if a.Kind == model.AuthorClub {
		return clubAuthor{id: a.ID, clubs: s.clubs, members: s.members}
	}
	return userAuthor{id: a.ID, users: s.users}
}
