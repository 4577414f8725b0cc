package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/mysql"
)

// FeedItem is one post with its author resolved to display attributes and,
// for authenticated viewers, the viewer's own reaction state.
type FeedItem struct {
	Post   model.Post   `json:"post"`
	Author AuthorView   `json:"author"`
	Viewer *ViewerState `json:"viewer,omitempty"`
}

// ViewerState is the viewer's membership in each of the post's reaction
// sets. Omitted entirely for anonymous callers.
type ViewerState struct {
	Liked bool `json:"liked"`
	Fired bool `json:"fired"`
	Wowed bool `json:"wowed"`
}

// FeedService composes read-only views over posts, the follow graph and
// the author collections. viewerID == 0 means anonymous: same rows, no
// personalization.
type FeedService struct {
	posts     *mysql.PostRepository
	users     *mysql.UserRepository
	clubs     *mysql.ClubRepository
	follows   *mysql.FollowRepository
	reactions *mysql.ReactionRepository
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{
		posts:     &mysql.PostRepository{DB: db},
		users:     &mysql.UserRepository{DB: db},
		clubs:     &mysql.ClubRepository{DB: db},
		follows:   &mysql.FollowRepository{DB: db},
		reactions: &mysql.ReactionRepository{DB: db},
	}
}

// Global is the chronological feed: every post, newest first.
func (s *FeedService) Global(ctx context.Context, viewerID uint64) ([]FeedItem, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts, viewerID)
}

// Friends filters the chronological feed to posts authored by actors the
// viewer follows. Club-authored posts never appear here: following is an
// actor-to-actor relation.
func (s *FeedService) Friends(ctx context.Context, viewerID uint64) ([]FeedItem, error) {
	followees, err := s.follows.FolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByUserAuthors(ctx, followees)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts, viewerID)
}

// Popular is the global feed re-sorted by like count, ties broken by
// recency then id.
func (s *FeedService) Popular(ctx context.Context, viewerID uint64) ([]FeedItem, error) {
	posts, err := s.posts.ListPopular(ctx)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts, viewerID)
}

// assemble joins posts to author display attributes in two batched lookups
// and, when a viewer is present, overlays their reaction state.
func (s *FeedService) assemble(ctx context.Context, posts []model.Post, viewerID uint64) ([]FeedItem, error) {
	userIDs := make([]uint64, 0, len(posts))
	clubIDs := make([]uint64, 0)
	postIDs := make([]uint64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		if p.AuthorKind == model.AuthorClub {
			clubIDs = append(clubIDs, p.AuthorID)
		} else {
			userIDs = append(userIDs, p.AuthorID)
		}
	}

	users, err := s.users.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[uint64]model.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	clubs, err := s.clubs.ListByIDs(ctx, clubIDs)
	if err != nil {
		return nil, err
	}
	clubByID := make(map[uint64]model.Club, len(clubs))
	for _, c := range clubs {
		clubByID[c.ID] = c
	}

	viewerState := make(map[uint64]*ViewerState)
	if viewerID != 0 {
		rows, err := s.reactions.ViewerReactions(ctx, viewerID, postIDs)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			st, ok := viewerState[row.PostID]
			if !ok {
				st = &ViewerState{}
				viewerState[row.PostID] = st
			}
			switch row.Kind {
			case model.ReactionLike:
				st.Liked = true
			case model.ReactionFire:
				st.Fired = true
			case model.ReactionWow:
				st.Wowed = true
			}
		}
	}

	items := make([]FeedItem, 0, len(posts))
	for _, p := range posts {
		item := FeedItem{Post: p, Author: s.authorView(p, userByID, clubByID)}
		if viewerID != 0 {
			if st, ok := viewerState[p.ID]; ok {
				item.Viewer = st
			} else {
				item.Viewer = &ViewerState{}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *FeedService) authorView(p model.Post, users map[uint64]model.User, clubs map[uint64]model.Club) AuthorView {
	if p.AuthorKind == model.AuthorClub {
		c, ok := clubs[p.AuthorID]
		if !ok {
			// Club deleted after the post was written; keep the post
			// readable instead of dropping or failing the feed.
			return deletedClubView(p.AuthorID)
		}
		return AuthorView{
			Kind:      model.AuthorClub,
			ID:        c.ID,
			Handle:    c.Handle,
			Name:      c.Name,
			AvatarURL: c.AvatarURL,
		}
	}
	u, ok := users[p.AuthorID]
	if !ok {
		return AuthorView{Kind: model.AuthorUser, ID: p.AuthorID}
	}
	return AuthorView{
		Kind:      model.AuthorUser,
		ID:        u.ID,
		Handle:    u.Handle,
		Name:      u.DisplayName,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
	}
}
