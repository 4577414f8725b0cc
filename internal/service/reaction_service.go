package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/mysql"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/redis"
)

// ToggleResult is the reply contract of a toggle: the actor's membership
// state after the flip and the set's new cardinality.
type ToggleResult struct {
	Reacted bool  `json:"reacted"`
	Count   int64 `json:"count"`
}

type ReactionService struct {
	repo  *mysql.ReactionRepository
	cache *redis.ReactionCacheRepository
	lock  *redis.DistLock
}

// NewReactionService builds the service. cache and lock may be nil when
// redis is unavailable; every cache interaction degrades to the database.
func NewReactionService(db *gorm.DB, cache *redis.ReactionCacheRepository, lock *redis.DistLock) *ReactionService {
	return &ReactionService{
		repo:  &mysql.ReactionRepository{DB: db},
		cache: cache,
		lock:  lock,
	}
}

// Toggle flips the actor's membership in one of the post's three reaction
// sets. Every call flips; the caller cannot express "ensure reacted". Kinds
// are independent: toggling like never touches fire or wow. The database is
// written first; the cache is updated best-effort afterwards, under the
// per-post lock when available, dropped otherwise so reads rebuild it.
func (s *ReactionService) Toggle(ctx context.Context, actorID, postID uint64, kind string) (*ToggleResult, error) {
	if !model.ValidReactionKind(kind) {
		return nil, apperr.InvalidInput("unknown reaction kind")
	}

	reacted, count, err := s.repo.Toggle(ctx, actorID, postID, kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post")
		}
		return nil, err
	}

	if s.cache != nil {
		if reacted {
			_ = s.cache.AddReaction(ctx, actorID, postID, kind)
		} else {
			_ = s.cache.RemoveReaction(ctx, actorID, postID, kind)
		}

		// Counter is authoritative from the transaction; write it through
		// under the lock, or drop the key and let reads rebuild.
		token := lockToken(actorID, postID)
		if got := s.tryLock(ctx, postID, token); got {
			if err := s.cache.SetCount(ctx, postID, kind, count); err != nil {
				_ = s.cache.DeleteCount(ctx, postID, kind)
			}
			_ = s.lock.Release(ctx, postID, token)
		} else {
			_ = s.cache.DeleteCount(ctx, postID, kind, 200*time.Millisecond)
		}
	}

	return &ToggleResult{Reacted: reacted, Count: count}, nil
}

// Count returns the cardinality of one reaction set, cache first with a
// locked read-aside rebuild so a cold key does not stampede the database.
func (s *ReactionService) Count(ctx context.Context, actorID, postID uint64, kind string) (int64, error) {
	if !model.ValidReactionKind(kind) {
		return 0, apperr.InvalidInput("unknown reaction kind")
	}
	if s.cache == nil {
		return s.countFromDB(ctx, postID, kind)
	}

	if v, ok, err := s.cache.GetCountCached(ctx, postID, kind); err == nil && ok {
		return v, nil
	}

	token := lockToken(actorID, postID)
	if got := s.tryLock(ctx, postID, token); got {
		defer func() { _ = s.lock.Release(ctx, postID, token) }()

		// Second check under the lock.
		if v, ok, err := s.cache.GetCountCached(ctx, postID, kind); err == nil && ok {
			return v, nil
		}
		v, err := s.countFromDB(ctx, postID, kind)
		if err != nil {
			return 0, err
		}
		_ = s.cache.SetCount(ctx, postID, kind, v)
		return v, nil
	}

	// Lost the lock: brief backoff, then one more cache read before
	// falling through to the database.
	time.Sleep(50 * time.Millisecond)
	if v, ok, err := s.cache.GetCountCached(ctx, postID, kind); err == nil && ok {
		return v, nil
	}
	return s.countFromDB(ctx, postID, kind)
}

// HasReacted reports the actor's membership in one reaction set.
func (s *ReactionService) HasReacted(ctx context.Context, actorID, postID uint64, kind string) (bool, error) {
	if !model.ValidReactionKind(kind) {
		return false, apperr.InvalidInput("unknown reaction kind")
	}
	if s.cache != nil {
		if b, ok, err := s.cache.IsReactedCached(ctx, actorID, postID, kind); err == nil && ok {
			return b, nil
		}
	}
	b, err := s.repo.HasReacted(ctx, actorID, postID, kind)
	if err == nil && s.cache != nil {
		s.cache.WarmReacted(ctx, actorID, postID, kind, b)
	}
	return b, err
}

func (s *ReactionService) countFromDB(ctx context.Context, postID uint64, kind string) (int64, error) {
	v, err := s.repo.Count(ctx, postID, kind)
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.NotFound("post")
	}
	return v, err
}

func (s *ReactionService) tryLock(ctx context.Context, postID uint64, token string) bool {
	if s.lock == nil {
		return false
	}
	got, _ := s.lock.Acquire(ctx, postID, token)
	return got
}

func lockToken(actorID, postID uint64) string {
	return fmt.Sprintf("%d-%d-%d", actorID, postID, time.Now().UnixNano())
}
