package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ReactionSetTTL     = 24 * time.Hour
	ReactionCntTTL     = 24 * time.Hour
	LockTTL            = 300 * time.Millisecond
	ReactionSetPrefix  = "react:set" // react:set:<kind>:post:<id> -> set of user ids
	ReactionCntPrefix  = "react:cnt" // react:cnt:<kind>:post:<id> -> counter
	ReactionLockPrefix = "lock:react:post"
)

// ReactionCacheRepository caches per-kind reaction sets and counts. All
// writes happen after the MySQL transaction commits; failures here are
// ignored by callers and repaired by read-side rebuild.
type ReactionCacheRepository struct {
	setTTL time.Duration
	cntTTL time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

func NewReactionCacheRepository() *ReactionCacheRepository {
	return &ReactionCacheRepository{
		setTTL: ReactionSetTTL,
		cntTTL: ReactionCntTTL,
	}
}

func (r *ReactionCacheRepository) setKey(kind string, postID uint64) string {
	return fmt.Sprintf("%s:%s:post:%d", ReactionSetPrefix, kind, postID)
}

func (r *ReactionCacheRepository) cntKey(kind string, postID uint64) string {
	return fmt.Sprintf("%s:%s:post:%d", ReactionCntPrefix, kind, postID)
}

// AddReaction records the actor in the kind's set. Write path only, after
// the database commit.
func (r *ReactionCacheRepository) AddReaction(ctx context.Context, userID, postID uint64, kind string) error {
	k := r.setKey(kind, postID)
	if err := Client.SAdd(ctx, k, userID).Err(); err != nil {
		return err
	}
	return Client.Expire(ctx, k, r.setTTL).Err()
}

func (r *ReactionCacheRepository) RemoveReaction(ctx context.Context, userID, postID uint64, kind string) error {
	return Client.SRem(ctx, r.setKey(kind, postID), userID).Err()
}

// IsReactedCached reports (reacted, cacheHit, err). A missing set is a miss,
// not "not reacted".
func (r *ReactionCacheRepository) IsReactedCached(ctx context.Context, userID, postID uint64, kind string) (bool, bool, error) {
	k := r.setKey(kind, postID)
	exists, err := Client.Exists(ctx, k).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := Client.SIsMember(ctx, k, userID).Result()
	return b, true, err
}

func (r *ReactionCacheRepository) GetCountCached(ctx context.Context, postID uint64, kind string) (int64, bool, error) {
	val, err := Client.Get(ctx, r.cntKey(kind, postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

func (r *ReactionCacheRepository) SetCount(ctx context.Context, postID uint64, kind string, cnt int64) error {
	return Client.Set(ctx, r.cntKey(kind, postID), cnt, r.cntTTL).Err()
}

// WarmReacted lazily backfills the set, but only when it already exists:
// creating sets from the read path would grow without bound, so cold sets
// stay cold until a write recreates them.
func (r *ReactionCacheRepository) WarmReacted(ctx context.Context, userID, postID uint64, kind string, reacted bool) {
	k := r.setKey(kind, postID)
	if ok, _ := Client.Exists(ctx, k).Result(); ok > 0 {
		if reacted {
			_ = Client.SAdd(ctx, k, userID).Err()
		} else {
			_ = Client.SRem(ctx, k, userID).Err()
		}
		_ = Client.Expire(ctx, k, r.setTTL).Err()
	}
}

// DeleteCount drops the counter key, with an optional delayed second delete
// to close the concurrent-backfill window.
func (r *ReactionCacheRepository) DeleteCount(ctx context.Context, postID uint64, kind string, delay ...time.Duration) error {
	key := r.cntKey(kind, postID)
	if err := Client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}

// Acquire takes the per-post rebuild lock.
func (l *DistLock) Acquire(ctx context.Context, postID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", ReactionLockPrefix, postID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release deletes the lock only if we still hold it; Lua keeps the
// compare-and-delete atomic.
func (l *DistLock) Release(ctx context.Context, postID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", ReactionLockPrefix, postID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
