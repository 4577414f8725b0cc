package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/pkg"
)

func init() {
	pkg.Sugar = zap.NewNop().Sugar()
}

func TestRelayerDrainsPendingEvents(t *testing.T) {
	db := newTestDB(t)
	follows := NewFollowService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	require.NoError(t, follows.Follow(ctx, a.ID, "bob"))

	var sent []model.SocialOutbox
	relayer := NewOutboxRelayer(db, 10, time.Minute, func(ctx context.Context, ob *model.SocialOutbox) error {
		sent = append(sent, *ob)
		return nil
	})
	relayer.drainOnce(ctx)

	require.Len(t, sent, 1)
	assert.Equal(t, a.ID, sent[0].Follower)

	// Drained rows stay drained.
	relayer.drainOnce(ctx)
	assert.Len(t, sent, 1)
}

func TestRelayerParksFailedEvents(t *testing.T) {
	db := newTestDB(t)
	follows := NewFollowService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	require.NoError(t, follows.Follow(ctx, a.ID, "bob"))

	attempts := 0
	relayer := NewOutboxRelayer(db, 10, time.Minute, func(ctx context.Context, ob *model.SocialOutbox) error {
		attempts++
		return errors.New("broker down")
	})
	relayer.drainOnce(ctx)
	relayer.drainOnce(ctx)

	// Failed rows are marked, not re-delivered on the next sweep.
	assert.Equal(t, 1, attempts)
	var ob model.SocialOutbox
	require.NoError(t, db.First(&ob).Error)
	assert.EqualValues(t, 2, ob.Status)
	assert.EqualValues(t, 1, ob.Retry)
}

func TestReconcilerRepairsDriftedCounters(t *testing.T) {
	db := newTestDB(t)
	follows := NewFollowService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	require.NoError(t, follows.Follow(ctx, a.ID, "bob"))

	// Simulate drift from a lost decrement.
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", b.ID).
		Update("follower_count", 9).Error)

	rec := NewFollowCountReconciler(db, 100, time.Minute)
	rec.reconcileOnce(ctx)

	var fresh model.User
	require.NoError(t, db.First(&fresh, b.ID).Error)
	assert.Equal(t, int64(1), fresh.FollowerCount)

	var af model.User
	require.NoError(t, db.First(&af, a.ID).Error)
	assert.Equal(t, int64(1), af.FollowingCount)
}
