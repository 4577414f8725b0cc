package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
)

// Cache and lock are nil throughout: the service must degrade to the
// database when redis is unavailable.

func TestToggleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db, nil, nil)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	p := seedPostAt(t, db, a, "hill repeats", testTime(1))

	res, err := svc.Toggle(ctx, a.ID, p.ID, model.ReactionWow)
	require.NoError(t, err)
	assert.True(t, res.Reacted)
	assert.Equal(t, int64(1), res.Count)

	res, err = svc.Toggle(ctx, a.ID, p.ID, model.ReactionWow)
	require.NoError(t, err)
	assert.False(t, res.Reacted)
	assert.Equal(t, int64(0), res.Count)
}

func TestToggleUnknownKind(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db, nil, nil)
	a := seedUser(t, db, "alice")
	p := seedPostAt(t, db, a, "post", testTime(1))

	_, err := svc.Toggle(context.Background(), a.ID, p.ID, "heart")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestToggleMissingPostIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db, nil, nil)
	a := seedUser(t, db, "alice")

	_, err := svc.Toggle(context.Background(), a.ID, 999, model.ReactionLike)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCountAndHasReactedFallBackToDB(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db, nil, nil)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	p := seedPostAt(t, db, a, "post", testTime(1))

	_, err := svc.Toggle(ctx, a.ID, p.ID, model.ReactionFire)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, b.ID, p.ID, model.ReactionFire)
	require.NoError(t, err)

	cnt, err := svc.Count(ctx, a.ID, p.ID, model.ReactionFire)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)

	ok, err := svc.HasReacted(ctx, a.ID, p.ID, model.ReactionFire)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasReacted(ctx, a.ID, p.ID, model.ReactionLike)
	require.NoError(t, err)
	assert.False(t, ok)
}
