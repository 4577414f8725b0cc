package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/model"
)

func TestToggleFlipsMembershipAndCount(t *testing.T) {
	db := newTestDB(t)
	repo := &ReactionRepository{DB: db}
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u, "morning run")

	reacted, count, err := repo.Toggle(ctx, u.ID, p.ID, model.ReactionLike)
	require.NoError(t, err)
	assert.True(t, reacted)
	assert.Equal(t, int64(1), count)

	// Second call returns to the original state.
	reacted, count, err = repo.Toggle(ctx, u.ID, p.ID, model.ReactionLike)
	require.NoError(t, err)
	assert.False(t, reacted)
	assert.Equal(t, int64(0), count)

	var rows int64
	require.NoError(t, db.Model(&model.PostReaction{}).
		Where("post_id = ?", p.ID).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}

func TestReactionKindsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	repo := &ReactionRepository{DB: db}
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u, "interval session")

	for _, kind := range model.ReactionKinds {
		_, _, err := repo.Toggle(ctx, u.ID, p.ID, kind)
		require.NoError(t, err)
	}

	var got model.Post
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, int64(1), got.LikeCount)
	assert.Equal(t, int64(1), got.FireCount)
	assert.Equal(t, int64(1), got.WowCount)

	// Removing the like leaves fire and wow untouched.
	_, _, err := repo.Toggle(ctx, u.ID, p.ID, model.ReactionLike)
	require.NoError(t, err)

	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, int64(0), got.LikeCount)
	assert.Equal(t, int64(1), got.FireCount)
	assert.Equal(t, int64(1), got.WowCount)
}

func TestToggleSequenceAcrossActors(t *testing.T) {
	db := newTestDB(t)
	repo := &ReactionRepository{DB: db}
	ctx := context.Background()

	u1 := seedUser(t, db, "alice")
	u2 := seedUser(t, db, "bob")
	p := seedPost(t, db, u1, "race day")

	reacted, count, err := repo.Toggle(ctx, u1.ID, p.ID, model.ReactionFire)
	require.NoError(t, err)
	assert.True(t, reacted)
	assert.Equal(t, int64(1), count)

	reacted, count, err = repo.Toggle(ctx, u2.ID, p.ID, model.ReactionFire)
	require.NoError(t, err)
	assert.True(t, reacted)
	assert.Equal(t, int64(2), count)

	reacted, count, err = repo.Toggle(ctx, u1.ID, p.ID, model.ReactionFire)
	require.NoError(t, err)
	assert.False(t, reacted)
	assert.Equal(t, int64(1), count)
}

func TestToggleMissingPost(t *testing.T) {
	db := newTestDB(t)
	repo := &ReactionRepository{DB: db}

	u := seedUser(t, db, "alice")
	_, _, err := repo.Toggle(context.Background(), u.ID, 999, model.ReactionWow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestViewerReactions(t *testing.T) {
	db := newTestDB(t)
	repo := &ReactionRepository{DB: db}
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	p1 := seedPost(t, db, u, "one")
	p2 := seedPost(t, db, u, "two")

	_, _, err := repo.Toggle(ctx, u.ID, p1.ID, model.ReactionLike)
	require.NoError(t, err)
	_, _, err = repo.Toggle(ctx, u.ID, p2.ID, model.ReactionWow)
	require.NoError(t, err)

	rows, err := repo.ViewerReactions(ctx, u.ID, []uint64{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Anonymous viewers carry no reaction state.
	rows, err = repo.ViewerReactions(ctx, 0, []uint64{p1.ID})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
