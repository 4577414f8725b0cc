package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/mysql"
)

func TestCreateClubMakesCreatorAMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	club, err := svc.CreateClub(ctx, a.ID, "Runners", "runners", "weekend long runs")
	require.NoError(t, err)

	members := &mysql.ClubMemberRepository{DB: db}
	ok, err := members.IsMember(ctx, club.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, ok, "creator must be a member from the first moment")
}

func TestCreateClubValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)
	ctx := context.Background()
	a := seedUser(t, db, "alice")

	_, err := svc.CreateClub(ctx, a.ID, "", "runners", "")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = svc.CreateClub(ctx, a.ID, "Runners", "", "")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestClubHandleUniqueCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	_, err := svc.CreateClub(ctx, a.ID, "Runners", "Runners", "")
	require.NoError(t, err)

	_, err = svc.CreateClub(ctx, b.ID, "Other Runners", "RUNNERS", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestJoinAndLeaveRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	club, err := svc.CreateClub(ctx, a.ID, "Runners", "runners", "")
	require.NoError(t, err)

	// Creator can neither join (already implicitly a member) nor leave.
	err = svc.Join(ctx, a.ID, club.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	err = svc.Leave(ctx, a.ID, club.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	require.NoError(t, svc.Join(ctx, b.ID, club.ID))
	err = svc.Join(ctx, b.ID, club.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	// Leaving is lenient once for members and for non-members alike.
	require.NoError(t, svc.Leave(ctx, b.ID, club.ID))
	require.NoError(t, svc.Leave(ctx, b.ID, club.ID))

	// The creator invariant held throughout.
	members := &mysql.ClubMemberRepository{DB: db}
	ok, err := members.IsMember(ctx, club.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Missing club is NotFound, not Conflict.
	err = svc.Join(ctx, b.ID, 999)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDeleteClubCreatorOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	club, err := svc.CreateClub(ctx, a.ID, "Runners", "runners", "")
	require.NoError(t, err)

	err = svc.Delete(ctx, b.ID, club.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	require.NoError(t, svc.Delete(ctx, a.ID, club.ID))

	_, err = svc.Get(ctx, "runners")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	// Membership rows are cleaned up with the club.
	var n int64
	require.NoError(t, db.Model(&model.ClubMember{}).
		Where("club_id = ?", club.ID).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestAppearanceAndActionButton(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	club, err := svc.CreateClub(ctx, a.ID, "Runners", "runners", "")
	require.NoError(t, err)

	err = svc.UpdateAppearance(ctx, b.ID, club.ID, false)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	require.NoError(t, svc.UpdateAppearance(ctx, a.ID, club.ID, false))
	got, err := svc.Get(ctx, "runners")
	require.NoError(t, err)
	assert.False(t, got.ShowCreator)

	err = svc.UpdateActionButton(ctx, a.ID, club.ID, "fax", "123", "Fax us")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	require.NoError(t, svc.UpdateActionButton(ctx, a.ID, club.ID, model.ActionWebsite, "https://runners.example", "Visit"))
	got, err = svc.Get(ctx, "runners")
	require.NoError(t, err)
	assert.Equal(t, model.ActionWebsite, got.ActionKind)
	assert.Equal(t, "https://runners.example", got.ActionValue)

	// Empty kind clears the whole sub-record.
	require.NoError(t, svc.UpdateActionButton(ctx, a.ID, club.ID, "", "", ""))
	got, err = svc.Get(ctx, "runners")
	require.NoError(t, err)
	assert.Empty(t, got.ActionKind)
	assert.Empty(t, got.ActionValue)
}

func TestClubAvatar(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	club, err := svc.CreateClub(ctx, a.ID, "Runners", "runners", "")
	require.NoError(t, err)

	err = svc.SetAvatar(ctx, b.ID, club.ID, "https://cdn.example/a.png")
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	require.NoError(t, svc.SetAvatar(ctx, a.ID, club.ID, "https://cdn.example/a.png"))
	got, err := svc.Get(ctx, "runners")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/a.png", got.AvatarURL)

	require.NoError(t, svc.ClearAvatar(ctx, a.ID, club.ID))
	got, err = svc.Get(ctx, "runners")
	require.NoError(t, err)
	assert.Empty(t, got.AvatarURL)
}

func TestResolveByIDOrHandle(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	club, err := svc.CreateClub(ctx, a.ID, "Runners", "runners", "")
	require.NoError(t, err)

	byHandle, err := svc.Resolve(ctx, "runners")
	require.NoError(t, err)
	assert.Equal(t, club.ID, byHandle.ID)

	byID, err := svc.Resolve(ctx, strconv.FormatUint(club.ID, 10))
	require.NoError(t, err)
	assert.Equal(t, club.ID, byID.ID)
}
