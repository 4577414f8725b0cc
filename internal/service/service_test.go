package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Leonidos67/t-sync-sub000/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.SocialOutbox{},
		&model.Club{},
		&model.ClubMember{},
		&model.Post{},
		&model.PostReaction{},
	))
	return db
}

// testTime yields stable, strictly increasing timestamps for fixtures.
func testTime(n int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute)
}

func seedUser(t *testing.T, db *gorm.DB, handle string) *model.User {
	t.Helper()
	u := &model.User{Handle: handle, DisplayName: handle}
	require.NoError(t, db.Create(u).Error)
	return u
}

// seedPostAt writes a user-authored post with a controlled timestamp so
// ordering assertions are deterministic.
func seedPostAt(t *testing.T, db *gorm.DB, author *model.User, text string, at time.Time) *model.Post {
	t.Helper()
	p := &model.Post{
		AuthorID:    author.ID,
		AuthorKind:  model.AuthorUser,
		CreatedByID: author.ID,
		Text:        text,
		Visibility:  model.VisibilityPublic,
		CreatedAt:   at,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
