package mysql

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Leonidos67/t-sync-sub000/internal/model"
)

// newTestDB opens an in-memory SQLite database with the same schema and
// error translation the MySQL connection uses. A single connection keeps
// the :memory: database alive for the whole test.
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

func seedUser(t *testing.T, db *gorm.DB, handle string) *model.User {
	t.Helper()
	u := &model.User{Handle: handle, DisplayName: handle}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, author *model.User, text string) *model.Post {
	t.Helper()
	p := &model.Post{
		AuthorID:    author.ID,
		AuthorKind:  model.AuthorUser,
		CreatedByID: author.ID,
		Text:        text,
		Visibility:  model.VisibilityPublic,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
