package services

import (
	"fmt"
	"os"
	"testing"

	"chirp/internal/db"
	"chirp/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The services run against an in-memory sqlite database so the real gorm
// code paths (expression increments, transactions, unique indexes, foreign
// keys) are exercised without a postgres instance.
func TestMain(m *testing.M) {
	g, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}
	sqlDB, err := g.DB()
	if err != nil {
		panic(err)
	}
	// One connection, one shared in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(g); err != nil {
		panic(err)
	}
	db.DB = g

	os.Exit(m.Run())
}

// resetDB empties all tables between tests, children first.
func resetDB(t *testing.T) {
	t.Helper()
	for _, table := range []string{"notifications", "follows", "comments", "posts", "users"} {
		require.NoError(t, db.DB.Exec("DELETE FROM "+table).Error)
	}
}

var testUserSeq int

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	testUserSeq++
	user, err := NewUserService().Register(RegisterRequest{
		Email:    email,
		Username: fmt.Sprintf("user%d", testUserSeq),
		Password: "secret1",
	})
	require.NoError(t, err)
	return user
}

func createTestPost(t *testing.T, userID uint, content string) *models.Post {
	t.Helper()
	post, err := NewPostService().CreatePost(userID, content)
	require.NoError(t, err)
	return post
}

func countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.DB.Model(model).Count(&count).Error)
	return count
}
