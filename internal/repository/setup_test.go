package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"study-team-api/internal/database"
	"study-team-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "failed to open database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Nickname: username, PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTeam(t *testing.T, db *gorm.DB, master *domain.User, week int) *domain.Team {
	t.Helper()
	team := &domain.Team{Name: "team-" + uuid.NewString()[:8], Week: week, MasterID: master.ID}
	require.NoError(t, NewTeamRepository(db).Create(testCtx, team))
	return team
}

func createPost(t *testing.T, db *gorm.DB, team *domain.Team, author *domain.User, content string) *domain.Post {
	t.Helper()
	post := &domain.Post{TeamID: team.ID, AuthorID: author.ID, Title: "title", Content: content}
	require.NoError(t, NewPostRepository(db).Create(testCtx, post))
	return post
}

func createComment(t *testing.T, db *gorm.DB, post *domain.Post, author *domain.User, parent *domain.Comment, at time.Time) *domain.Comment {
	t.Helper()
	c := &domain.Comment{PostID: post.ID, AuthorID: author.ID, Content: "c", CreatedAt: at}
	if parent != nil {
		c.IsReply = true
		c.ParentCommentID = &parent.ID
	}
	require.NoError(t, NewCommentRepository(db).Create(testCtx, c))
	return c
}

func commentIDs(comments []domain.Comment) []uuid.UUID {
	ids := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	return ids
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
