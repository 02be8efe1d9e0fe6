package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"study-team-api/internal/domain"
)

func TestPostRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	alice := createUser(t, db, "alice")
	team := createTeam(t, db, alice, 1)

	first := createPost(t, db, team, alice, `<img src="/static/uploads/a.png">`)
	second := createPost(t, db, team, alice, "plain")
	require.NoError(t, db.Model(&domain.Post{}).Where("id = ?", first.ID).
		UpdateColumn("created_at", second.CreatedAt.Add(-time.Hour)).Error)

	posts, err := repo.ListByTeam(testCtx, team.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID, "newest first")

	first.Title = "edited"
	first.Content = "no images"
	require.NoError(t, repo.Update(testCtx, first))
	found, err := repo.FindByID(testCtx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", found.Title)
	assert.Equal(t, "no images", found.Content)

	require.NoError(t, repo.Delete(testCtx, first.ID))
	_, err = repo.FindByID(testCtx, first.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.True(t, errors.Is(repo.Delete(testCtx, first.ID), gorm.ErrRecordNotFound))
}

func TestPostRepository_Contents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	alice := createUser(t, db, "alice")
	team := createTeam(t, db, alice, 1)
	other := createTeam(t, db, alice, 2)
	createPost(t, db, team, alice, "one")
	createPost(t, db, other, alice, "two")

	all, err := repo.AllContents(testCtx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, all)

	byTeam, err := repo.ContentsByTeam(testCtx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, byTeam)
}

func TestPostRepository_ToggleLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	team := createTeam(t, db, alice, 1)
	post := createPost(t, db, team, alice, "x")

	likes, liked, err := repo.ToggleLike(testCtx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	assert.True(t, liked)

	likes, _, err = repo.ToggleLike(testCtx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)

	likes, liked, err = repo.ToggleLike(testCtx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	assert.False(t, liked)

	isLiked, err := repo.IsLikedBy(testCtx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isLiked)

	require.NoError(t, db.Model(&domain.Post{}).Where("id = ?", post.ID).UpdateColumn("likes", 0).Error)
	_, err = repo.RecountLikes(testCtx)
	require.NoError(t, err)
	found, err := repo.FindByID(testCtx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.Likes)
}
