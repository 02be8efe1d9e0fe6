package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-team-api/internal/domain"
)

func newNotification(recipient uuid.UUID, createdAt time.Time) *domain.Notification {
	return &domain.Notification{
		RecipientID:       recipient,
		Kind:              domain.NotificationKindComment,
		Title:             "새 댓글",
		Message:           "bob commented",
		TeamID:            uuid.New(),
		PostID:            uuid.New(),
		OriginatingUserID: uuid.New(),
		Metadata:          map[string]interface{}{"commentId": uuid.NewString()},
		CreatedAt:         createdAt,
	}
}

func TestNotificationRepository_ListAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	alice, bob := uuid.New(), uuid.New()
	now := time.Now()

	older := newNotification(alice, now.Add(-time.Hour))
	newer := newNotification(alice, now)
	require.NoError(t, repo.Create(testCtx, older))
	require.NoError(t, repo.Create(testCtx, newer))
	require.NoError(t, repo.Create(testCtx, newNotification(bob, now)))

	list, err := repo.ListByRecipient(testCtx, alice, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, newer.Metadata["commentId"], list[0].Metadata["commentId"])

	limited, err := repo.ListByRecipient(testCtx, alice, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	unread, err := repo.CountUnread(testCtx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)
}

func TestNotificationRepository_MarkReadAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	alice, bob := uuid.New(), uuid.New()
	a1 := newNotification(alice, time.Now())
	a2 := newNotification(alice, time.Now())
	b1 := newNotification(bob, time.Now())
	for _, n := range []*domain.Notification{a1, a2, b1} {
		require.NoError(t, repo.Create(testCtx, n))
	}

	// another user's id is ignored
	n, err := repo.MarkRead(testCtx, alice, []uuid.UUID{a1.ID, b1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.MarkRead(testCtx, alice, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	unread, err := repo.CountUnread(testCtx, alice)
	require.NoError(t, err)
	assert.Zero(t, unread)

	n, err = repo.Delete(testCtx, alice, []uuid.UUID{a1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(testCtx, alice, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	remaining, err := repo.ListByRecipient(testCtx, bob, 0)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestNotificationRepository_DeleteReadOlderThan(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	alice := uuid.New()
	now := time.Now()

	oldRead := newNotification(alice, now.AddDate(0, 0, -40))
	oldUnread := newNotification(alice, now.AddDate(0, 0, -40))
	recentRead := newNotification(alice, now)
	for _, n := range []*domain.Notification{oldRead, oldUnread, recentRead} {
		require.NoError(t, repo.Create(testCtx, n))
	}
	_, err := repo.MarkRead(testCtx, alice, []uuid.UUID{oldRead.ID, recentRead.ID})
	require.NoError(t, err)

	n, err := repo.DeleteReadOlderThan(testCtx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := repo.ListByRecipient(testCtx, alice, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
