package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"study-team-api/internal/database"
	"study-team-api/internal/domain"
)

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByRecipient(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	// MarkRead marks the given notifications read; no ids means all of the user's notifications
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	// Delete removes the given notifications; no ids means all of the user's notifications
	Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type notificationRepositoryImpl struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByRecipient returns the newest notifications of a user; limit <= 0 returns all
func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	query := r.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(database.WithOperation(ctx, "unread_count")).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	result := query.Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepositoryImpl) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Where("recipient_id = ?", userID)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	result := query.Delete(&domain.Notification{})
	return result.RowsAffected, result.Error
}

// DeleteReadOlderThan prunes read notifications created before cutoff
func (r *notificationRepositoryImpl) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(database.WithOperation(ctx, "prune_notifications")).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&domain.Notification{})
	return result.RowsAffected, result.Error
}
