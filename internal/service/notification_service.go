package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"study-team-api/internal/domain"
	"study-team-api/internal/dto"
	"study-team-api/internal/metrics"
	"study-team-api/internal/repository"
	"study-team-api/internal/response"
)

const notificationEventType = "notification"

// Pusher delivers events to a user's open realtime connections
type Pusher interface {
	Publish(userID uuid.UUID, eventType string, payload interface{}) int
}

// NotificationService defines the interface for notification business logic
type NotificationService interface {
	Notify(ctx context.Context, notification *domain.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit int) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	PruneRead(ctx context.Context, retentionDays int) (int64, error)
}

type notificationServiceImpl struct {
	repo     repository.NotificationRepository
	redis    *redis.Client
	cacheTTL time.Duration
	pusher   Pusher
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewNotificationService creates a new instance of NotificationService.
// redisClient and pusher are optional.
func NewNotificationService(
	repo repository.NotificationRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	pusher Pusher,
	m *metrics.Metrics,
	logger *zap.Logger,
) NotificationService {
	return &notificationServiceImpl{
		repo:     repo,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		pusher:   pusher,
		metrics:  m,
		logger:   logger,
	}
}

// Notify stores the notification, invalidates the recipient's cached unread count and pushes it live
func (s *notificationServiceImpl) Notify(ctx context.Context, notification *domain.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.invalidateUnreadCountCache(ctx, notification.RecipientID)
	s.metrics.IncrementNotificationCreated(string(notification.Kind))

	if s.pusher != nil {
		s.pusher.Publish(notification.RecipientID, notificationEventType, notification)
	}

	s.logger.Info("notification created",
		zap.String("id", notification.ID.String()),
		zap.String("kind", string(notification.Kind)),
		zap.String("recipient_id", notification.RecipientID.String()),
	)
	return nil
}

func (s *notificationServiceImpl) List(ctx context.Context, userID uuid.UUID, limit int) (*dto.NotificationListResponse, error) {
	notifications, err := s.repo.ListByRecipient(ctx, userID, limit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch notifications", err.Error())
	}
	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return &dto.NotificationListResponse{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	cacheKey := unreadCacheKey(userID)

	// Try cache first
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Int64(); err == nil {
			return cached, nil
		}
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, response.NewAppError(response.ErrCodeInternal, "Failed to count unread notifications", err.Error())
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, count, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("failed to cache unread count", zap.Error(err))
		}
	}
	return count, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	affected, err := s.repo.MarkRead(ctx, userID, ids)
	if err != nil {
		return 0, response.NewAppError(response.ErrCodeInternal, "Failed to mark notifications read", err.Error())
	}
	s.invalidateUnreadCountCache(ctx, userID)
	return affected, nil
}

func (s *notificationServiceImpl) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	affected, err := s.repo.Delete(ctx, userID, ids)
	if err != nil {
		return 0, response.NewAppError(response.ErrCodeInternal, "Failed to delete notifications", err.Error())
	}
	s.invalidateUnreadCountCache(ctx, userID)
	return affected, nil
}

// PruneRead deletes read notifications older than retentionDays
func (s *notificationServiceImpl) PruneRead(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.repo.DeleteReadOlderThan(ctx, cutoff)
}

func (s *notificationServiceImpl) invalidateUnreadCountCache(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, unreadCacheKey(userID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate unread count cache",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

func unreadCacheKey(userID uuid.UUID) string {
	return "unread:" + userID.String()
}
