package dto

import (
	"github.com/google/uuid"

	"study-team-api/internal/domain"
)

// NotificationIDsRequest selects notifications; an empty list means all of the caller's
type NotificationIDsRequest struct {
	NotificationIDs []uuid.UUID `json:"notificationIds"`
}

// NotificationListResponse is the notification panel payload
type NotificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

// UnreadCountResponse carries the unread badge count
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// AffectedResponse reports how many rows an operation touched
type AffectedResponse struct {
	Affected int64 `json:"affected"`
}
