package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationKind distinguishes comment and reply notifications
type NotificationKind string

const (
	NotificationKindComment NotificationKind = "comment"
	NotificationKindReply   NotificationKind = "reply"
)

// Notification is created when someone comments on a user's post or replies to a user's comment
type Notification struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_recipient,priority:1" json:"recipientId"`
	Kind               NotificationKind  `gorm:"type:varchar(20);not null" json:"kind"`
	Title              string            `gorm:"type:varchar(255);not null" json:"title"`
	Message            string            `gorm:"type:text;not null" json:"message"`
	PostTitle          string            `gorm:"type:varchar(255)" json:"postTitle"`
	TeamID             uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_team_id" json:"teamId"`
	PostID             uuid.UUID         `gorm:"type:uuid;not null" json:"postId"`
	OriginatingUserID  uuid.UUID         `gorm:"type:uuid;not null" json:"originatingUserId"`
	OriginatingContent string            `gorm:"type:text" json:"originatingContent"`
	IsRead             bool              `gorm:"not null;default:false;index:idx_notifications_recipient,priority:2" json:"isRead"`
	Metadata           datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt          time.Time         `gorm:"not null;index:idx_notifications_created_at" json:"createdAt"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns an id when the caller did not set one
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
