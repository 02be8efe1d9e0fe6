package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a main comment or a reply on a post.
// ParentCommentID is set iff IsReply.
type Comment struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PostID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_post_id" json:"postId"`
	AuthorID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_author_id" json:"authorId"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	IsReply         bool       `gorm:"not null;default:false" json:"isReply"`
	ParentCommentID *uuid.UUID `gorm:"type:uuid;index:idx_comments_parent_id" json:"parentCommentId,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt       *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate assigns an id when the caller did not set one
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
