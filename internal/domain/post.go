package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a rich-text post on a team page
type Post struct {
	BaseModel
	TeamID   uuid.UUID `gorm:"type:uuid;not null;index:idx_posts_team_id" json:"teamId"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index:idx_posts_author_id" json:"authorId"`
	Title    string    `gorm:"type:varchar(255);not null" json:"title"`
	Content  string    `gorm:"type:text" json:"content"`
	Likes    int64     `gorm:"not null;default:0" json:"likes"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// PostLike records that a user liked a post
type PostLike struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"postId"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for PostLike
func (PostLike) TableName() string {
	return "post_likes"
}
