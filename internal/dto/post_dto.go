package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreatePostRequest represents the request to create a post; content is rich text (HTML)
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=255" example:"3주차 풀이"`
	Content string `json:"content" example:"<p>풀이</p><img src=\"/static/uploads/x.png\">"`
}

// UpdatePostRequest represents the request to update a post. All fields are optional.
type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=255"`
	Content *string `json:"content"`
}

// PostResponse represents a post
type PostResponse struct {
	ID         uuid.UUID `json:"id"`
	TeamID     uuid.UUID `json:"teamId"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Likes      int64     `json:"likes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PostDetailResponse is a post with its organized comment thread
type PostDetailResponse struct {
	PostResponse
	LikedByMe bool              `json:"likedByMe"`
	Comments  []CommentResponse `json:"comments"`
}

// LikeResponse is the result of toggling a post like
type LikeResponse struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}
