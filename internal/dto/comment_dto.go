package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request to add a comment or a reply
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1" example:"좋은 풀이네요"`
}

// UpdateCommentRequest represents the request to edit a comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CommentResponse represents a comment in display order
type CommentResponse struct {
	ID              uuid.UUID  `json:"id"`
	PostID          uuid.UUID  `json:"postId"`
	AuthorID        uuid.UUID  `json:"authorId"`
	AuthorName      string     `json:"authorName,omitempty"`
	Content         string     `json:"content"`
	IsReply         bool       `json:"isReply"`
	ParentCommentID *uuid.UUID `json:"parentCommentId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// DeleteCommentResponse lists every comment removed, including cascaded replies
type DeleteCommentResponse struct {
	DeletedIDs []uuid.UUID `json:"deletedIds"`
}
