package dto

import (
	"time"

	"github.com/google/uuid"
)

// SignupRequest represents the request to create an account
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"alice"`
	Password string `json:"password" binding:"required,min=4,max=72" example:"s3cret!"`
	Nickname string `json:"nickname" binding:"required,min=1,max=50" example:"앨리스"`
}

// LoginRequest represents the login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Nickname     string    `json:"nickname"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LoginResponse carries the session token also set as the auth cookie
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn" example:"3600"`
	User      UserResponse `json:"user"`
}
