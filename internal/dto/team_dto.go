package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTeamRequest represents the request to create a team in a given week
// @Description password is optional; when set, joining requires it
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100" example:"알고리즘 스터디"`
	Description string `json:"description" binding:"max=1000" example:"매주 세 문제"`
	Week        *int   `json:"week" binding:"required,min=0,max=20" example:"3"`
	Password    string `json:"password,omitempty" binding:"max=72"`
}

// JoinTeamRequest carries the room password for protected teams
type JoinTeamRequest struct {
	Password string `json:"password,omitempty"`
}

// UpdateMemberRoleRequest changes a member's role
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin member" example:"admin"`
}

// TeamResponse represents a team in listings
type TeamResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Week        int       `json:"week"`
	MasterID    uuid.UUID `json:"masterId"`
	Upvote      int64     `json:"upvote"`
	HasPassword bool      `json:"hasPassword"`
	MemberCount int64     `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TeamMemberResponse represents a team member
type TeamMemberResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Nickname string    `json:"nickname"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// TeamDetailResponse is the team page: team, members and posts
type TeamDetailResponse struct {
	TeamResponse
	Members   []TeamMemberResponse `json:"members"`
	Posts     []PostResponse       `json:"posts"`
	MyRole    string               `json:"myRole,omitempty"`
	UpvotedBy bool                 `json:"upvotedByMe"`
}

// UpvoteResponse is the result of toggling a team upvote
type UpvoteResponse struct {
	Upvote  int64 `json:"upvote"`
	Upvoted bool  `json:"upvoted"`
}
