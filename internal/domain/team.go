package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinWeek = 0
	MaxWeek = 20
)

// TeamRole represents a member's role within a team
type TeamRole string

const (
	TeamRoleMaster TeamRole = "master"
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

// CanModerate reports whether the role may edit or delete other members' content
func (r TeamRole) CanModerate() bool {
	return r == TeamRoleMaster || r == TeamRoleAdmin
}

// Team represents a weekly study group
type Team struct {
	BaseModel
	Name         string       `gorm:"type:varchar(100);not null" json:"name"`
	Description  string       `gorm:"type:text" json:"description"`
	Week         int          `gorm:"not null;index:idx_teams_week" json:"week"`
	PasswordHash string       `gorm:"type:varchar(255)" json:"-"`
	MasterID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_teams_master_id" json:"masterId"`
	Upvote       int64        `gorm:"not null;default:0" json:"upvote"`
	Members      []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Posts        []Post       `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// TableName specifies the table name for Team
func (Team) TableName() string {
	return "teams"
}

// HasPassword reports whether joining requires a room password
func (t *Team) HasPassword() bool {
	return t.PasswordHash != ""
}

// TeamMember represents a user's membership in a team
type TeamMember struct {
	BaseModel
	TeamID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user,priority:1" json:"teamId"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user,priority:2;index:idx_team_members_user_id" json:"userId"`
	Role     TeamRole  `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joinedAt"`
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}

// TeamUpvote records that a user upvoted a team
type TeamUpvote struct {
	TeamID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"teamId"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	Team      Team      `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for TeamUpvote
func (TeamUpvote) TableName() string {
	return "team_upvotes"
}
