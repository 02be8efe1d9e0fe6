package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"study-team-api/internal/database"
	"study-team-api/internal/domain"
)

// TeamSummary is a team row with its member count, as shown in the weekly listing
type TeamSummary struct {
	domain.Team
	MemberCount int64 `json:"memberCount"`
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	ListByWeek(ctx context.Context, week int) ([]TeamSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error

	FindMember(ctx context.Context, teamID, userID uuid.UUID) (*domain.TeamMember, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error)
	AddMember(ctx context.Context, member *domain.TeamMember) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
	UpdateMemberRole(ctx context.Context, teamID, userID uuid.UUID, role domain.TeamRole) error

	ToggleUpvote(ctx context.Context, teamID, userID uuid.UUID) (upvote int64, upvoted bool, err error)
	HasUpvoted(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	RecountUpvotes(ctx context.Context) (int64, error)
}

type teamRepositoryImpl struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepositoryImpl{db: db}
}

// Create creates a team and makes its creator the master in one transaction
func (r *teamRepositoryImpl) Create(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members", "Posts").Create(team).Error; err != nil {
			return err
		}
		master := &domain.TeamMember{
			TeamID:   team.ID,
			UserID:   team.MasterID,
			Role:     domain.TeamRoleMaster,
			JoinedAt: team.CreatedAt,
		}
		return tx.Omit("User").Create(master).Error
	})
}

func (r *teamRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// ListByWeek returns the teams of a week, most upvoted first
func (r *teamRepositoryImpl) ListByWeek(ctx context.Context, week int) ([]TeamSummary, error) {
	var teams []domain.Team
	if err := r.db.WithContext(ctx).
		Where("week = ?", week).
		Order("upvote DESC").
		Order("created_at ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return []TeamSummary{}, nil
	}

	ids := make([]uuid.UUID, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}

	var counts []struct {
		TeamID uuid.UUID
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.TeamMember{}).
		Select("team_id, COUNT(*) AS count").
		Where("team_id IN ?", ids).
		Group("team_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byTeam := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		byTeam[c.TeamID] = c.Count
	}

	summaries := make([]TeamSummary, len(teams))
	for i, t := range teams {
		summaries[i] = TeamSummary{Team: t, MemberCount: byTeam[t.ID]}
	}
	return summaries, nil
}

// Delete removes a team with its members, upvotes, posts, likes and comments
func (r *teamRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&domain.Post{}).Select("id").Where("team_id = ?", id)

		if err := tx.Where("post_id IN (?)", postIDs).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&domain.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&domain.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&domain.TeamUpvote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&domain.TeamMember{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&domain.Team{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *teamRepositoryImpl) FindMember(ctx context.Context, teamID, userID uuid.UUID) (*domain.TeamMember, error) {
	var member domain.TeamMember
	if err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers returns the members of a team with their user profile, in join order
func (r *teamRepositoryImpl) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error) {
	var members []domain.TeamMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *teamRepositoryImpl) AddMember(ctx context.Context, member *domain.TeamMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	return r.db.WithContext(ctx).Omit("User").Create(member).Error
}

func (r *teamRepositoryImpl) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&domain.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teamRepositoryImpl) UpdateMemberRole(ctx context.Context, teamID, userID uuid.UUID, role domain.TeamRole) error {
	result := r.db.WithContext(ctx).
		Model(&domain.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleUpvote adds the user's upvote, or removes it if already present, and returns the new count
func (r *teamRepositoryImpl) ToggleUpvote(ctx context.Context, teamID, userID uuid.UUID) (int64, bool, error) {
	var (
		upvote  int64
		upvoted bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed := tx.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&domain.TeamUpvote{})
		if removed.Error != nil {
			return removed.Error
		}

		delta := -1
		if removed.RowsAffected == 0 {
			if err := tx.Omit("Team").Create(&domain.TeamUpvote{TeamID: teamID, UserID: userID}).Error; err != nil {
				return err
			}
			delta = 1
			upvoted = true
		}

		if err := tx.Model(&domain.Team{}).
			Where("id = ?", teamID).
			UpdateColumn("upvote", gorm.Expr("upvote + ?", delta)).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Team{}).Select("upvote").Where("id = ?", teamID).Row().Scan(&upvote)
	})
	if err != nil {
		return 0, false, err
	}
	return upvote, upvoted, nil
}

func (r *teamRepositoryImpl) HasUpvoted(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.TeamUpvote{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

// RecountUpvotes rebuilds every team's upvote counter from the upvote rows
func (r *teamRepositoryImpl) RecountUpvotes(ctx context.Context) (int64, error) {
	result := r.db.WithContext(database.WithOperation(ctx, "recount")).Exec(
		"UPDATE teams SET upvote = (SELECT COUNT(*) FROM team_upvotes WHERE team_upvotes.team_id = teams.id)",
	)
	return result.RowsAffected, result.Error
}
