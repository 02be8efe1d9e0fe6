package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"study-team-api/internal/auth"
	"study-team-api/internal/domain"
	"study-team-api/internal/dto"
	"study-team-api/internal/imagegc"
	"study-team-api/internal/repository"
	"study-team-api/internal/response"
)

// TeamService defines the interface for team business logic
type TeamService interface {
	ListTeams(ctx context.Context, week int) ([]dto.TeamResponse, error)
	CreateTeam(ctx context.Context, userID uuid.UUID, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	GetTeam(ctx context.Context, userID, teamID uuid.UUID) (*dto.TeamDetailResponse, error)
	DeleteTeam(ctx context.Context, userID, teamID uuid.UUID) error
	JoinTeam(ctx context.Context, userID, teamID uuid.UUID, req *dto.JoinTeamRequest) (*dto.TeamMemberResponse, error)
	LeaveTeam(ctx context.Context, userID, teamID uuid.UUID) error
	ToggleUpvote(ctx context.Context, userID, teamID uuid.UUID) (*dto.UpvoteResponse, error)
	UpdateMemberRole(ctx context.Context, userID, teamID, targetUserID uuid.UUID, req *dto.UpdateMemberRoleRequest) (*dto.TeamMemberResponse, error)
}

type teamServiceImpl struct {
	teamRepo repository.TeamRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	images   imageCleaner
	logger   *zap.Logger
}

// NewTeamService creates a new instance of TeamService
func NewTeamService(
	teamRepo repository.TeamRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	collector ImageCollector,
	logger *zap.Logger,
) TeamService {
	return &teamServiceImpl{
		teamRepo: teamRepo,
		postRepo: postRepo,
		userRepo: userRepo,
		images:   imageCleaner{collector: collector, logger: logger},
		logger:   logger,
	}
}

// ListTeams returns the teams of a week, most upvoted first
func (s *teamServiceImpl) ListTeams(ctx context.Context, week int) ([]dto.TeamResponse, error) {
	if week < domain.MinWeek || week > domain.MaxWeek {
		return nil, response.NewValidationError("Week must be between 0 and 20", "")
	}

	teams, err := s.teamRepo.ListByWeek(ctx, week)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch teams", err.Error())
	}

	result := make([]dto.TeamResponse, len(teams))
	for i := range teams {
		result[i] = toTeamResponse(&teams[i].Team, teams[i].MemberCount)
	}
	return result, nil
}

// CreateTeam creates a team; the creator becomes its master
func (s *teamServiceImpl) CreateTeam(ctx context.Context, userID uuid.UUID, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if req.Week == nil || *req.Week < domain.MinWeek || *req.Week > domain.MaxWeek {
		return nil, response.NewValidationError("Week must be between 0 and 20", "")
	}

	team := &domain.Team{
		Name:        req.Name,
		Description: req.Description,
		Week:        *req.Week,
		MasterID:    userID,
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash team password", err.Error())
		}
		team.PasswordHash = hash
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create team", err.Error())
	}

	s.logger.Info("team created",
		zap.String("team_id", team.ID.String()),
		zap.Int("week", team.Week),
	)
	resp := toTeamResponse(team, 1)
	return &resp, nil
}

// GetTeam returns the team page: members, posts and the caller's relation to the team
func (s *teamServiceImpl) GetTeam(ctx context.Context, userID, teamID uuid.UUID) (*dto.TeamDetailResponse, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, repoError(err, "Team not found", "Failed to fetch team")
	}

	members, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch team members", err.Error())
	}
	posts, err := s.postRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch posts", err.Error())
	}
	upvoted, err := s.teamRepo.HasUpvoted(ctx, teamID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch upvote state", err.Error())
	}

	detail := &dto.TeamDetailResponse{
		TeamResponse: toTeamResponse(team, int64(len(members))),
		Members:      make([]dto.TeamMemberResponse, len(members)),
		Posts:        make([]dto.PostResponse, len(posts)),
		UpvotedBy:    upvoted,
	}
	for i := range members {
		detail.Members[i] = toMemberResponse(&members[i])
		if members[i].UserID == userID {
			detail.MyRole = string(members[i].Role)
		}
	}

	authorIDs := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		authorIDs = append(authorIDs, p.AuthorID)
	}
	names := nicknames(ctx, s.userRepo, authorIDs, s.logger)
	for i := range posts {
		detail.Posts[i] = toPostResponse(&posts[i], names[posts[i].AuthorID])
	}

	return detail, nil
}

// DeleteTeam deletes a team with all of its posts and comments; master only.
// Images referenced by the deleted posts are reclaimed afterwards.
func (s *teamServiceImpl) DeleteTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return repoError(err, "Team not found", "Failed to fetch team")
	}
	if team.MasterID != userID {
		return response.NewForbiddenError("Only the team master can delete the team", "")
	}

	contents, err := s.postRepo.ContentsByTeam(ctx, teamID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch team posts", err.Error())
	}
	candidates := imagegc.RefSet{}
	for _, content := range contents {
		candidates.Union(s.images.references(content))
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return repoError(err, "Team not found", "Failed to delete team")
	}

	s.logger.Info("team deleted",
		zap.String("team_id", teamID.String()),
		zap.Int("posts", len(contents)),
	)
	s.images.reclaim(ctx, candidates)
	return nil
}

// JoinTeam adds the caller to a team, checking the room password when one is set
func (s *teamServiceImpl) JoinTeam(ctx context.Context, userID, teamID uuid.UUID, req *dto.JoinTeamRequest) (*dto.TeamMemberResponse, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, repoError(err, "Team not found", "Failed to fetch team")
	}

	if _, err := s.teamRepo.FindMember(ctx, teamID, userID); err == nil {
		return nil, response.NewConflictError("Already a member of this team", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check team membership", err.Error())
	}

	if team.HasPassword() {
		password := ""
		if req != nil {
			password = req.Password
		}
		if !auth.ComparePassword(team.PasswordHash, password) {
			return nil, response.NewForbiddenError("Incorrect team password", "")
		}
	}

	member := &domain.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Role:     domain.TeamRoleMember,
		JoinedAt: time.Now(),
	}
	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to join team", err.Error())
	}

	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		member.User = *user
	}
	resp := toMemberResponse(member)
	return &resp, nil
}

// LeaveTeam removes the caller from a team; the master has to delete the team instead
func (s *teamServiceImpl) LeaveTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return repoError(err, "Team not found", "Failed to fetch team")
	}
	if team.MasterID == userID {
		return response.NewValidationError("The team master cannot leave the team", "")
	}

	if err := s.teamRepo.RemoveMember(ctx, teamID, userID); err != nil {
		return repoError(err, "Not a member of this team", "Failed to leave team")
	}
	return nil
}

// ToggleUpvote upvotes the team, or removes the caller's upvote
func (s *teamServiceImpl) ToggleUpvote(ctx context.Context, userID, teamID uuid.UUID) (*dto.UpvoteResponse, error) {
	if _, err := s.teamRepo.FindByID(ctx, teamID); err != nil {
		return nil, repoError(err, "Team not found", "Failed to fetch team")
	}
	upvote, upvoted, err := s.teamRepo.ToggleUpvote(ctx, teamID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to toggle upvote", err.Error())
	}
	return &dto.UpvoteResponse{Upvote: upvote, Upvoted: upvoted}, nil
}

// UpdateMemberRole promotes a member to admin or demotes an admin; master only
func (s *teamServiceImpl) UpdateMemberRole(ctx context.Context, userID, teamID, targetUserID uuid.UUID, req *dto.UpdateMemberRoleRequest) (*dto.TeamMemberResponse, error) {
	role := domain.TeamRole(req.Role)
	if role != domain.TeamRoleAdmin && role != domain.TeamRoleMember {
		return nil, response.NewValidationError("Role must be admin or member", "")
	}

	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, repoError(err, "Team not found", "Failed to fetch team")
	}
	if team.MasterID != userID {
		return nil, response.NewForbiddenError("Only the team master can change roles", "")
	}
	if targetUserID == team.MasterID {
		return nil, response.NewValidationError("The master's role cannot be changed", "")
	}

	if err := s.teamRepo.UpdateMemberRole(ctx, teamID, targetUserID, role); err != nil {
		return nil, repoError(err, "Member not found", "Failed to update member role")
	}

	member, err := s.teamRepo.FindMember(ctx, teamID, targetUserID)
	if err != nil {
		return nil, repoError(err, "Member not found", "Failed to fetch member")
	}
	if user, err := s.userRepo.FindByID(ctx, targetUserID); err == nil {
		member.User = *user
	}
	resp := toMemberResponse(member)
	return &resp, nil
}

func toMemberResponse(m *domain.TeamMember) dto.TeamMemberResponse {
	return dto.TeamMemberResponse{
		UserID:   m.UserID,
		Username: m.User.Username,
		Nickname: m.User.Nickname,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}
