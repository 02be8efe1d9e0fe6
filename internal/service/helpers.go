package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"study-team-api/internal/domain"
	"study-team-api/internal/dto"
	"study-team-api/internal/repository"
	"study-team-api/internal/response"
)

// repoError translates a repository error into an AppError
func repoError(err error, notFoundMessage, internalMessage string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeNotFound, notFoundMessage, "")
	}
	return response.NewAppError(response.ErrCodeInternal, internalMessage, err.Error())
}

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Nickname:     u.Nickname,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

func toPostResponse(p *domain.Post, authorName string) dto.PostResponse {
	return dto.PostResponse{
		ID:         p.ID,
		TeamID:     p.TeamID,
		AuthorID:   p.AuthorID,
		AuthorName: authorName,
		Title:      p.Title,
		Content:    p.Content,
		Likes:      p.Likes,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toCommentResponse(c *domain.Comment, authorName string) dto.CommentResponse {
	return dto.CommentResponse{
		ID:              c.ID,
		PostID:          c.PostID,
		AuthorID:        c.AuthorID,
		AuthorName:      authorName,
		Content:         c.Content,
		IsReply:         c.IsReply,
		ParentCommentID: c.ParentCommentID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toTeamResponse(t *domain.Team, memberCount int64) dto.TeamResponse {
	return dto.TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Week:        t.Week,
		MasterID:    t.MasterID,
		Upvote:      t.Upvote,
		HasPassword: t.HasPassword(),
		MemberCount: memberCount,
		CreatedAt:   t.CreatedAt,
	}
}

// canModeratePost reports whether userID may edit or delete content on post:
// the post author, or the team's master or an admin.
func canModeratePost(ctx context.Context, teamRepo repository.TeamRepository, post *domain.Post, userID uuid.UUID) (bool, error) {
	if post.AuthorID == userID {
		return true, nil
	}

	member, err := teamRepo.FindMember(ctx, post.TeamID, userID)
	switch {
	case err == nil:
		if member.Role.CanModerate() {
			return true, nil
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, response.NewAppError(response.ErrCodeInternal, "Failed to check team membership", err.Error())
	}

	return false, nil
}

func nicknames(ctx context.Context, userRepo repository.UserRepository, ids []uuid.UUID, logger *zap.Logger) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names
	}
	users, err := userRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Failed to fetch author names", zap.Error(err))
		return names
	}
	for _, u := range users {
		names[u.ID] = u.Nickname
	}
	return names
}
