package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"study-team-api/internal/domain"
	"study-team-api/internal/dto"
	"study-team-api/internal/metrics"
	"study-team-api/internal/repository"
	"study-team-api/internal/response"
	"study-team-api/internal/thread"
)

const notificationPreviewLength = 100

// CommentService defines the interface for comment business logic
type CommentService interface {
	ListComments(ctx context.Context, postID uuid.UUID) ([]dto.CommentResponse, error)
	AddComment(ctx context.Context, userID, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	AddReply(ctx context.Context, userID, postID, parentID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, userID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) (*dto.DeleteCommentResponse, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	teamRepo    repository.TeamRepository
	userRepo    repository.UserRepository
	notifier    NotificationService
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		metrics:     m,
		logger:      logger,
	}
}

// ListComments returns a post's comments in display order: each main comment followed by its replies
func (s *commentServiceImpl) ListComments(ctx context.Context, postID uuid.UUID) ([]dto.CommentResponse, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, repoError(err, "Post not found", "Failed to fetch post")
	}
	return s.organizedComments(ctx, postID)
}

func (s *commentServiceImpl) organizedComments(ctx context.Context, postID uuid.UUID) ([]dto.CommentResponse, error) {
	comments, err := s.commentRepo.FindByPostID(ctx, postID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comments", err.Error())
	}

	ordered, err := thread.Organize(comments)
	if err != nil {
		s.logger.Warn("Failed to organize comment thread, returning stored order",
			zap.String("post_id", postID.String()),
			zap.Error(err),
		)
	}

	names := s.authorNames(ctx, comments)
	result := make([]dto.CommentResponse, len(ordered))
	for i := range ordered {
		result[i] = toCommentResponse(&ordered[i], names[ordered[i].AuthorID])
	}
	return result, nil
}

// AddComment adds a main comment and notifies the post author
func (s *commentServiceImpl) AddComment(ctx context.Context, userID, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, response.NewValidationError("Comment content is required", "")
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, repoError(err, "Post not found", "Failed to fetch post")
	}

	comment := &domain.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}
	s.metrics.IncrementCommentCreated(false)

	actor := s.actorName(ctx, userID)
	if userID != post.AuthorID {
		s.notify(ctx, &domain.Notification{
			RecipientID:        post.AuthorID,
			Kind:               domain.NotificationKindComment,
			Title:              "새 댓글",
			Message:            actor + "님이 회원님의 게시글에 댓글을 남겼습니다.",
			PostTitle:          post.Title,
			TeamID:             post.TeamID,
			PostID:             post.ID,
			OriginatingUserID:  userID,
			OriginatingContent: preview(content),
			Metadata:           map[string]interface{}{"commentId": comment.ID.String()},
		})
	}

	resp := toCommentResponse(comment, actor)
	return &resp, nil
}

// AddReply adds a reply to a main comment and notifies the parent comment's author
func (s *commentServiceImpl) AddReply(ctx context.Context, userID, postID, parentID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, response.NewValidationError("Reply content is required", "")
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, repoError(err, "Post not found", "Failed to fetch post")
	}

	parent, err := s.commentRepo.FindByID(ctx, parentID)
	if err != nil {
		return nil, repoError(err, "Comment not found", "Failed to fetch comment")
	}
	if parent.PostID != post.ID {
		return nil, response.NewNotFoundError("Comment not found", "")
	}
	if parent.IsReply {
		return nil, response.NewValidationError("Cannot reply to a reply", "")
	}

	reply := &domain.Comment{
		PostID:          post.ID,
		AuthorID:        userID,
		Content:         content,
		IsReply:         true,
		ParentCommentID: &parent.ID,
	}
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create reply", err.Error())
	}
	s.metrics.IncrementCommentCreated(true)

	actor := s.actorName(ctx, userID)
	if userID != parent.AuthorID {
		s.notify(ctx, &domain.Notification{
			RecipientID:        parent.AuthorID,
			Kind:               domain.NotificationKindReply,
			Title:              "새 답글",
			Message:            actor + "님이 회원님의 댓글에 답글을 남겼습니다.",
			PostTitle:          post.Title,
			TeamID:             post.TeamID,
			PostID:             post.ID,
			OriginatingUserID:  userID,
			OriginatingContent: preview(content),
			Metadata: map[string]interface{}{
				"commentId":       reply.ID.String(),
				"parentCommentId": parent.ID.String(),
			},
		})
	}

	resp := toCommentResponse(reply, actor)
	return &resp, nil
}

// UpdateComment edits a comment; only its author may do so
func (s *commentServiceImpl) UpdateComment(ctx context.Context, userID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, response.NewValidationError("Comment content is required", "")
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, repoError(err, "Comment not found", "Failed to fetch comment")
	}
	if comment.AuthorID != userID {
		return nil, response.NewForbiddenError("Only the author can edit this comment", "")
	}

	if err := s.commentRepo.UpdateContent(ctx, comment, content); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update comment", err.Error())
	}

	resp := toCommentResponse(comment, s.actorName(ctx, userID))
	return &resp, nil
}

// DeleteComment removes a comment, cascading to its replies when it is a main comment.
// Allowed for the comment author, the post author, the team master or a team admin.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) (*dto.DeleteCommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, repoError(err, "Comment not found", "Failed to fetch comment")
	}

	if comment.AuthorID != userID {
		post, err := s.postRepo.FindByID(ctx, comment.PostID)
		if err != nil {
			return nil, repoError(err, "Post not found", "Failed to fetch post")
		}
		allowed, err := canModeratePost(ctx, s.teamRepo, post, userID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, response.NewForbiddenError("You cannot delete this comment", "")
		}
	}

	deleted, err := s.commentRepo.DeleteWithReplies(ctx, comment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}

	s.logger.Info("comment deleted",
		zap.String("comment_id", comment.ID.String()),
		zap.Int("removed", len(deleted)),
	)
	return &dto.DeleteCommentResponse{DeletedIDs: deleted}, nil
}

// notify records a notification; failures never fail the triggering comment
func (s *commentServiceImpl) notify(ctx context.Context, n *domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Error("Failed to create notification",
			zap.String("recipient_id", n.RecipientID.String()),
			zap.String("kind", string(n.Kind)),
			zap.Error(err),
		)
	}
}

func (s *commentServiceImpl) actorName(ctx context.Context, userID uuid.UUID) string {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return "알 수 없는 사용자"
	}
	return user.Nickname
}

func (s *commentServiceImpl) authorNames(ctx context.Context, comments []domain.Comment) map[uuid.UUID]string {
	seen := make(map[uuid.UUID]struct{}, len(comments))
	ids := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.AuthorID]; !ok {
			seen[c.AuthorID] = struct{}{}
			ids = append(ids, c.AuthorID)
		}
	}
	return nicknames(ctx, s.userRepo, ids, s.logger)
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= notificationPreviewLength {
		return content
	}
	return string(runes[:notificationPreviewLength]) + "..."
}
