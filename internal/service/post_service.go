package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"study-team-api/internal/domain"
	"study-team-api/internal/dto"
	"study-team-api/internal/metrics"
	"study-team-api/internal/repository"
	"study-team-api/internal/response"
)

// PostService defines the interface for post business logic
type PostService interface {
	CreatePost(ctx context.Context, userID, teamID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetPost(ctx context.Context, userID, postID uuid.UUID) (*dto.PostDetailResponse, error)
	UpdatePost(ctx context.Context, userID, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error
	ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*dto.LikeResponse, error)
}

type postServiceImpl struct {
	postRepo repository.PostRepository
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	comments CommentService
	images   imageCleaner
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewPostService creates a new instance of PostService.
// scopedWindow bounds the sweep of recent uploads run after creates and edits.
func NewPostService(
	postRepo repository.PostRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	comments CommentService,
	collector ImageCollector,
	scopedWindow time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) PostService {
	return &postServiceImpl{
		postRepo: postRepo,
		teamRepo: teamRepo,
		userRepo: userRepo,
		comments: comments,
		images:   imageCleaner{collector: collector, window: scopedWindow, logger: logger},
		metrics:  m,
		logger:   logger,
	}
}

// CreatePost creates a post on a team page; only members may post
func (s *postServiceImpl) CreatePost(ctx context.Context, userID, teamID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, response.NewValidationError("Post title is required", "")
	}

	if _, err := s.teamRepo.FindByID(ctx, teamID); err != nil {
		return nil, repoError(err, "Team not found", "Failed to fetch team")
	}
	if _, err := s.teamRepo.FindMember(ctx, teamID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewForbiddenError("Only team members can post", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check team membership", err.Error())
	}

	post := &domain.Post{
		TeamID:   teamID,
		AuthorID: userID,
		Title:    title,
		Content:  req.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create post", err.Error())
	}
	s.metrics.IncrementPostCreated()

	s.images.sweepRecent(ctx)

	resp := toPostResponse(post, s.authorName(ctx, userID))
	return &resp, nil
}

// GetPost returns a post with its organized comments
func (s *postServiceImpl) GetPost(ctx context.Context, userID, postID uuid.UUID) (*dto.PostDetailResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, repoError(err, "Post not found", "Failed to fetch post")
	}

	liked, err := s.postRepo.IsLikedBy(ctx, postID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch like state", err.Error())
	}

	comments, err := s.comments.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &dto.PostDetailResponse{
		PostResponse: toPostResponse(post, s.authorName(ctx, post.AuthorID)),
		LikedByMe:    liked,
		Comments:     comments,
	}, nil
}

// UpdatePost edits a post and reclaims images the edit dropped
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.loadForModeration(ctx, userID, postID, "You cannot edit this post")
	if err != nil {
		return nil, err
	}

	oldContent := post.Content
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, response.NewValidationError("Post title is required", "")
		}
		post.Title = title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update post", err.Error())
	}

	s.images.reclaim(ctx, s.images.removed(oldContent, post.Content))
	s.images.sweepRecent(ctx)

	resp := toPostResponse(post, s.authorName(ctx, post.AuthorID))
	return &resp, nil
}

// DeletePost deletes a post with its comments and reclaims the images it referenced
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.loadForModeration(ctx, userID, postID, "You cannot delete this post")
	if err != nil {
		return err
	}

	candidates := s.images.references(post.Content)
	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return repoError(err, "Post not found", "Failed to delete post")
	}

	s.images.reclaim(ctx, candidates)
	return nil
}

// ToggleLike likes the post, or removes the caller's like
func (s *postServiceImpl) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*dto.LikeResponse, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, repoError(err, "Post not found", "Failed to fetch post")
	}
	likes, liked, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to toggle like", err.Error())
	}
	return &dto.LikeResponse{Likes: likes, Liked: liked}, nil
}

func (s *postServiceImpl) loadForModeration(ctx context.Context, userID, postID uuid.UUID, forbidden string) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, repoError(err, "Post not found", "Failed to fetch post")
	}
	allowed, err := canModeratePost(ctx, s.teamRepo, post, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, response.NewForbiddenError(forbidden, "")
	}
	return post, nil
}

func (s *postServiceImpl) authorName(ctx context.Context, userID uuid.UUID) string {
	return nicknames(ctx, s.userRepo, []uuid.UUID{userID}, s.logger)[userID]
}
