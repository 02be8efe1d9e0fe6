package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"study-team-api/internal/dto"
	"study-team-api/internal/imagegc"
	"study-team-api/internal/repository"
	"study-team-api/internal/response"
)

// AdminChecker reports whether a username belongs to a site administrator
type AdminChecker interface {
	IsAdmin(username string) bool
}

// ImageService defines the interface for on-demand orphan image sweeps
type ImageService interface {
	Cleanup(ctx context.Context, userID uuid.UUID, req *dto.ImageCleanupRequest) (*dto.ImageCleanupResponse, error)
}

type imageServiceImpl struct {
	collector     ImageCollector
	userRepo      repository.UserRepository
	admins        AdminChecker
	defaultWindow time.Duration
	logger        *zap.Logger
}

// NewImageService creates a new instance of ImageService
func NewImageService(collector ImageCollector, userRepo repository.UserRepository, admins AdminChecker, defaultWindow time.Duration, logger *zap.Logger) ImageService {
	return &imageServiceImpl{
		collector:     collector,
		userRepo:      userRepo,
		admins:        admins,
		defaultWindow: defaultWindow,
		logger:        logger,
	}
}

// Cleanup runs a global or recent sweep; administrators only
func (s *imageServiceImpl) Cleanup(ctx context.Context, userID uuid.UUID, req *dto.ImageCleanupRequest) (*dto.ImageCleanupResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found", "Failed to fetch user")
	}
	if s.admins == nil || !s.admins.IsAdmin(user.Username) {
		return nil, response.NewForbiddenError("Administrator access required", "")
	}

	var result *imagegc.Result
	switch req.Scope {
	case "", imagegc.ScopeGlobal:
		result, err = s.collector.CollectOrphansGlobal(ctx)
	case imagegc.ScopeRecent:
		window := s.defaultWindow
		if req.WindowMinutes > 0 {
			window = time.Duration(req.WindowMinutes) * time.Minute
		}
		result, err = s.collector.CollectOrphansScoped(ctx, window)
	default:
		return nil, response.NewValidationError("Scope must be global or recent", "")
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Image cleanup failed", err.Error())
	}

	s.logger.Info("image cleanup requested",
		zap.String("user_id", userID.String()),
		zap.String("scope", result.Scope),
		zap.Int("deleted", len(result.Deleted)),
	)
	return toCleanupResponse(result), nil
}

func toCleanupResponse(r *imagegc.Result) *dto.ImageCleanupResponse {
	deleted := r.Deleted
	if deleted == nil {
		deleted = []string{}
	}
	return &dto.ImageCleanupResponse{
		Scope:      r.Scope,
		Scanned:    r.Scanned,
		Referenced: r.Referenced,
		Deleted:    deleted,
		Failed:     r.Failed,
		Count:      len(deleted),
	}
}
