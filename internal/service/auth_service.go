package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"study-team-api/internal/auth"
	"study-team-api/internal/domain"
	"study-team-api/internal/dto"
	"study-team-api/internal/repository"
	"study-team-api/internal/response"
)

// TokenIssuer signs session tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
	Expiration() time.Duration
}

// AuthService defines the interface for account business logic
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authServiceImpl struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Signup creates an account; usernames are unique
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	nickname := strings.TrimSpace(req.Nickname)
	if username == "" || nickname == "" {
		return nil, response.NewValidationError("Username and nickname are required", "")
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, response.NewConflictError("Username already exists", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check username", err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	user := &domain.User{
		Username:     username,
		Nickname:     nickname,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflictError("Username already exists", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create user", err.Error())
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID.String()))
	resp := toUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues a session token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorizedError("Invalid username or password", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch user", err.Error())
	}
	if !auth.ComparePassword(user.PasswordHash, req.Password) {
		return nil, response.NewUnauthorizedError("Invalid username or password", "")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.tokens.Expiration().Seconds()),
		User:      toUserResponse(user),
	}, nil
}

// Me returns the authenticated user
func (s *authServiceImpl) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found", "Failed to fetch user")
	}
	resp := toUserResponse(user)
	return &resp, nil
}
