package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"study-team-api/internal/domain"
	"study-team-api/internal/dto"
)

// setupTestRouter returns a router that authenticates every request as userID.
// Pass uuid.Nil to leave the request unauthenticated.
func setupTestRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	return r
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	SignupFunc func(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	LoginFunc  func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	MeFunc     func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

func (m *MockAuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, req)
	}
	return &dto.UserResponse{ID: uuid.New(), Username: req.Username, Nickname: req.Nickname}, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &dto.LoginResponse{Token: "token", ExpiresIn: 3600}, nil
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return &dto.UserResponse{ID: userID}, nil
}

// MockTeamService is a mock implementation of TeamService
type MockTeamService struct {
	ListTeamsFunc        func(ctx context.Context, week int) ([]dto.TeamResponse, error)
	CreateTeamFunc       func(ctx context.Context, userID uuid.UUID, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	GetTeamFunc          func(ctx context.Context, userID, teamID uuid.UUID) (*dto.TeamDetailResponse, error)
	DeleteTeamFunc       func(ctx context.Context, userID, teamID uuid.UUID) error
	JoinTeamFunc         func(ctx context.Context, userID, teamID uuid.UUID, req *dto.JoinTeamRequest) (*dto.TeamMemberResponse, error)
	LeaveTeamFunc        func(ctx context.Context, userID, teamID uuid.UUID) error
	ToggleUpvoteFunc     func(ctx context.Context, userID, teamID uuid.UUID) (*dto.UpvoteResponse, error)
	UpdateMemberRoleFunc func(ctx context.Context, userID, teamID, targetUserID uuid.UUID, req *dto.UpdateMemberRoleRequest) (*dto.TeamMemberResponse, error)
}

func (m *MockTeamService) ListTeams(ctx context.Context, week int) ([]dto.TeamResponse, error) {
	if m.ListTeamsFunc != nil {
		return m.ListTeamsFunc(ctx, week)
	}
	return []dto.TeamResponse{}, nil
}

func (m *MockTeamService) CreateTeam(ctx context.Context, userID uuid.UUID, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if m.CreateTeamFunc != nil {
		return m.CreateTeamFunc(ctx, userID, req)
	}
	return &dto.TeamResponse{ID: uuid.New(), Name: req.Name, MasterID: userID}, nil
}

func (m *MockTeamService) GetTeam(ctx context.Context, userID, teamID uuid.UUID) (*dto.TeamDetailResponse, error) {
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(ctx, userID, teamID)
	}
	return &dto.TeamDetailResponse{TeamResponse: dto.TeamResponse{ID: teamID}}, nil
}

func (m *MockTeamService) DeleteTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	if m.DeleteTeamFunc != nil {
		return m.DeleteTeamFunc(ctx, userID, teamID)
	}
	return nil
}

func (m *MockTeamService) JoinTeam(ctx context.Context, userID, teamID uuid.UUID, req *dto.JoinTeamRequest) (*dto.TeamMemberResponse, error) {
	if m.JoinTeamFunc != nil {
		return m.JoinTeamFunc(ctx, userID, teamID, req)
	}
	return &dto.TeamMemberResponse{UserID: userID, Role: string(domain.TeamRoleMember)}, nil
}

func (m *MockTeamService) LeaveTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	if m.LeaveTeamFunc != nil {
		return m.LeaveTeamFunc(ctx, userID, teamID)
	}
	return nil
}

func (m *MockTeamService) ToggleUpvote(ctx context.Context, userID, teamID uuid.UUID) (*dto.UpvoteResponse, error) {
	if m.ToggleUpvoteFunc != nil {
		return m.ToggleUpvoteFunc(ctx, userID, teamID)
	}
	return &dto.UpvoteResponse{Upvote: 1, Upvoted: true}, nil
}

func (m *MockTeamService) UpdateMemberRole(ctx context.Context, userID, teamID, targetUserID uuid.UUID, req *dto.UpdateMemberRoleRequest) (*dto.TeamMemberResponse, error) {
	if m.UpdateMemberRoleFunc != nil {
		return m.UpdateMemberRoleFunc(ctx, userID, teamID, targetUserID, req)
	}
	return &dto.TeamMemberResponse{UserID: targetUserID, Role: req.Role}, nil
}

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	CreatePostFunc func(ctx context.Context, userID, teamID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetPostFunc    func(ctx context.Context, userID, postID uuid.UUID) (*dto.PostDetailResponse, error)
	UpdatePostFunc func(ctx context.Context, userID, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePostFunc func(ctx context.Context, userID, postID uuid.UUID) error
	ToggleLikeFunc func(ctx context.Context, userID, postID uuid.UUID) (*dto.LikeResponse, error)
}

func (m *MockPostService) CreatePost(ctx context.Context, userID, teamID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, userID, teamID, req)
	}
	return &dto.PostResponse{ID: uuid.New(), TeamID: teamID, AuthorID: userID, Title: req.Title, Content: req.Content}, nil
}

func (m *MockPostService) GetPost(ctx context.Context, userID, postID uuid.UUID) (*dto.PostDetailResponse, error) {
	if m.GetPostFunc != nil {
		return m.GetPostFunc(ctx, userID, postID)
	}
	return &dto.PostDetailResponse{PostResponse: dto.PostResponse{ID: postID}}, nil
}

func (m *MockPostService) UpdatePost(ctx context.Context, userID, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(ctx, userID, postID, req)
	}
	return &dto.PostResponse{ID: postID}, nil
}

func (m *MockPostService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, userID, postID)
	}
	return nil
}

func (m *MockPostService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*dto.LikeResponse, error) {
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, userID, postID)
	}
	return &dto.LikeResponse{Likes: 1, Liked: true}, nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListCommentsFunc  func(ctx context.Context, postID uuid.UUID) ([]dto.CommentResponse, error)
	AddCommentFunc    func(ctx context.Context, userID, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	AddReplyFunc      func(ctx context.Context, userID, postID, parentID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	UpdateCommentFunc func(ctx context.Context, userID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteCommentFunc func(ctx context.Context, userID, commentID uuid.UUID) (*dto.DeleteCommentResponse, error)
}

func (m *MockCommentService) ListComments(ctx context.Context, postID uuid.UUID) ([]dto.CommentResponse, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, postID)
	}
	return []dto.CommentResponse{}, nil
}

func (m *MockCommentService) AddComment(ctx context.Context, userID, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, userID, postID, req)
	}
	return &dto.CommentResponse{ID: uuid.New(), PostID: postID, AuthorID: userID, Content: req.Content}, nil
}

func (m *MockCommentService) AddReply(ctx context.Context, userID, postID, parentID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if m.AddReplyFunc != nil {
		return m.AddReplyFunc(ctx, userID, postID, parentID, req)
	}
	return &dto.CommentResponse{ID: uuid.New(), PostID: postID, IsReply: true, ParentCommentID: &parentID}, nil
}

func (m *MockCommentService) UpdateComment(ctx context.Context, userID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	if m.UpdateCommentFunc != nil {
		return m.UpdateCommentFunc(ctx, userID, commentID, req)
	}
	return &dto.CommentResponse{ID: commentID, Content: req.Content}, nil
}

func (m *MockCommentService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) (*dto.DeleteCommentResponse, error) {
	if m.DeleteCommentFunc != nil {
		return m.DeleteCommentFunc(ctx, userID, commentID)
	}
	return &dto.DeleteCommentResponse{DeletedIDs: []uuid.UUID{commentID}}, nil
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	ListFunc        func(ctx context.Context, userID uuid.UUID, limit int) (*dto.NotificationListResponse, error)
	UnreadCountFunc func(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkReadFunc    func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	DeleteFunc      func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}

func (m *MockNotificationService) Notify(ctx context.Context, notification *domain.Notification) error {
	return nil
}

func (m *MockNotificationService) List(ctx context.Context, userID uuid.UUID, limit int) (*dto.NotificationListResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, limit)
	}
	return &dto.NotificationListResponse{Notifications: []domain.Notification{}}, nil
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.UnreadCountFunc != nil {
		return m.UnreadCountFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, userID, ids)
	}
	return int64(len(ids)), nil
}

func (m *MockNotificationService) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, ids)
	}
	return int64(len(ids)), nil
}

func (m *MockNotificationService) PruneRead(ctx context.Context, retentionDays int) (int64, error) {
	return 0, nil
}
