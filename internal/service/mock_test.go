package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"study-team-api/internal/domain"
	"study-team-api/internal/imagegc"
	"study-team-api/internal/repository"
	"study-team-api/internal/response"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	FindByIDsFunc      func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.User{BaseModel: domain.BaseModel{ID: id}, Nickname: "tester"}, nil
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

// MockTeamRepository is a mock implementation of TeamRepository
type MockTeamRepository struct {
	CreateFunc           func(ctx context.Context, team *domain.Team) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	ListByWeekFunc       func(ctx context.Context, week int) ([]repository.TeamSummary, error)
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	FindMemberFunc       func(ctx context.Context, teamID, userID uuid.UUID) (*domain.TeamMember, error)
	ListMembersFunc      func(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error)
	AddMemberFunc        func(ctx context.Context, member *domain.TeamMember) error
	RemoveMemberFunc     func(ctx context.Context, teamID, userID uuid.UUID) error
	UpdateMemberRoleFunc func(ctx context.Context, teamID, userID uuid.UUID, role domain.TeamRole) error
	ToggleUpvoteFunc     func(ctx context.Context, teamID, userID uuid.UUID) (int64, bool, error)
	HasUpvotedFunc       func(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	RecountUpvotesFunc   func(ctx context.Context) (int64, error)
}

func (m *MockTeamRepository) Create(ctx context.Context, team *domain.Team) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, team)
	}
	return nil
}

func (m *MockTeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTeamRepository) ListByWeek(ctx context.Context, week int) ([]repository.TeamSummary, error) {
	if m.ListByWeekFunc != nil {
		return m.ListByWeekFunc(ctx, week)
	}
	return nil, nil
}

func (m *MockTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTeamRepository) FindMember(ctx context.Context, teamID, userID uuid.UUID) (*domain.TeamMember, error) {
	if m.FindMemberFunc != nil {
		return m.FindMemberFunc(ctx, teamID, userID)
	}
	return nil, nil
}

func (m *MockTeamRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockTeamRepository) AddMember(ctx context.Context, member *domain.TeamMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	return nil
}

func (m *MockTeamRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, teamID, userID)
	}
	return nil
}

func (m *MockTeamRepository) UpdateMemberRole(ctx context.Context, teamID, userID uuid.UUID, role domain.TeamRole) error {
	if m.UpdateMemberRoleFunc != nil {
		return m.UpdateMemberRoleFunc(ctx, teamID, userID, role)
	}
	return nil
}

func (m *MockTeamRepository) ToggleUpvote(ctx context.Context, teamID, userID uuid.UUID) (int64, bool, error) {
	if m.ToggleUpvoteFunc != nil {
		return m.ToggleUpvoteFunc(ctx, teamID, userID)
	}
	return 0, false, nil
}

func (m *MockTeamRepository) HasUpvoted(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	if m.HasUpvotedFunc != nil {
		return m.HasUpvotedFunc(ctx, teamID, userID)
	}
	return false, nil
}

func (m *MockTeamRepository) RecountUpvotes(ctx context.Context) (int64, error) {
	if m.RecountUpvotesFunc != nil {
		return m.RecountUpvotesFunc(ctx)
	}
	return 0, nil
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	CreateFunc         func(ctx context.Context, post *domain.Post) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListByTeamFunc     func(ctx context.Context, teamID uuid.UUID) ([]domain.Post, error)
	UpdateFunc         func(ctx context.Context, post *domain.Post) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	AllContentsFunc    func(ctx context.Context) ([]string, error)
	ContentsByTeamFunc func(ctx context.Context, teamID uuid.UUID) ([]string, error)
	ToggleLikeFunc     func(ctx context.Context, postID, userID uuid.UUID) (int64, bool, error)
	IsLikedByFunc      func(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	RecountLikesFunc   func(ctx context.Context) (int64, error)
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPostRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Post, error) {
	if m.ListByTeamFunc != nil {
		return m.ListByTeamFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *domain.Post) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockPostRepository) AllContents(ctx context.Context) ([]string, error) {
	if m.AllContentsFunc != nil {
		return m.AllContentsFunc(ctx)
	}
	return nil, nil
}

func (m *MockPostRepository) ContentsByTeam(ctx context.Context, teamID uuid.UUID) ([]string, error) {
	if m.ContentsByTeamFunc != nil {
		return m.ContentsByTeamFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockPostRepository) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (int64, bool, error) {
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, postID, userID)
	}
	return 0, false, nil
}

func (m *MockPostRepository) IsLikedBy(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	if m.IsLikedByFunc != nil {
		return m.IsLikedByFunc(ctx, postID, userID)
	}
	return false, nil
}

func (m *MockPostRepository) RecountLikes(ctx context.Context) (int64, error) {
	if m.RecountLikesFunc != nil {
		return m.RecountLikesFunc(ctx)
	}
	return 0, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc            func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByPostIDFunc      func(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error)
	UpdateContentFunc     func(ctx context.Context, comment *domain.Comment, content string) error
	DeleteWithRepliesFunc func(ctx context.Context, comment *domain.Comment) ([]uuid.UUID, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	if m.FindByPostIDFunc != nil {
		return m.FindByPostIDFunc(ctx, postID)
	}
	return nil, nil
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, comment *domain.Comment, content string) error {
	if m.UpdateContentFunc != nil {
		return m.UpdateContentFunc(ctx, comment, content)
	}
	comment.Content = content
	return nil
}

func (m *MockCommentRepository) DeleteWithReplies(ctx context.Context, comment *domain.Comment) ([]uuid.UUID, error) {
	if m.DeleteWithRepliesFunc != nil {
		return m.DeleteWithRepliesFunc(ctx, comment)
	}
	return []uuid.UUID{comment.ID}, nil
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	CreateFunc              func(ctx context.Context, notification *domain.Notification) error
	ListByRecipientFunc     func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	CountUnreadFunc         func(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkReadFunc            func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	DeleteFunc              func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	DeleteReadOlderThanFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, notification)
	}
	return nil
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if m.ListByRecipientFunc != nil {
		return m.ListByRecipientFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, userID, ids)
	}
	return 0, nil
}

func (m *MockNotificationRepository) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, ids)
	}
	return 0, nil
}

func (m *MockNotificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteReadOlderThanFunc != nil {
		return m.DeleteReadOlderThanFunc(ctx, cutoff)
	}
	return 0, nil
}

// recordingNotifier captures notifications instead of storing them
type recordingNotifier struct {
	NotificationService
	sent []*domain.Notification
	err  error
}

func (r *recordingNotifier) Notify(ctx context.Context, n *domain.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, n)
	return nil
}

// recordingPusher captures realtime events
type recordingPusher struct {
	events []string
	users  []uuid.UUID
}

func (p *recordingPusher) Publish(userID uuid.UUID, eventType string, payload interface{}) int {
	p.events = append(p.events, eventType)
	p.users = append(p.users, userID)
	return 1
}

// MockImageCollector is a mock implementation of ImageCollector
type MockImageCollector struct {
	ExtractReferencesFunc    func(content string) imagegc.RefSet
	DiffOnEditFunc           func(oldContent, newContent string) imagegc.RefSet
	ReclaimFunc              func(ctx context.Context, candidates imagegc.RefSet) ([]string, error)
	CollectOrphansScopedFunc func(ctx context.Context, window time.Duration) (*imagegc.Result, error)
	CollectOrphansGlobalFunc func(ctx context.Context) (*imagegc.Result, error)

	reclaimed   []imagegc.RefSet
	scopedCalls int
}

func (m *MockImageCollector) ExtractReferences(content string) imagegc.RefSet {
	if m.ExtractReferencesFunc != nil {
		return m.ExtractReferencesFunc(content)
	}
	return imagegc.RefSet{}
}

func (m *MockImageCollector) DiffOnEdit(oldContent, newContent string) imagegc.RefSet {
	if m.DiffOnEditFunc != nil {
		return m.DiffOnEditFunc(oldContent, newContent)
	}
	return imagegc.RefSet{}
}

func (m *MockImageCollector) Reclaim(ctx context.Context, candidates imagegc.RefSet) ([]string, error) {
	m.reclaimed = append(m.reclaimed, candidates)
	if m.ReclaimFunc != nil {
		return m.ReclaimFunc(ctx, candidates)
	}
	return nil, nil
}

func (m *MockImageCollector) CollectOrphansScoped(ctx context.Context, window time.Duration) (*imagegc.Result, error) {
	m.scopedCalls++
	if m.CollectOrphansScopedFunc != nil {
		return m.CollectOrphansScopedFunc(ctx, window)
	}
	return &imagegc.Result{Scope: imagegc.ScopeRecent}, nil
}

func (m *MockImageCollector) CollectOrphansGlobal(ctx context.Context) (*imagegc.Result, error) {
	if m.CollectOrphansGlobalFunc != nil {
		return m.CollectOrphansGlobalFunc(ctx)
	}
	return &imagegc.Result{Scope: imagegc.ScopeGlobal}, nil
}

// appErrorCode returns the AppError code of err, or "" for any other error
func appErrorCode(err error) string {
	if appErr, ok := err.(*response.AppError); ok {
		return appErr.Code
	}
	return ""
}
