package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-team-api/internal/dto"
	"study-team-api/internal/response"
)

func TestCommentHandler_ListComments(t *testing.T) {
	postID := uuid.New()
	mainID := uuid.New()
	svc := &MockCommentService{
		ListCommentsFunc: func(ctx context.Context, id uuid.UUID) ([]dto.CommentResponse, error) {
			return []dto.CommentResponse{
				{ID: mainID, PostID: id},
				{ID: uuid.New(), PostID: id, IsReply: true, ParentCommentID: &mainID},
			}, nil
		},
	}
	router := setupTestRouter(testUserID)
	router.GET("/api/posts/:postId/comments", NewCommentHandler(svc).ListComments)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/"+postID.String()+"/comments", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []dto.CommentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.False(t, resp.Data[0].IsReply)
	assert.Equal(t, mainID, *resp.Data[1].ParentCommentID)
}

func TestCommentHandler_AddReply(t *testing.T) {
	postID := uuid.New()
	parentID := uuid.New()

	tests := []struct {
		name           string
		path           string
		body           string
		replyErr       error
		expectedStatus int
	}{
		{"성공: 답글 작성", "/api/posts/" + postID.String() + "/comments/" + parentID.String() + "/replies", `{"content":"답글"}`, nil, http.StatusCreated},
		{"실패: 빈 내용", "/api/posts/" + postID.String() + "/comments/" + parentID.String() + "/replies", `{"content":""}`, nil, http.StatusBadRequest},
		{"실패: 잘못된 댓글 ID", "/api/posts/" + postID.String() + "/comments/xyz/replies", `{"content":"답글"}`, nil, http.StatusBadRequest},
		{"실패: 답글에 답글", "/api/posts/" + postID.String() + "/comments/" + parentID.String() + "/replies", `{"content":"답글"}`, response.NewValidationError("Cannot reply to a reply", ""), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockCommentService{
				AddReplyFunc: func(ctx context.Context, userID, pid, parent uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
					if tt.replyErr != nil {
						return nil, tt.replyErr
					}
					assert.Equal(t, postID, pid)
					assert.Equal(t, parentID, parent)
					return &dto.CommentResponse{ID: uuid.New(), PostID: pid, IsReply: true, ParentCommentID: &parent}, nil
				},
			}
			router := setupTestRouter(testUserID)
			router.POST("/api/posts/:postId/comments/:commentId/replies", NewCommentHandler(svc).AddReply)

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestCommentHandler_DeleteComment_ReturnsCascade(t *testing.T) {
	commentID := uuid.New()
	replyID := uuid.New()
	svc := &MockCommentService{
		DeleteCommentFunc: func(ctx context.Context, userID, id uuid.UUID) (*dto.DeleteCommentResponse, error) {
			return &dto.DeleteCommentResponse{DeletedIDs: []uuid.UUID{id, replyID}}, nil
		},
	}
	router := setupTestRouter(testUserID)
	router.DELETE("/api/comments/:commentId", NewCommentHandler(svc).DeleteComment)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/comments/"+commentID.String(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), commentID.String())
	assert.Contains(t, w.Body.String(), replyID.String())
}

func TestCommentHandler_UpdateComment_Forbidden(t *testing.T) {
	svc := &MockCommentService{
		UpdateCommentFunc: func(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
			return nil, response.NewForbiddenError("Only the author can edit this comment", "")
		},
	}
	router := setupTestRouter(testUserID)
	router.PUT("/api/comments/:commentId", NewCommentHandler(svc).UpdateComment)

	req := httptest.NewRequest(http.MethodPut, "/api/comments/"+uuid.NewString(), strings.NewReader(`{"content":"edit"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
