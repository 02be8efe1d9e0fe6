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

func TestTeamHandler_ListTeams(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedWeek   int
	}{
		{"성공: 주차 조회", "?week=3", http.StatusOK, 3},
		{"실패: 주차 누락", "", http.StatusBadRequest, -1},
		{"실패: 숫자가 아닌 주차", "?week=abc", http.StatusBadRequest, -1},
		{"실패: 범위를 벗어난 주차", "?week=21", http.StatusBadRequest, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotWeek := -1
			svc := &MockTeamService{
				ListTeamsFunc: func(ctx context.Context, week int) ([]dto.TeamResponse, error) {
					gotWeek = week
					if week > 20 {
						return nil, response.NewValidationError("Invalid week", "")
					}
					return []dto.TeamResponse{{Name: "A", Week: week}}, nil
				},
			}
			router := setupTestRouter(testUserID)
			router.GET("/api/teams", NewTeamHandler(svc).ListTeams)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/teams"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.expectedWeek, gotWeek)
		})
	}
}

func TestTeamHandler_CreateTeam(t *testing.T) {
	var got *dto.CreateTeamRequest
	svc := &MockTeamService{
		CreateTeamFunc: func(ctx context.Context, userID uuid.UUID, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
			got = req
			return &dto.TeamResponse{ID: uuid.New(), Name: req.Name, Week: *req.Week, MasterID: userID, MemberCount: 1}, nil
		},
	}
	router := setupTestRouter(testUserID)
	router.POST("/api/teams", NewTeamHandler(svc).CreateTeam)

	t.Run("성공: 0주차 팀 생성", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(`{"name":"알고리즘","week":0}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		require.NotNil(t, got)
		assert.Equal(t, 0, *got.Week)

		var resp struct {
			Data dto.TeamResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testUserID, resp.Data.MasterID)
	})

	t.Run("실패: 주차 누락", func(t *testing.T) {
		got = nil
		req := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(`{"name":"알고리즘"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, got)
	})
}

func TestTeamHandler_JoinTeam(t *testing.T) {
	teamID := uuid.New()

	tests := []struct {
		name             string
		path             string
		body             string
		joinErr          error
		expectedStatus   int
		expectedPassword string
	}{
		{"성공: 본문 없이 참여", "/api/teams/" + teamID.String() + "/join", "", nil, http.StatusCreated, ""},
		{"성공: 비밀번호와 함께 참여", "/api/teams/" + teamID.String() + "/join", `{"password":"room"}`, nil, http.StatusCreated, "room"},
		{"실패: 잘못된 팀 ID", "/api/teams/not-a-uuid/join", "", nil, http.StatusBadRequest, ""},
		{"실패: 틀린 비밀번호", "/api/teams/" + teamID.String() + "/join", `{"password":"x"}`, response.NewForbiddenError("Wrong room password", ""), http.StatusForbidden, "x"},
		{"실패: 이미 팀원", "/api/teams/" + teamID.String() + "/join", "", response.NewConflictError("Already a member", ""), http.StatusConflict, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPassword string
			svc := &MockTeamService{
				JoinTeamFunc: func(ctx context.Context, userID, id uuid.UUID, req *dto.JoinTeamRequest) (*dto.TeamMemberResponse, error) {
					gotPassword = req.Password
					if tt.joinErr != nil {
						return nil, tt.joinErr
					}
					return &dto.TeamMemberResponse{UserID: userID, Role: "member"}, nil
				},
			}
			router := setupTestRouter(testUserID)
			router.POST("/api/teams/:teamId/join", NewTeamHandler(svc).JoinTeam)

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.expectedPassword, gotPassword)
		})
	}
}

func TestTeamHandler_UpdateMemberRole(t *testing.T) {
	teamID := uuid.New()
	target := uuid.New()
	var gotTarget uuid.UUID
	svc := &MockTeamService{
		UpdateMemberRoleFunc: func(ctx context.Context, userID, id, targetUserID uuid.UUID, req *dto.UpdateMemberRoleRequest) (*dto.TeamMemberResponse, error) {
			gotTarget = targetUserID
			return &dto.TeamMemberResponse{UserID: targetUserID, Role: req.Role}, nil
		},
	}
	router := setupTestRouter(testUserID)
	router.PUT("/api/teams/:teamId/members/:userId/role", NewTeamHandler(svc).UpdateMemberRole)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"성공: 관리자 지정", `{"role":"admin"}`, http.StatusOK},
		{"실패: 마스터 역할은 지정 불가", `{"role":"master"}`, http.StatusBadRequest},
		{"실패: 역할 누락", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/api/teams/" + teamID.String() + "/members/" + target.String() + "/role"
			req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, target, gotTarget)
			}
		})
	}
}

func TestTeamHandler_LeaveTeam_MasterRejected(t *testing.T) {
	svc := &MockTeamService{
		LeaveTeamFunc: func(ctx context.Context, userID, teamID uuid.UUID) error {
			return response.NewValidationError("The master cannot leave the team", "")
		},
	}
	router := setupTestRouter(testUserID)
	router.POST("/api/teams/:teamId/leave", NewTeamHandler(svc).LeaveTeam)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/teams/"+uuid.NewString()+"/leave", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "master")
}
