package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"study-team-api/internal/dto"
	"study-team-api/internal/response"
	"study-team-api/internal/service"
)

type TeamHandler struct {
	teamService service.TeamService
}

func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// ListTeams godoc
// @Summary      주차별 팀 목록
// @Description  특정 주차의 팀을 추천 수 순으로 조회합니다
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        week query int true "주차 (0-20)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.TeamResponse} "조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 주차"
// @Router       /teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	week, err := strconv.Atoi(c.Query("week"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid week")
		return
	}

	teams, err := h.teamService.ListTeams(c.Request.Context(), week)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, teams)
}

// CreateTeam godoc
// @Summary      팀 생성
// @Description  팀을 만들고 생성자를 마스터로 등록합니다
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateTeamRequest true "팀 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.TeamResponse} "생성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Router       /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, team)
}

// GetTeam godoc
// @Summary      팀 페이지 조회
// @Description  팀 정보, 팀원, 게시글(최신순)을 조회합니다
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        teamId path string true "Team ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TeamDetailResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "팀을 찾을 수 없음"
// @Router       /teams/{teamId} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(c, "teamId", "Invalid team ID")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(c.Request.Context(), userID, teamID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, team)
}

// DeleteTeam godoc
// @Summary      팀 삭제
// @Description  마스터만 삭제할 수 있으며 게시글과 댓글도 함께 삭제됩니다
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        teamId path string true "Team ID (UUID)"
// @Success      200 {object} response.SuccessResponse "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "팀을 찾을 수 없음"
// @Router       /teams/{teamId} [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(c, "teamId", "Invalid team ID")
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(c.Request.Context(), userID, teamID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}

// JoinTeam godoc
// @Summary      팀 가입
// @Description  비밀번호가 설정된 팀은 비밀번호가 일치해야 가입할 수 있습니다
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        teamId path string true "Team ID (UUID)"
// @Param        request body dto.JoinTeamRequest false "팀 비밀번호"
// @Success      201 {object} response.SuccessResponse{data=dto.TeamMemberResponse} "가입 성공"
// @Failure      403 {object} response.ErrorResponse "비밀번호 불일치"
// @Failure      409 {object} response.ErrorResponse "이미 팀원"
// @Router       /teams/{teamId}/join [post]
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(c, "teamId", "Invalid team ID")
	if !ok {
		return
	}

	var req dto.JoinTeamRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
			return
		}
	}

	member, err := h.teamService.JoinTeam(c.Request.Context(), userID, teamID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, member)
}

// LeaveTeam godoc
// @Summary      팀 탈퇴
// @Description  마스터는 탈퇴할 수 없습니다
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        teamId path string true "Team ID (UUID)"
// @Success      200 {object} response.SuccessResponse "탈퇴 성공"
// @Failure      400 {object} response.ErrorResponse "마스터는 탈퇴 불가"
// @Router       /teams/{teamId}/leave [post]
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(c, "teamId", "Invalid team ID")
	if !ok {
		return
	}

	if err := h.teamService.LeaveTeam(c.Request.Context(), userID, teamID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}

// ToggleUpvote godoc
// @Summary      팀 추천 토글
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        teamId path string true "Team ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.UpvoteResponse} "토글 성공"
// @Router       /teams/{teamId}/upvote [post]
func (h *TeamHandler) ToggleUpvote(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(c, "teamId", "Invalid team ID")
	if !ok {
		return
	}

	result, err := h.teamService.ToggleUpvote(c.Request.Context(), userID, teamID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// UpdateMemberRole godoc
// @Summary      팀원 역할 변경
// @Description  마스터가 팀원을 관리자(admin) 또는 일반 팀원(member)으로 지정합니다
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        teamId path string true "Team ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Param        request body dto.UpdateMemberRoleRequest true "역할"
// @Success      200 {object} response.SuccessResponse{data=dto.TeamMemberResponse} "변경 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /teams/{teamId}/members/{userId}/role [put]
func (h *TeamHandler) UpdateMemberRole(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(c, "teamId", "Invalid team ID")
	if !ok {
		return
	}
	targetID, ok := parseUUIDParam(c, "userId", "Invalid user ID")
	if !ok {
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	member, err := h.teamService.UpdateMemberRole(c.Request.Context(), userID, teamID, targetID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, member)
}
