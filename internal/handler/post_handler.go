package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-team-api/internal/dto"
	"study-team-api/internal/response"
	"study-team-api/internal/service"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// CreatePost godoc
// @Summary      게시글 작성
// @Description  팀원만 작성할 수 있습니다. 작성 후 최근 업로드 중 참조되지 않은 이미지를 정리합니다
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        teamId path string true "Team ID (UUID)"
// @Param        request body dto.CreatePostRequest true "게시글 작성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.PostResponse} "작성 성공"
// @Failure      403 {object} response.ErrorResponse "팀원이 아님"
// @Failure      404 {object} response.ErrorResponse "팀을 찾을 수 없음"
// @Router       /teams/{teamId}/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(c, "teamId", "Invalid team ID")
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID, teamID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, post)
}

// GetPost godoc
// @Summary      게시글 조회
// @Description  댓글은 각 댓글 다음에 그 답글이 오도록 정렬됩니다
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.PostDetailResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Router       /posts/{postId} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId", "Invalid post ID")
	if !ok {
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), userID, postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, post)
}

// UpdatePost godoc
// @Summary      게시글 수정
// @Description  작성자, 팀 마스터, 팀 관리자가 수정할 수 있습니다. 본문에서 빠진 이미지는 정리됩니다
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID (UUID)"
// @Param        request body dto.UpdatePostRequest true "게시글 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.PostResponse} "수정 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Router       /posts/{postId} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId", "Invalid post ID")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), userID, postID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, post)
}

// DeletePost godoc
// @Summary      게시글 삭제
// @Description  댓글과 함께 삭제되며 다른 게시글이 참조하지 않는 이미지도 삭제됩니다
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Router       /posts/{postId} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId", "Invalid post ID")
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), userID, postID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}

// ToggleLike godoc
// @Summary      게시글 좋아요 토글
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeResponse} "토글 성공"
// @Router       /posts/{postId}/like [post]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId", "Invalid post ID")
	if !ok {
		return
	}

	result, err := h.postService.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
