package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-team-api/internal/dto"
	"study-team-api/internal/response"
	"study-team-api/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ListComments godoc
// @Summary      댓글 목록
// @Description  작성 시각 순으로, 각 댓글 바로 뒤에 그 답글이 옵니다
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Router       /posts/{postId}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "postId", "Invalid post ID")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}

// AddComment godoc
// @Summary      댓글 작성
// @Description  게시글 작성자에게 알림이 전송됩니다 (본인 게시글 제외)
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "댓글 작성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse} "작성 성공"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Router       /posts/{postId}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId", "Invalid post ID")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), userID, postID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// AddReply godoc
// @Summary      답글 작성
// @Description  댓글 작성자에게 알림이 전송됩니다 (본인 댓글 제외). 답글에는 답글을 달 수 없습니다
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID (UUID)"
// @Param        commentId path string true "Parent Comment ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "답글 작성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse} "작성 성공"
// @Failure      400 {object} response.ErrorResponse "답글에 답글"
// @Failure      404 {object} response.ErrorResponse "게시글 또는 댓글을 찾을 수 없음"
// @Router       /posts/{postId}/comments/{commentId}/replies [post]
func (h *CommentHandler) AddReply(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId", "Invalid post ID")
	if !ok {
		return
	}
	parentID, ok := parseUUIDParam(c, "commentId", "Invalid comment ID")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	reply, err := h.commentService.AddReply(c.Request.Context(), userID, postID, parentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, reply)
}

// UpdateComment godoc
// @Summary      댓글 수정
// @Description  작성자만 수정할 수 있습니다
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID (UUID)"
// @Param        request body dto.UpdateCommentRequest true "댓글 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentResponse} "수정 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "댓글을 찾을 수 없음"
// @Router       /comments/{commentId} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(c, "commentId", "Invalid comment ID")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), userID, commentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      댓글 삭제
// @Description  댓글을 삭제하면 그 답글도 함께 삭제됩니다
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.DeleteCommentResponse} "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "댓글을 찾을 수 없음"
// @Router       /comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(c, "commentId", "Invalid comment ID")
	if !ok {
		return
	}

	result, err := h.commentService.DeleteComment(c.Request.Context(), userID, commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
