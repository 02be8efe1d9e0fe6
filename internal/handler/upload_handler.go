package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-team-api/internal/dto"
	"study-team-api/internal/response"
	"study-team-api/internal/service"
)

type UploadHandler struct {
	uploadService service.UploadService
	imageService  service.ImageService
}

func NewUploadHandler(uploadService service.UploadService, imageService service.ImageService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		imageService:  imageService,
	}
}

// UploadImage godoc
// @Summary      이미지 업로드
// @Description  게시글 본문에 넣을 이미지를 업로드합니다 (png, jpg, jpeg, gif, webp)
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image formData file true "이미지 파일"
// @Success      201 {object} response.SuccessResponse{data=dto.UploadImageResponse} "업로드 성공"
// @Failure      400 {object} response.ErrorResponse "허용되지 않은 형식 또는 크기 초과"
// @Router       /uploads/images [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Image file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read image file")
		return
	}
	defer file.Close()

	result, err := h.uploadService.UploadImage(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// CleanupImages godoc
// @Summary      고아 이미지 정리
// @Description  어떤 게시글도 참조하지 않는 업로드 이미지를 삭제합니다. 관리자 전용
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ImageCleanupRequest false "정리 범위"
// @Success      200 {object} response.SuccessResponse{data=dto.ImageCleanupResponse} "정리 성공"
// @Failure      403 {object} response.ErrorResponse "관리자가 아님"
// @Router       /admin/images/cleanup [post]
func (h *UploadHandler) CleanupImages(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}

	var req dto.ImageCleanupRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
			return
		}
	}

	result, err := h.imageService.Cleanup(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
