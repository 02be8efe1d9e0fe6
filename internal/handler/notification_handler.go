package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"study-team-api/internal/dto"
	"study-team-api/internal/response"
	"study-team-api/internal/service"
)

const defaultNotificationLimit = 50

// Streamer serves a websocket connection until it closes
type Streamer interface {
	Serve(conn *websocket.Conn, userID uuid.UUID)
}

type NotificationHandler struct {
	notificationService service.NotificationService
	streamer            Streamer
	upgrader            websocket.Upgrader
	logger              *zap.Logger
}

// NewNotificationHandler creates the handler. allowedOrigins restricts websocket upgrades;
// "*" accepts any origin.
func NewNotificationHandler(notificationService service.NotificationService, streamer Streamer, allowedOrigins []string, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		streamer:            streamer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

// ListNotifications godoc
// @Summary      알림 목록
// @Description  최신순 알림 목록과 읽지 않은 알림 수를 조회합니다
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "최대 개수 (기본 50, 0이면 전체)"
// @Success      200 {object} response.SuccessResponse{data=dto.NotificationListResponse} "조회 성공"
// @Router       /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}

	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid limit")
			return
		}
		limit = parsed
	}

	result, err := h.notificationService.List(c.Request.Context(), userID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetUnreadCount godoc
// @Summary      읽지 않은 알림 수
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.UnreadCountResponse} "조회 성공"
// @Router       /notifications/unread_count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// MarkRead godoc
// @Summary      알림 읽음 처리
// @Description  notificationIds가 비어 있으면 모든 알림을 읽음 처리합니다
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.NotificationIDsRequest false "알림 ID 목록"
// @Success      200 {object} response.SuccessResponse{data=dto.AffectedResponse} "처리 성공"
// @Router       /notifications/mark_read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	req, ok := bindNotificationIDs(c)
	if !ok {
		return
	}

	affected, err := h.notificationService.MarkRead(c.Request.Context(), userID, req.NotificationIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.AffectedResponse{Affected: affected})
}

// DeleteNotifications godoc
// @Summary      알림 삭제
// @Description  notificationIds가 비어 있으면 모든 알림을 삭제합니다
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.NotificationIDsRequest false "알림 ID 목록"
// @Success      200 {object} response.SuccessResponse{data=dto.AffectedResponse} "삭제 성공"
// @Router       /notifications/delete [post]
func (h *NotificationHandler) DeleteNotifications(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	req, ok := bindNotificationIDs(c)
	if !ok {
		return
	}

	affected, err := h.notificationService.Delete(c.Request.Context(), userID, req.NotificationIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.AffectedResponse{Affected: affected})
}

// Stream godoc
// @Summary      실시간 알림 스트림
// @Description  웹소켓으로 새 알림을 {"type":"notification","payload":{...}} 형태로 전달합니다
// @Tags         notifications
// @Security     BearerAuth
// @Success      101 "Switching Protocols"
// @Router       /notifications/ws [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, ok := ExtractUserID(c)
	if !ok {
		return
	}
	if h.streamer == nil {
		response.SendError(c, http.StatusServiceUnavailable, response.ErrCodeInternal, "Realtime notifications are not available")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", zap.Error(err))
		return
	}

	h.streamer.Serve(conn, userID)
}

func bindNotificationIDs(c *gin.Context) (dto.NotificationIDsRequest, bool) {
	var req dto.NotificationIDsRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return req, false
	}
	return req, true
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}
