package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"study-team-api/internal/database"
)

type HealthHandler struct {
	redis *redis.Client
}

// NewHealthHandler creates the handler. The database is looked up on every request since it
// may connect after startup; redisClient is optional.
func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{redis: redisClient}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "study-team-api",
	})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	connections := make(map[string]string)

	if db := database.GetDB(); db == nil {
		connections["database"] = "connecting"
	} else if sqlDB, err := db.DB(); err != nil {
		connections["database"] = "error: " + err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		connections["database"] = "error: " + err.Error()
	} else {
		connections["database"] = "connected"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			connections["redis"] = "error: " + err.Error()
		} else {
			connections["redis"] = "connected"
		}
	} else {
		connections["redis"] = "not configured"
	}

	status := http.StatusOK
	statusText := "ready"
	for _, s := range connections {
		if s != "connected" && s != "not configured" {
			status = http.StatusServiceUnavailable
			statusText = "not ready"
			break
		}
	}

	c.JSON(status, gin.H{
		"status":      statusText,
		"connections": connections,
	})
}
