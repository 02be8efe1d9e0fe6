package response

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope for successful responses
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// ErrorDetail describes a failed request
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for failed responses
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SendSuccess writes data wrapped in the success envelope
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, SuccessResponse{Data: data})
}

// SendError writes the error envelope and aborts the handler chain
func SendError(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
