package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope for the plain REST endpoints. GraphQL traffic
// uses its own {data, errors} envelope and never goes through here.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// Unavailable reports a degraded dependency while still returning details.
func Unavailable(c *gin.Context, code, message string, data interface{}) {
	c.JSON(http.StatusServiceUnavailable, Response{
		Success: false,
		Data:    data,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}
