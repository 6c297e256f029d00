// Package response holds the JSON envelope every gateway endpoint answers with.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusTokenExpired tells clients to fetch a new token and retry, as opposed
// to 401 which means the token will never be accepted.
const StatusTokenExpired = 419

type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// Abort writes an error envelope whose code mirrors the HTTP status.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Code: status, Message: message})
}

func OK(c *gin.Context, body Envelope) {
	body.Code = http.StatusOK
	c.JSON(http.StatusOK, body)
}
