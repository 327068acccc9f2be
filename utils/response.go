package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Stable machine-readable error codes surfaced to clients
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeInternalError = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SendError envoie une réponse d'erreur avec un code stable
func SendError(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// AbortWithError est la variante pour les middlewares
func AbortWithError(c *gin.Context, statusCode int, code string, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}
