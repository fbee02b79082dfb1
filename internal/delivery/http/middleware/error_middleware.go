package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-talent-sift-backend/internal/delivery/http/response"
	"go-talent-sift-backend/pkg/apperror"
	"go-talent-sift-backend/pkg/logger"
)

// ErrorHandler renders errors appended to the gin context as the standard
// response envelope. AppError codes pass through; anything else becomes an
// opaque 500 so internal details never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code >= http.StatusInternalServerError {
					logger.Log.Error("Request failed", "path", c.FullPath(), "error", err)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("Unhandled error", "path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
