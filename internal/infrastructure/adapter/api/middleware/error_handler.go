package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/dto"
)

// internalErrorMessage replaces the detail of every 5xx response
const internalErrorMessage = "Internal server error"

// ErrorHandler middleware recovers from panics and returns appropriate error responses
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": RequestIDFrom(c),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error: internalErrorMessage,
					Code:  errs.CodeInternalServer,
				})
			}
		}()

		c.Next()
	}
}

// AbortWithError writes err as {error, code} with its mapped status.
// Server-side failures are logged in full and reported generically.
func AbortWithError(c *gin.Context, logger coreport.Logger, err error) {
	status := errs.HTTPStatus(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"error":      err.Error(),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": RequestIDFrom(c),
		})
		message = internalErrorMessage
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error: message,
		Code:  errs.ErrorCode(err),
	})
}
