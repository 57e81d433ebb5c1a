package handler

import (
	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/middleware"
)

// bindJSON decodes the body into req and answers 400 on malformed JSON
func bindJSON(c *gin.Context, logger coreport.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Invalid request body", map[string]any{
			"error":      err.Error(),
			"path":       c.Request.URL.Path,
			"request_id": middleware.RequestIDFrom(c),
		})
		middleware.AbortWithError(c, logger, errs.NewValidationError("body", "Invalid request format"))
		return false
	}
	return true
}
