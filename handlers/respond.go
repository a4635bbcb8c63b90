package handlers

import (
	"net/http"

	"gighaat/middleware"
	"gighaat/pkg/apperrors"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service-layer error onto the wire. Known AppErrors keep
// their status and message; anything else becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.HTTPCode >= http.StatusInternalServerError {
			zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(appErr))
		}
		c.JSON(appErr.HTTPCode, utils.ErrorResponse{
			Message:      appErr.Message,
			RetryAfterMs: appErr.RetryAfterMs,
		})
		return
	}
	zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "internal server error"})
}

// currentUserID returns the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}
