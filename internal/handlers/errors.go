package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto the HTTP response. Failures the caller can act
// on are logged at WARN, anything else at ERROR with a generic body.
func respondWithError(c *gin.Context, err error, failureMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reason := apperrors.Reason(err)

	var transitionErr *apperrors.TransitionError
	switch {
	case errors.As(err, &transitionErr):
		logger.Warn("Transition rejected", slog.String("action", transitionErr.Action), slog.String("current_status", transitionErr.CurrentStatus))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": reason, "current_status": transitionErr.CurrentStatus})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "reason": reason})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Permission denied", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "reason": reason})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent modification", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": reason, "retryable": true})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": reason})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": reason})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "reason": reason})
	default:
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failureMsg, "reason": reason})
	}
}

// bindError reports a malformed request body or query.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "reason": "ValidationError"})
}

// bindOptionalJSON binds a body that may be absent. An empty body, chunked or not, leaves
// obj untouched.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
