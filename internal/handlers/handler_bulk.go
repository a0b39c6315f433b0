package handlers

import (
	"log/slog"
	"net/http"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/chasseuragace/code-sub001/internal/dto"
	"github.com/chasseuragace/code-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bulkTransition godoc
// @Summary Bulk shortlist or reject
// @Description Applies the action to every selected application. Items fail independently;
// @Description the response lists failed ids with a reason each.
// @Tags bulk
// @Accept json
// @Produce json
// @Param selection body dto.BulkTransitionRequest true "application_ids, or job_posting_id with candidate_ids"
// @Success 200 {object} dto.BulkTransitionResponse
// @Failure 400 {object} map[string]string "Invalid selection"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Permission denied"
// @Failure 429 {object} map[string]string "Too many requests"
// @Security BearerAuth
// @Router /applications/bulk/shortlist [post]
// @Router /applications/bulk/reject [post]
func (h *applicationHandler) bulkTransition(action domain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.BulkTransitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		h.applyBulk(c, req.ToCommand(action, domain.Actor{}))
	}
}

// bulkSchedule godoc
// @Summary Bulk schedule interviews
// @Description Schedules the same interview for every selected shortlisted application
// @Tags bulk
// @Accept json
// @Produce json
// @Param selection body dto.BulkScheduleRequest true "Selection and interview details"
// @Success 200 {object} dto.BulkTransitionResponse
// @Failure 400 {object} map[string]string "Invalid selection or interview details"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Permission denied"
// @Failure 429 {object} map[string]string "Too many requests"
// @Security BearerAuth
// @Router /applications/bulk/schedule [post]
func (h *applicationHandler) bulkSchedule(c *gin.Context) {
	var req dto.BulkScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	cmd := req.ToCommand(domain.ActionBulkSchedule, domain.Actor{})
	cmd.Interview = req.Interview.ToDomain()
	h.applyBulk(c, cmd)
}

func (h *applicationHandler) applyBulk(c *gin.Context, cmd domain.BulkTransitionCommand) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	cmd.Actor = actor

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("action", string(cmd.Action)))
	logger.Info("Received bulk transition request",
		slog.Int("application_ids", len(cmd.ApplicationIDs)),
		slog.Int("candidate_ids", len(cmd.CandidateIDs)),
	)

	result, err := h.bulkService.ApplyBulk(c.Request.Context(), cmd)
	if err != nil {
		respondWithError(c, err, "Failed to apply bulk transition")
		return
	}

	logger.Info("Bulk transition finished", slog.Int("updated", result.UpdatedCount), slog.Int("failed", len(result.Failed)))
	c.JSON(http.StatusOK, dto.ToBulkTransitionResponse(result))
}
