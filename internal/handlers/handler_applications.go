package handlers

import (
	"log/slog"
	"net/http"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/chasseuragace/code-sub001/internal/dto"
	"github.com/chasseuragace/code-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// applicationHandler handles HTTP requests related to job applications.
type applicationHandler struct {
	applicationService portssvc.ApplicationSvc
	stateMachine       portssvc.ApplicationStateMachineSvc
	historyLedger      portssvc.HistoryLedgerSvc
	bulkService        portssvc.BulkTransitionSvc
	queryService       portssvc.ApplicationQuerySvc
}

// newApplicationHandler creates a new applicationHandler.
func newApplicationHandler(services *portssvc.ServiceContainer) *applicationHandler {
	return &applicationHandler{
		applicationService: services.Application,
		stateMachine:       services.StateMachine,
		historyLedger:      services.History,
		bulkService:        services.Bulk,
		queryService:       services.Query,
	}
}

// RegisterApplicationRoutes registers routes related to job applications.
func RegisterApplicationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	registerValidators()
	h := newApplicationHandler(services)

	applications := rg.Group("/applications")
	{
		applications.POST("", h.createApplication)
		applications.GET("", h.listApplications)

		bulk := applications.Group("/bulk")
		{
			bulk.POST("/shortlist", h.bulkTransition(domain.ActionBulkShortlist))
			bulk.POST("/reject", h.bulkTransition(domain.ActionBulkReject))
			bulk.POST("/schedule", h.bulkSchedule)
		}

		application := applications.Group("/:applicationID")
		{
			application.GET("", h.getApplication)
			application.GET("/history", h.getHistory)
			application.POST("/history/corrections", h.appendCorrection)
			application.POST("/transitions", h.applyTransition)
			application.POST("/shortlist", h.applyWithNote(domain.ActionShortlist))
			application.POST("/reject", h.applyWithNote(domain.ActionReject))
			application.POST("/withdraw", h.applyWithNote(domain.ActionWithdraw))
			application.POST("/schedule-interview", h.applyInterview(domain.ActionScheduleInterview))
			application.POST("/reschedule-interview", h.applyInterview(domain.ActionRescheduleInterview))
			application.POST("/complete-interview", h.completeInterview)
		}
	}
}

// requireActor returns the authenticated actor or writes 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok || actor.ID == "" {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}

// createApplication godoc
// @Summary Apply to a job posting position
// @Description Creates an application in status applied for the calling candidate
// @Tags applications
// @Accept json
// @Produce json
// @Param application body dto.CreateApplicationRequest true "Posting and position"
// @Success 201 {object} dto.TransitionResponse
// @Failure 400 {object} map[string]string "Invalid input or closed posting"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Only candidates may apply"
// @Failure 404 {object} map[string]string "Posting or position not found"
// @Failure 409 {object} map[string]string "Already applied"
// @Failure 500 {object} map[string]string "Failed to create application"
// @Security BearerAuth
// @Router /applications [post]
func (h *applicationHandler) createApplication(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create application", slog.String("job_posting_id", req.JobPostingID), slog.String("position_id", req.PositionID))

	result, err := h.applicationService.CreateApplication(c.Request.Context(), domain.CreateApplicationCommand{
		Actor:        actor,
		JobPostingID: req.JobPostingID,
		PositionID:   req.PositionID,
		Note:         req.Note,
	})
	if err != nil {
		respondWithError(c, err, "Failed to create application")
		return
	}

	logger.Info("Application created", slog.String("application_id", result.Application.ApplicationID))
	c.JSON(http.StatusCreated, dto.ToTransitionResponse(result))
}

// listApplications godoc
// @Summary List applications
// @Description Lists the applications visible to the caller, oldest first, with cursor pagination
// @Tags applications
// @Produce json
// @Param limit query int false "Page size (1-100)" default(20)
// @Param next_token query string false "Cursor returned by the previous page"
// @Param status query string false "Filter by status"
// @Param job_posting_id query string false "Filter by job posting"
// @Param position_id query string false "Filter by position"
// @Param candidate_id query string false "Filter by candidate"
// @Success 200 {object} dto.ListApplicationsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role may not list applications"
// @Failure 500 {object} map[string]string "Failed to list applications"
// @Security BearerAuth
// @Router /applications [get]
func (h *applicationHandler) listApplications(c *gin.Context) {
	var params dto.ListApplicationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	page, err := h.queryService.ListApplications(c.Request.Context(), actor, portssvc.ListApplicationsParams{
		Filter: domain.ApplicationFilter{
			CandidateID:  params.CandidateID,
			JobPostingID: params.JobPostingID,
			PositionID:   params.PositionID,
			Status:       domain.ApplicationStatus(params.Status),
		},
		Limit:     params.Limit,
		NextToken: params.NextToken,
	})
	if err != nil {
		respondWithError(c, err, "Failed to list applications")
		return
	}

	c.JSON(http.StatusOK, dto.ToListApplicationsResponse(page))
}

// getApplication godoc
// @Summary Get an application
// @Description Returns the application with its history, interview, posting, position and candidate
// @Tags applications
// @Produce json
// @Param applicationID path string true "Application ID"
// @Success 200 {object} dto.ApplicationDetailResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to retrieve application"
// @Security BearerAuth
// @Router /applications/{applicationID} [get]
func (h *applicationHandler) getApplication(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	view, err := h.queryService.GetApplication(c.Request.Context(), actor, c.Param("applicationID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve application")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDetailResponse(view))
}

// getHistory godoc
// @Summary Get application history
// @Description Returns the status ledger of an application, oldest first
// @Tags applications
// @Produce json
// @Param applicationID path string true "Application ID"
// @Success 200 {object} dto.HistoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to retrieve history"
// @Security BearerAuth
// @Router /applications/{applicationID}/history [get]
func (h *applicationHandler) getHistory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	applicationID := c.Param("applicationID")
	history, err := h.queryService.GetHistory(c.Request.Context(), actor, applicationID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve history")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryResponse(applicationID, history))
}

// appendCorrection godoc
// @Summary Annotate application history
// @Description Appends a corrected entry to the ledger. The status does not change.
// @Tags applications
// @Accept json
// @Produce json
// @Param applicationID path string true "Application ID"
// @Param correction body dto.CorrectionRequest true "Correction note and the corrected transition"
// @Success 201 {object} dto.HistoryEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role may not correct history"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to append correction"
// @Security BearerAuth
// @Router /applications/{applicationID}/history/corrections [post]
func (h *applicationHandler) appendCorrection(c *gin.Context) {
	var req dto.CorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	rec, err := h.historyLedger.AppendCorrection(c.Request.Context(), req.ToCommand(c.Param("applicationID"), actor))
	if err != nil {
		respondWithError(c, err, "Failed to append correction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToHistoryEntryResponse(*rec))
}

// applyTransition godoc
// @Summary Apply a transition
// @Description Applies any single-application action named in the body
// @Tags transitions
// @Accept json
// @Produce json
// @Param applicationID path string true "Application ID"
// @Param transition body dto.TransitionRequest true "Action and payload"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} map[string]string "Invalid input or illegal transition (current_status included)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Permission denied"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retryable"
// @Failure 500 {object} map[string]string "Failed to apply transition"
// @Security BearerAuth
// @Router /applications/{applicationID}/transitions [post]
func (h *applicationHandler) applyTransition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.apply(c, domain.TransitionCommand{
		Action:    domain.Action(req.Action),
		Note:      req.Note,
		Interview: req.Interview.ToDomain(),
		Outcome:   domain.InterviewOutcome(req.Result),
	})
}

// applyWithNote godoc
// @Summary Shortlist, reject or withdraw
// @Description Applies shortlist, reject or withdraw with an optional note
// @Tags transitions
// @Accept json
// @Produce json
// @Param applicationID path string true "Application ID"
// @Param body body dto.NoteRequest false "Optional note"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} map[string]string "Illegal transition (current_status included)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Permission denied"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retryable"
// @Security BearerAuth
// @Router /applications/{applicationID}/shortlist [post]
// @Router /applications/{applicationID}/reject [post]
// @Router /applications/{applicationID}/withdraw [post]
func (h *applicationHandler) applyWithNote(action domain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.NoteRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			bindError(c, err)
			return
		}
		h.apply(c, domain.TransitionCommand{Action: action, Note: req.Note})
	}
}

// applyInterview godoc
// @Summary Schedule or reschedule an interview
// @Description Moves the application to interview_scheduled or interview_rescheduled and stores the interview details
// @Tags transitions
// @Accept json
// @Produce json
// @Param applicationID path string true "Application ID"
// @Param interview body dto.ScheduleInterviewRequest true "Interview details"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} map[string]string "Invalid details or illegal transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Permission denied"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retryable"
// @Security BearerAuth
// @Router /applications/{applicationID}/schedule-interview [post]
// @Router /applications/{applicationID}/reschedule-interview [post]
func (h *applicationHandler) applyInterview(action domain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ScheduleInterviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		h.apply(c, domain.TransitionCommand{
			Action:    action,
			Note:      req.Note,
			Interview: req.InterviewDetailsRequest.ToDomain(),
		})
	}
}

// completeInterview godoc
// @Summary Record an interview result
// @Description Moves the application to interview_passed or interview_failed
// @Tags transitions
// @Accept json
// @Produce json
// @Param applicationID path string true "Application ID"
// @Param result body dto.CompleteInterviewRequest true "Interview result"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} map[string]string "Invalid result or illegal transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Permission denied"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retryable"
// @Security BearerAuth
// @Router /applications/{applicationID}/complete-interview [post]
func (h *applicationHandler) completeInterview(c *gin.Context) {
	var req dto.CompleteInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.apply(c, domain.TransitionCommand{
		Action:  domain.ActionCompleteInterview,
		Note:    req.Note,
		Outcome: domain.InterviewOutcome(req.Result),
	})
}

// apply fills in the application id and actor and runs the state machine.
func (h *applicationHandler) apply(c *gin.Context, cmd domain.TransitionCommand) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	cmd.Actor = actor
	cmd.ApplicationID = c.Param("applicationID")

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("application_id", cmd.ApplicationID),
		slog.String("action", string(cmd.Action)),
	)
	logger.Info("Received transition request")

	result, err := h.stateMachine.Apply(c.Request.Context(), cmd)
	if err != nil {
		respondWithError(c, err, "Failed to apply transition")
		return
	}

	logger.Info("Transition applied", slog.String("next_status", string(result.Application.Status)))
	c.JSON(http.StatusOK, dto.ToTransitionResponse(result))
}
