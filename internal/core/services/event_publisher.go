package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/chasseuragace/code-sub001/internal/middleware"
)

// eventPublisher dispatches post-commit events. Failures never reach the caller.
type eventPublisher struct {
	dispatcher portssvc.NotificationDispatcher
	timeout    time.Duration
}

func (p eventPublisher) publish(ctx context.Context, event domain.TransitionEvent) {
	if p.dispatcher == nil {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	// The transition is committed; a disconnecting client must not cancel the dispatch.
	dispatchCtx := context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		dispatchCtx, cancel = context.WithTimeout(dispatchCtx, p.timeout)
		defer cancel()
	}

	if err := p.dispatcher.Dispatch(dispatchCtx, event); err != nil {
		logger.Warn("Failed to dispatch application event",
			slog.String("event_type", event.Type),
			slog.String("application_id", event.ApplicationID),
			slog.String("error", err.Error()))
	}
}

func newTransitionEvent(eventType string, app domain.JobApplication, action domain.Action, prev *domain.ApplicationStatus, actorID string, at time.Time) domain.TransitionEvent {
	return domain.TransitionEvent{
		Type:          eventType,
		ApplicationID: app.ApplicationID,
		CandidateID:   app.CandidateID,
		JobPostingID:  app.JobPostingID,
		AgencyID:      app.AgencyID,
		Action:        action,
		PrevStatus:    prev,
		NextStatus:    app.Status,
		ActorID:       actorID,
		OccurredAt:    at.UTC().Format(time.RFC3339),
	}
}
