package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

// StateMachineConfig tunes the transition engine.
type StateMachineConfig struct {
	AllowWithdrawAfterPass bool
	Retry                  RetryPolicy
	NotificationTimeout    time.Duration
}

// applicationStateMachine implements portssvc.ApplicationStateMachineSvc.
type applicationStateMachine struct {
	BaseService
	appRepo       portsrepo.ApplicationWriter
	historyRepo   portsrepo.HistoryAppender
	interviewRepo portsrepo.InterviewWriter
	gate          portssvc.PermissionGate
	table         *domain.TransitionTable
	events        eventPublisher
	now           func() time.Time
}

// NewApplicationStateMachine creates the transition engine.
func NewApplicationStateMachine(
	txManager portsrepo.TransactionManager,
	appRepo portsrepo.ApplicationWriter,
	historyRepo portsrepo.HistoryAppender,
	interviewRepo portsrepo.InterviewWriter,
	gate portssvc.PermissionGate,
	dispatcher portssvc.NotificationDispatcher,
	cfg StateMachineConfig,
) portssvc.ApplicationStateMachineSvc {
	return &applicationStateMachine{
		BaseService:   BaseService{TxManager: txManager, Retry: cfg.Retry},
		appRepo:       appRepo,
		historyRepo:   historyRepo,
		interviewRepo: interviewRepo,
		gate:          gate,
		table:         domain.NewTransitionTable(cfg.AllowWithdrawAfterPass),
		events:        eventPublisher{dispatcher: dispatcher, timeout: cfg.NotificationTimeout},
		now:           time.Now,
	}
}

// Apply validates and executes one transition. The status update, the ledger entry and the
// interview upsert commit together or not at all.
func (s *applicationStateMachine) Apply(ctx context.Context, cmd domain.TransitionCommand) (*domain.TransitionResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("application_id", cmd.ApplicationID),
		slog.String("action", string(cmd.Action)),
	)

	if !cmd.Action.IsTransition() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("action %q is not an application transition", cmd.Action))
	}
	if cmd.ApplicationID == "" {
		return nil, apperrors.NewValidationError("application id is required")
	}

	if !s.gate.Allowed(cmd.Actor.Role, cmd.Action) {
		logger.Warn("Permission denied for application transition",
			slog.String("actor_id", cmd.Actor.ID),
			slog.String("actor_role", string(cmd.Actor.Role)))
		return nil, fmt.Errorf("%w: role %q may not %s", apperrors.ErrForbidden, cmd.Actor.Role, cmd.Action)
	}

	if err := validateTransitionPayload(cmd); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var result *domain.TransitionResult
	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		result, err = s.applyInTx(ctx, tx, cmd)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound),
			errors.Is(err, apperrors.ErrInvalidTransition),
			errors.Is(err, apperrors.ErrConflict):
			logger.Info("Application transition rejected", slog.String("reason", apperrors.Reason(err)), slog.String("error", err.Error()))
		default:
			logger.Error("Application transition failed", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Application transitioned",
		slog.String("prev_status", string(result.PrevStatus)),
		slog.String("next_status", string(result.Application.Status)))

	prev := result.PrevStatus
	s.events.publish(ctx, newTransitionEvent(domain.EventApplicationTransitioned, result.Application, cmd.Action, &prev, cmd.Actor.ID, result.HistoryEntry.UpdatedAt))

	return result, nil
}

func (s *applicationStateMachine) applyInTx(ctx context.Context, tx pgx.Tx, cmd domain.TransitionCommand) (*domain.TransitionResult, error) {
	app, err := s.appRepo.FindApplicationByIDForUpdate(ctx, tx, cmd.ApplicationID)
	if err != nil {
		return nil, err
	}
	// Applications outside the actor's scope are indistinguishable from missing ones.
	if !cmd.Actor.CanSee(app) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("application %s not found", cmd.ApplicationID))
	}

	next, err := s.table.Resolve(app.Status, cmd.Action, cmd.Outcome)
	if err != nil {
		return nil, &apperrors.TransitionError{Action: string(cmd.Action), CurrentStatus: string(app.Status)}
	}

	now := s.now().UTC()
	prev := app.Status
	expectedVersion := app.Version

	updated := *app
	updated.Status = next
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = cmd.Actor.ID
	updated.Version = expectedVersion + 1
	if next == domain.StatusWithdrawn && updated.WithdrawnAt == nil {
		updated.WithdrawnAt = &now
	}

	if err := s.appRepo.UpdateApplicationStatusInTx(ctx, tx, updated, expectedVersion); err != nil {
		return nil, err
	}

	entry := domain.NewTransitionRecord(updated.ApplicationID, &prev, next, cmd.Actor.ID, cmd.Note, now)
	if err := s.historyRepo.AppendTransitionInTx(ctx, tx, &entry); err != nil {
		return nil, err
	}

	var interview *domain.InterviewRecord
	if cmd.Action.CarriesInterview() {
		interview = &domain.InterviewRecord{
			ApplicationID:    updated.ApplicationID,
			InterviewDetails: *cmd.Interview,
		}
		if err := s.interviewRepo.UpsertInterviewInTx(ctx, tx, interview); err != nil {
			return nil, err
		}
	}

	return &domain.TransitionResult{
		Application:  updated,
		HistoryEntry: entry,
		Interview:    interview,
		PrevStatus:   prev,
	}, nil
}

func validateTransitionPayload(cmd domain.TransitionCommand) error {
	switch cmd.Action {
	case domain.ActionScheduleInterview, domain.ActionRescheduleInterview:
		return cmd.Interview.Validate()
	case domain.ActionCompleteInterview:
		if _, err := domain.ParseOutcome(string(cmd.Outcome)); err != nil {
			return err
		}
	}
	return nil
}
