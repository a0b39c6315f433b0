package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

// historyLedgerService implements portssvc.HistoryLedgerSvc.
type historyLedgerService struct {
	BaseService
	appRepo     portsrepo.ApplicationRepositoryFacade
	historyRepo portsrepo.HistoryRepositoryFacade
	gate        portssvc.PermissionGate
	now         func() time.Time
}

// NewHistoryLedgerService creates the ledger service.
func NewHistoryLedgerService(
	txManager portsrepo.TransactionManager,
	appRepo portsrepo.ApplicationRepositoryFacade,
	historyRepo portsrepo.HistoryRepositoryFacade,
	gate portssvc.PermissionGate,
	retry RetryPolicy,
) portssvc.HistoryLedgerSvc {
	return &historyLedgerService{
		BaseService: BaseService{TxManager: txManager, Retry: retry},
		appRepo:     appRepo,
		historyRepo: historyRepo,
		gate:        gate,
		now:         time.Now,
	}
}

// AppendCorrection records an annotation. When the command names a transition, that earlier
// prev → next pair is repeated with corrected = true; otherwise the entry annotates the current
// status. The status itself, and every earlier entry, stay untouched.
func (s *historyLedgerService) AppendCorrection(ctx context.Context, cmd domain.CorrectionCommand) (*domain.TransitionRecord, error) {
	logger := s.GetLogger(ctx).With(slog.String("application_id", cmd.ApplicationID))

	if !s.gate.Allowed(cmd.Actor.Role, domain.ActionCorrectHistory) {
		logger.Warn("Permission denied for history correction",
			slog.String("actor_id", cmd.Actor.ID),
			slog.String("actor_role", string(cmd.Actor.Role)))
		return nil, fmt.Errorf("%w: role %q may not %s", apperrors.ErrForbidden, cmd.Actor.Role, domain.ActionCorrectHistory)
	}
	if strings.TrimSpace(cmd.Note) == "" {
		return nil, apperrors.NewValidationError("a correction requires a note")
	}
	if err := validateCorrectedPair(cmd); err != nil {
		return nil, err
	}

	var entry domain.TransitionRecord
	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		// Locking the row serializes the append with concurrent transitions.
		app, err := s.appRepo.FindApplicationByIDForUpdate(ctx, tx, cmd.ApplicationID)
		if err != nil {
			return err
		}
		if !cmd.Actor.CanSee(app) {
			return apperrors.NewNotFoundError(fmt.Sprintf("application %s not found", cmd.ApplicationID))
		}

		current := app.Status
		prev, next := &current, current
		if cmd.NextStatus != nil {
			history, err := s.historyRepo.ListHistoryInTx(ctx, tx, app.ApplicationID)
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}
			if !domain.HasTransition(history, cmd.PrevStatus, *cmd.NextStatus) {
				return apperrors.NewValidationError(fmt.Sprintf("no %s transition to correct", describePair(cmd.PrevStatus, *cmd.NextStatus)))
			}
			prev, next = cmd.PrevStatus, *cmd.NextStatus
		}

		entry = domain.NewTransitionRecord(app.ApplicationID, prev, next, cmd.Actor.ID, cmd.Note, s.now().UTC())
		entry.Corrected = true
		return s.historyRepo.AppendTransitionInTx(ctx, tx, &entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to append history correction", slog.String("application_id", cmd.ApplicationID))
		return nil, err
	}

	logger.Info("History correction appended", slog.Int64("seq", entry.Seq))
	return &entry, nil
}

func validateCorrectedPair(cmd domain.CorrectionCommand) error {
	if cmd.NextStatus == nil {
		if cmd.PrevStatus != nil {
			return apperrors.NewValidationError("next_status is required when prev_status is given")
		}
		return nil
	}
	if !cmd.NextStatus.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown status %q", *cmd.NextStatus))
	}
	if cmd.PrevStatus != nil && !cmd.PrevStatus.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown status %q", *cmd.PrevStatus))
	}
	return nil
}

func describePair(prev *domain.ApplicationStatus, next domain.ApplicationStatus) string {
	if prev == nil {
		return fmt.Sprintf("creation (%s)", next)
	}
	return fmt.Sprintf("%s -> %s", *prev, next)
}

// GetHistory returns the ledger oldest first.
func (s *historyLedgerService) GetHistory(ctx context.Context, actor domain.Actor, applicationID string) ([]domain.TransitionRecord, error) {
	history, err := scopedHistory(ctx, s.appRepo, s.historyRepo, actor, applicationID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to list application history", slog.String("application_id", applicationID))
	}
	return history, err
}

// scopedHistory loads the ledger of an application visible to actor. Applications outside
// the actor's scope are reported as missing.
func scopedHistory(ctx context.Context, apps portsrepo.ApplicationReader, ledger portsrepo.HistoryReader, actor domain.Actor, applicationID string) ([]domain.TransitionRecord, error) {
	app, err := apps.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(app) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("application %s not found", applicationID))
	}

	history, err := ledger.ListHistory(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return history, nil
}
