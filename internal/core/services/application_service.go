package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// applicationService implements portssvc.ApplicationSvc.
type applicationService struct {
	BaseService
	appRepo     portsrepo.ApplicationWriter
	historyRepo portsrepo.HistoryAppender
	catalog     portsrepo.CatalogReader
	events      eventPublisher
	now         func() time.Time
}

// NewApplicationService creates the service candidates apply through.
func NewApplicationService(
	txManager portsrepo.TransactionManager,
	appRepo portsrepo.ApplicationWriter,
	historyRepo portsrepo.HistoryAppender,
	catalog portsrepo.CatalogReader,
	dispatcher portssvc.NotificationDispatcher,
	retry RetryPolicy,
	notificationTimeout time.Duration,
) portssvc.ApplicationSvc {
	return &applicationService{
		BaseService: BaseService{TxManager: txManager, Retry: retry},
		appRepo:     appRepo,
		historyRepo: historyRepo,
		catalog:     catalog,
		events:      eventPublisher{dispatcher: dispatcher, timeout: notificationTimeout},
		now:         time.Now,
	}
}

// CreateApplication inserts an application at applied together with its creation record.
func (s *applicationService) CreateApplication(ctx context.Context, cmd domain.CreateApplicationCommand) (*domain.TransitionResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("job_posting_id", cmd.JobPostingID),
		slog.String("position_id", cmd.PositionID),
	)

	if cmd.Actor.Role != domain.RoleCandidate || cmd.Actor.ID == "" {
		logger.Warn("Permission denied for application creation",
			slog.String("actor_id", cmd.Actor.ID),
			slog.String("actor_role", string(cmd.Actor.Role)))
		return nil, fmt.Errorf("%w: only candidates may apply", apperrors.ErrForbidden)
	}
	if cmd.JobPostingID == "" || cmd.PositionID == "" {
		return nil, apperrors.NewValidationError("job_posting_id and position_id are required")
	}

	posting, err := s.catalog.FindJobPostingByID(ctx, cmd.JobPostingID)
	if err != nil {
		return nil, err
	}
	if !posting.IsOpen {
		return nil, apperrors.NewValidationError(fmt.Sprintf("job posting %s is not accepting applications", posting.ID))
	}
	position, err := s.catalog.FindPositionByID(ctx, cmd.PositionID)
	if err != nil {
		return nil, err
	}
	if position.JobPostingID != posting.ID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("position %s not found in job posting %s", cmd.PositionID, posting.ID))
	}

	now := s.now().UTC()
	app := domain.JobApplication{
		ApplicationID: uuid.NewString(),
		CandidateID:   cmd.Actor.ID,
		JobPostingID:  posting.ID,
		PositionID:    position.ID,
		AgencyID:      posting.AgencyID,
		Status:        domain.StatusApplied,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     cmd.Actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: cmd.Actor.ID,
			Version:       1,
		},
	}
	entry := domain.NewTransitionRecord(app.ApplicationID, nil, domain.StatusApplied, cmd.Actor.ID, cmd.Note, now)

	err = s.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.appRepo.SaveApplicationInTx(ctx, tx, app); err != nil {
			return err
		}
		return s.historyRepo.AppendTransitionInTx(ctx, tx, &entry)
	})
	if err != nil {
		logger.Warn("Failed to create application", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Application created", slog.String("application_id", app.ApplicationID))
	s.events.publish(ctx, newTransitionEvent(domain.EventApplicationCreated, app, "", nil, cmd.Actor.ID, now))

	return &domain.TransitionResult{Application: app, HistoryEntry: entry}, nil
}
