package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/chasseuragace/code-sub001/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// applicationQueryService implements portssvc.ApplicationQuerySvc. It holds readers only.
type applicationQueryService struct {
	BaseService
	appRepo       portsrepo.ApplicationReader
	historyRepo   portsrepo.HistoryReader
	interviewRepo portsrepo.InterviewReader
	catalog       portsrepo.CatalogReader
}

// NewApplicationQueryService creates the read-side service.
func NewApplicationQueryService(
	txManager portsrepo.TransactionManager,
	appRepo portsrepo.ApplicationReader,
	historyRepo portsrepo.HistoryReader,
	interviewRepo portsrepo.InterviewReader,
	catalog portsrepo.CatalogReader,
	retry RetryPolicy,
) portssvc.ApplicationQuerySvc {
	return &applicationQueryService{
		BaseService:   BaseService{TxManager: txManager, Retry: retry},
		appRepo:       appRepo,
		historyRepo:   historyRepo,
		interviewRepo: interviewRepo,
		catalog:       catalog,
	}
}

// GetApplication assembles the application with its history, interview and catalog context.
// The application, its history and its interview are read from one snapshot.
func (s *applicationQueryService) GetApplication(ctx context.Context, actor domain.Actor, applicationID string) (*domain.ApplicationView, error) {
	logger := s.GetLogger(ctx).With(slog.String("application_id", applicationID))

	if err := requireKnownRole(actor); err != nil {
		return nil, err
	}

	var view *domain.ApplicationView
	err := s.WithSnapshot(ctx, func(tx pgx.Tx) error {
		app, err := s.appRepo.FindApplicationByIDInTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if !actor.CanSee(app) {
			return apperrors.NewNotFoundError(fmt.Sprintf("application %s not found", applicationID))
		}

		history, err := s.historyRepo.ListHistoryInTx(ctx, tx, applicationID)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}
		interview, err := s.interviewRepo.FindInterviewByApplicationIDInTx(ctx, tx, applicationID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to load interview: %w", err)
		}

		view = &domain.ApplicationView{Application: *app, History: history, Interview: interview}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to read application", slog.String("error", err.Error()))
		}
		return nil, err
	}

	// Catalog rows are owned elsewhere and do not take part in the snapshot.
	app := view.Application
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posting, err := s.catalog.FindJobPostingByID(gctx, app.JobPostingID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to load job posting: %w", err)
		}
		view.JobPosting = posting
		return nil
	})
	g.Go(func() error {
		position, err := s.catalog.FindPositionByID(gctx, app.PositionID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to load position: %w", err)
		}
		view.Position = position
		return nil
	})
	g.Go(func() error {
		candidate, err := s.catalog.FindCandidateByID(gctx, app.CandidateID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to load candidate: %w", err)
		}
		view.Candidate = candidate
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to assemble application view", slog.String("error", err.Error()))
		return nil, err
	}

	if err := domain.VerifyHistory(view.History, app.Status); err != nil {
		// The view is still returned.
		logger.Error("Application history is inconsistent with its status",
			slog.String("status", string(app.Status)),
			slog.String("error", err.Error()))
	}

	return view, nil
}

// GetHistory returns the ledger oldest first.
func (s *applicationQueryService) GetHistory(ctx context.Context, actor domain.Actor, applicationID string) ([]domain.TransitionRecord, error) {
	if err := requireKnownRole(actor); err != nil {
		return nil, err
	}
	history, err := scopedHistory(ctx, s.appRepo, s.historyRepo, actor, applicationID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to list application history", slog.String("application_id", applicationID))
	}
	return history, err
}

// ListApplications pages through the applications visible to actor, ordered by (created_at, id).
func (s *applicationQueryService) ListApplications(ctx context.Context, actor domain.Actor, params portssvc.ListApplicationsParams) (*domain.ApplicationPage, error) {
	if err := requireKnownRole(actor); err != nil {
		return nil, err
	}
	if params.Filter.Status != "" && !params.Filter.Status.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", params.Filter.Status))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var after *portsrepo.ApplicationCursor
	if params.NextToken != "" {
		createdAt, id, err := pagination.DecodeCursorToken(params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		after = &portsrepo.ApplicationCursor{CreatedAt: createdAt, ID: id}
	}

	filter := actor.ScopeFilter(params.Filter)

	// One extra row tells whether another page exists.
	apps, err := s.appRepo.ListApplications(ctx, filter, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list applications")
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	page := &domain.ApplicationPage{Applications: apps}
	if len(apps) > limit {
		page.Applications = apps[:limit]
		last := page.Applications[limit-1]
		token := pagination.EncodeCursorToken(last.CreatedAt, last.ApplicationID)
		page.NextToken = &token
	}
	if page.Applications == nil {
		page.Applications = []domain.JobApplication{}
	}

	s.LogDebug(ctx, "Applications listed", slog.Int("count", len(page.Applications)))
	return page, nil
}

func requireKnownRole(actor domain.Actor) error {
	if actor.ID == "" {
		return apperrors.ErrUnauthorized
	}
	if actor.Role != domain.RoleCandidate && !actor.Role.IsAgencyRole() {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrForbidden, actor.Role)
	}
	if actor.Role.IsAgencyRole() && actor.AgencyID == "" {
		return fmt.Errorf("%w: agency role without agency", apperrors.ErrForbidden)
	}
	return nil
}
