package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

const reasonCancelled = "Cancelled"

// BulkConfig bounds a bulk request.
type BulkConfig struct {
	MaxItems    int
	Concurrency int
}

// bulkTransitionService implements portssvc.BulkTransitionSvc.
type bulkTransitionService struct {
	BaseService
	stateMachine portssvc.ApplicationStateMachineSvc
	appRepo      portsrepo.ApplicationReader
	gate         portssvc.PermissionGate
	cfg          BulkConfig
}

// NewBulkTransitionService creates the bulk coordinator. Every item goes through stateMachine
// in its own transaction.
func NewBulkTransitionService(
	stateMachine portssvc.ApplicationStateMachineSvc,
	appRepo portsrepo.ApplicationReader,
	gate portssvc.PermissionGate,
	cfg BulkConfig,
) portssvc.BulkTransitionSvc {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &bulkTransitionService{
		stateMachine: stateMachine,
		appRepo:      appRepo,
		gate:         gate,
		cfg:          cfg,
	}
}

// bulkItemResult is one slot of the result arena, written by exactly one worker.
type bulkItemResult struct {
	updated int
	reason  string
}

// ApplyBulk validates the batch as a whole, then applies the action per item. Item failures
// are reported in the result and never fail the batch.
func (s *bulkTransitionService) ApplyBulk(ctx context.Context, cmd domain.BulkTransitionCommand) (*domain.BulkResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("action", string(cmd.Action)))

	single, ok := cmd.Action.SingleAction()
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown bulk action %q", cmd.Action))
	}

	if !s.gate.Allowed(cmd.Actor.Role, cmd.Action) {
		logger.Warn("Permission denied for bulk transition",
			slog.String("actor_id", cmd.Actor.ID),
			slog.String("actor_role", string(cmd.Actor.Role)))
		return nil, fmt.Errorf("%w: role %q may not %s", apperrors.ErrForbidden, cmd.Actor.Role, cmd.Action)
	}

	items, byCandidate, err := s.collectItems(cmd)
	if err != nil {
		return nil, err
	}

	if single == domain.ActionScheduleInterview {
		if err := cmd.Interview.Validate(); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	results := make([]bulkItemResult, len(items))
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)

	for i, id := range items {
		if ctx.Err() != nil {
			results[i] = bulkItemResult{reason: reasonCancelled}
			continue
		}
		g.Go(func() error {
			if byCandidate {
				results[i] = s.applyToCandidate(ctx, single, cmd, id)
			} else {
				results[i] = s.applyToApplication(ctx, single, cmd, id)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := &domain.BulkResult{Success: true}
	for i, id := range items {
		r := results[i]
		out.UpdatedCount += r.updated
		if r.reason == "" {
			continue
		}
		if out.Errors == nil {
			out.Errors = make(map[string]string)
		}
		out.Failed = append(out.Failed, id)
		out.Errors[id] = r.reason
	}

	logger.Info("Bulk transition finished",
		slog.Int("requested", len(items)),
		slog.Int("updated", out.UpdatedCount),
		slog.Int("failed", len(out.Failed)))
	return out, nil
}

// collectItems validates and de-duplicates the identifiers, keeping first occurrences in order.
func (s *bulkTransitionService) collectItems(cmd domain.BulkTransitionCommand) ([]string, bool, error) {
	var raw []string
	byCandidate := false
	switch {
	case len(cmd.ApplicationIDs) > 0 && len(cmd.CandidateIDs) > 0:
		return nil, false, apperrors.NewValidationError("provide either application_ids or job_posting_id with candidate_ids, not both")
	case len(cmd.ApplicationIDs) > 0:
		raw = cmd.ApplicationIDs
	case len(cmd.CandidateIDs) > 0:
		if cmd.JobPostingID == "" {
			return nil, false, apperrors.NewValidationError("job_posting_id is required with candidate_ids")
		}
		raw = cmd.CandidateIDs
		byCandidate = true
	default:
		return nil, false, apperrors.NewValidationError("at least one application is required")
	}

	if s.cfg.MaxItems > 0 && len(raw) > s.cfg.MaxItems {
		return nil, false, apperrors.NewValidationError(fmt.Sprintf("at most %d items per bulk request, got %d", s.cfg.MaxItems, len(raw)))
	}
	for _, id := range raw {
		if strings.TrimSpace(id) == "" {
			return nil, false, apperrors.NewValidationError("identifiers must not be blank")
		}
	}
	return uniqueStrings(raw), byCandidate, nil
}

func (s *bulkTransitionService) applyToApplication(ctx context.Context, single domain.Action, cmd domain.BulkTransitionCommand, applicationID string) bulkItemResult {
	if ctx.Err() != nil {
		return bulkItemResult{reason: reasonCancelled}
	}
	_, err := s.stateMachine.Apply(ctx, s.itemCommand(single, cmd, applicationID))
	if err != nil {
		return bulkItemResult{reason: itemReason(err)}
	}
	return bulkItemResult{updated: 1}
}

// applyToCandidate resolves the candidate's applications on the posting. The item fails with
// the first failing application's reason; the others still apply.
func (s *bulkTransitionService) applyToCandidate(ctx context.Context, single domain.Action, cmd domain.BulkTransitionCommand, candidateID string) bulkItemResult {
	if ctx.Err() != nil {
		return bulkItemResult{reason: reasonCancelled}
	}
	apps, err := s.appRepo.FindApplicationsByPostingAndCandidate(ctx, cmd.JobPostingID, candidateID)
	if err != nil {
		return bulkItemResult{reason: itemReason(err)}
	}

	var res bulkItemResult
	seen := false
	for _, app := range apps {
		if !cmd.Actor.CanSee(&app) {
			continue
		}
		seen = true
		_, err := s.stateMachine.Apply(ctx, s.itemCommand(single, cmd, app.ApplicationID))
		if err != nil {
			if res.reason == "" {
				res.reason = itemReason(err)
			}
			continue
		}
		res.updated++
	}
	if !seen {
		return bulkItemResult{reason: apperrors.Reason(apperrors.ErrNotFound)}
	}
	return res
}

func (s *bulkTransitionService) itemCommand(single domain.Action, cmd domain.BulkTransitionCommand, applicationID string) domain.TransitionCommand {
	itemCmd := domain.TransitionCommand{
		ApplicationID: applicationID,
		Action:        single,
		Actor:         cmd.Actor,
		Note:          cmd.Note,
	}
	if single.CarriesInterview() {
		itemCmd.Interview = cmd.Interview
	}
	return itemCmd
}

func itemReason(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return reasonCancelled
	}
	return apperrors.Reason(err)
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
