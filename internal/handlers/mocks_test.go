package handlers_test

import (
	"context"
	"time"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock ApplicationStateMachineSvc ---
type MockStateMachine struct {
	mock.Mock
}

func (m *MockStateMachine) Apply(ctx context.Context, cmd domain.TransitionCommand) (*domain.TransitionResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionResult), args.Error(1)
}

// --- Mock HistoryLedgerSvc ---
type MockHistoryLedger struct {
	mock.Mock
}

func (m *MockHistoryLedger) AppendCorrection(ctx context.Context, cmd domain.CorrectionCommand) (*domain.TransitionRecord, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionRecord), args.Error(1)
}

func (m *MockHistoryLedger) GetHistory(ctx context.Context, actor domain.Actor, applicationID string) ([]domain.TransitionRecord, error) {
	args := m.Called(ctx, actor, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransitionRecord), args.Error(1)
}

// --- Mock BulkTransitionSvc ---
type MockBulkService struct {
	mock.Mock
}

func (m *MockBulkService) ApplyBulk(ctx context.Context, cmd domain.BulkTransitionCommand) (*domain.BulkResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkResult), args.Error(1)
}

// --- Mock ApplicationQuerySvc ---
type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) GetApplication(ctx context.Context, actor domain.Actor, applicationID string) (*domain.ApplicationView, error) {
	args := m.Called(ctx, actor, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationView), args.Error(1)
}

func (m *MockQueryService) GetHistory(ctx context.Context, actor domain.Actor, applicationID string) ([]domain.TransitionRecord, error) {
	args := m.Called(ctx, actor, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransitionRecord), args.Error(1)
}

func (m *MockQueryService) ListApplications(ctx context.Context, actor domain.Actor, params portssvc.ListApplicationsParams) (*domain.ApplicationPage, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationPage), args.Error(1)
}

// --- Mock ApplicationSvc ---
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) CreateApplication(ctx context.Context, cmd domain.CreateApplicationCommand) (*domain.TransitionResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionResult), args.Error(1)
}

// --- Mock APITokenSvc ---
type MockAPITokenService struct {
	mock.Mock
}

func (m *MockAPITokenService) CreateToken(ctx context.Context, actor domain.Actor, name string, role domain.Role, expiresIn *time.Duration) (string, *domain.APIToken, error) {
	args := m.Called(ctx, actor, name, role, expiresIn)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.APIToken), args.Error(2)
}

func (m *MockAPITokenService) ListTokens(ctx context.Context, actor domain.Actor) ([]domain.APIToken, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIToken), args.Error(1)
}

func (m *MockAPITokenService) RevokeToken(ctx context.Context, actor domain.Actor, tokenID string) error {
	args := m.Called(ctx, actor, tokenID)
	return args.Error(0)
}

func (m *MockAPITokenService) ValidateToken(ctx context.Context, key string) (*domain.Actor, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.ApplicationStateMachineSvc = (*MockStateMachine)(nil)
	_ portssvc.HistoryLedgerSvc           = (*MockHistoryLedger)(nil)
	_ portssvc.BulkTransitionSvc          = (*MockBulkService)(nil)
	_ portssvc.ApplicationQuerySvc        = (*MockQueryService)(nil)
	_ portssvc.ApplicationSvc             = (*MockApplicationService)(nil)
	_ portssvc.APITokenSvc                = (*MockAPITokenService)(nil)
)

var fixedTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func statusPtr(s domain.ApplicationStatus) *domain.ApplicationStatus { return &s }

// transitionResult builds the result of moving app-1 from prev to next.
func transitionResult(prev, next domain.ApplicationStatus, actorID string) *domain.TransitionResult {
	app := domain.JobApplication{
		ApplicationID: "app-1",
		CandidateID:   "cand-1",
		JobPostingID:  "posting-1",
		PositionID:    "position-1",
		AgencyID:      "agency-a",
		Status:        next,
		AuditFields: domain.AuditFields{
			CreatedAt:     fixedTime,
			CreatedBy:     "cand-1",
			LastUpdatedAt: fixedTime.Add(time.Hour),
			LastUpdatedBy: actorID,
			Version:       2,
		},
	}
	return &domain.TransitionResult{
		Application:  app,
		HistoryEntry: domain.NewTransitionRecord("app-1", statusPtr(prev), next, actorID, "", fixedTime.Add(time.Hour)),
		PrevStatus:   prev,
	}
}
