package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/chasseuragace/code-sub001/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BulkTransitionServiceTestSuite struct {
	suite.Suite
	store      *memStore
	dispatcher *MockNotificationDispatcher
	svc        portssvc.BulkTransitionSvc
	ctx        context.Context
}

func (s *BulkTransitionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newMemStore()
	s.dispatcher = new(MockNotificationDispatcher)
	s.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil)

	gate := services.NewPermissionGate(domain.DefaultPermissionMatrix())
	stateMachine := services.NewApplicationStateMachine(
		s.store, s.store, s.store, s.store, gate, s.dispatcher,
		services.StateMachineConfig{AllowWithdrawAfterPass: true, Retry: services.RetryPolicy{Attempts: 2, Backoff: time.Millisecond}},
	)
	s.svc = services.NewBulkTransitionService(stateMachine, s.store, gate, services.BulkConfig{MaxItems: 5, Concurrency: 3})
}

func TestBulkTransitionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BulkTransitionServiceTestSuite))
}

func (s *BulkTransitionServiceTestSuite) TestBulkShortlist_MixedSet() {
	a1 := s.store.seedApplication(agencyA, "cand-1", domain.StatusApplied)
	a2 := s.store.seedApplication(agencyA, "cand-2", domain.StatusApplied)
	a3 := s.store.seedApplication(agencyA, "cand-3", domain.StatusApplied)
	already := s.store.seedApplication(agencyA, "cand-4", domain.StatusShortlisted)

	result, err := s.svc.ApplyBulk(s.ctx, domain.BulkTransitionCommand{
		Action:         domain.ActionBulkShortlist,
		Actor:          ownerOf(agencyA),
		ApplicationIDs: []string{a1.ApplicationID, already.ApplicationID, a2.ApplicationID, "missing", a1.ApplicationID, a3.ApplicationID},
	})

	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal(3, result.UpdatedCount)
	s.Equal([]string{already.ApplicationID, "missing"}, result.Failed)
	s.Equal(map[string]string{
		already.ApplicationID: "InvalidTransition",
		"missing":             "NotFound",
	}, result.Errors)

	for _, app := range []domain.JobApplication{a1, a2, a3} {
		s.Equal(domain.StatusShortlisted, s.store.app(app.ApplicationID).Status)
		s.Equal(2, s.store.historyLen(app.ApplicationID))
	}
	s.Equal(2, s.store.historyLen(already.ApplicationID))
}

func (s *BulkTransitionServiceTestSuite) TestBulkReject_AllSucceed() {
	a1 := s.store.seedApplication(agencyA, "cand-1", domain.StatusApplied)
	a2 := s.store.seedApplication(agencyA, "cand-2", domain.StatusInterviewScheduled)

	result, err := s.svc.ApplyBulk(s.ctx, domain.BulkTransitionCommand{
		Action:         domain.ActionBulkReject,
		Actor:          actorWithRole(domain.RoleRecruiter, agencyA),
		ApplicationIDs: []string{a1.ApplicationID, a2.ApplicationID},
		Note:           "position filled",
	})

	s.Require().NoError(err)
	s.Equal(&domain.BulkResult{Success: true, UpdatedCount: 2}, result)
	s.Equal(domain.StatusWithdrawn, s.store.app(a2.ApplicationID).Status)
}

func (s *BulkTransitionServiceTestSuite) TestBulkSchedule_ByPostingAndCandidates() {
	a1 := s.store.seedApplication(agencyA, "cand-1", domain.StatusShortlisted)
	a2 := s.store.seedApplication(agencyA, "cand-2", domain.StatusApplied)

	result, err := s.svc.ApplyBulk(s.ctx, domain.BulkTransitionCommand{
		Action:       domain.ActionBulkSchedule,
		Actor:        actorWithRole(domain.RoleCoordinator, agencyA),
		JobPostingID: "posting-1",
		CandidateIDs: []string{"cand-1", "cand-2", "cand-9"},
		Interview:    interviewDetails("2025-05-02"),
	})

	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal(1, result.UpdatedCount)
	s.Equal([]string{"cand-2", "cand-9"}, result.Failed)
	s.Equal("InvalidTransition", result.Errors["cand-2"])
	s.Equal("NotFound", result.Errors["cand-9"])

	s.Equal(domain.StatusInterviewScheduled, s.store.app(a1.ApplicationID).Status)
	interview, err := s.store.FindInterviewByApplicationID(s.ctx, a1.ApplicationID)
	s.Require().NoError(err)
	s.Equal("2025-05-02", interview.Date)
	s.Equal(domain.StatusApplied, s.store.app(a2.ApplicationID).Status)
}

func (s *BulkTransitionServiceTestSuite) TestBulkSchedule_RequiresInterview() {
	a1 := s.store.seedApplication(agencyA, "cand-1", domain.StatusShortlisted)

	_, err := s.svc.ApplyBulk(s.ctx, domain.BulkTransitionCommand{
		Action:         domain.ActionBulkSchedule,
		Actor:          ownerOf(agencyA),
		ApplicationIDs: []string{a1.ApplicationID},
	})

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(domain.StatusShortlisted, s.store.app(a1.ApplicationID).Status)
}

func (s *BulkTransitionServiceTestSuite) TestBulk_PermissionDenied() {
	a1 := s.store.seedApplication(agencyA, "cand-1", domain.StatusApplied)

	_, err := s.svc.ApplyBulk(s.ctx, domain.BulkTransitionCommand{
		Action:         domain.ActionBulkShortlist,
		Actor:          actorWithRole(domain.RoleCoordinator, agencyA),
		ApplicationIDs: []string{a1.ApplicationID},
	})

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.Equal(domain.StatusApplied, s.store.app(a1.ApplicationID).Status)
	begun, _ := s.store.counts()
	s.Zero(begun)
}

func (s *BulkTransitionServiceTestSuite) TestBulk_RequestValidation() {
	tooMany := make([]string, 6)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("app-%d", i)
	}

	tests := []struct {
		name string
		cmd  domain.BulkTransitionCommand
	}{
		{"empty", domain.BulkTransitionCommand{Action: domain.ActionBulkReject}},
		{"too many", domain.BulkTransitionCommand{Action: domain.ActionBulkReject, ApplicationIDs: tooMany}},
		{"blank id", domain.BulkTransitionCommand{Action: domain.ActionBulkReject, ApplicationIDs: []string{"app-1", " "}}},
		{"both selectors", domain.BulkTransitionCommand{Action: domain.ActionBulkReject, ApplicationIDs: []string{"app-1"}, JobPostingID: "posting-1", CandidateIDs: []string{"cand-1"}}},
		{"candidates without posting", domain.BulkTransitionCommand{Action: domain.ActionBulkReject, CandidateIDs: []string{"cand-1"}}},
		{"single action", domain.BulkTransitionCommand{Action: domain.ActionReject, ApplicationIDs: []string{"app-1"}}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.cmd.Actor = ownerOf(agencyA)
			_, err := s.svc.ApplyBulk(s.ctx, tt.cmd)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (s *BulkTransitionServiceTestSuite) TestBulk_OtherAgencyItemsAreNotFound() {
	own := s.store.seedApplication(agencyA, "cand-1", domain.StatusApplied)
	foreign := s.store.seedApplication(agencyB, "cand-2", domain.StatusApplied)

	result, err := s.svc.ApplyBulk(s.ctx, domain.BulkTransitionCommand{
		Action:         domain.ActionBulkShortlist,
		Actor:          ownerOf(agencyA),
		ApplicationIDs: []string{own.ApplicationID, foreign.ApplicationID},
	})

	s.Require().NoError(err)
	s.Equal(1, result.UpdatedCount)
	s.Equal("NotFound", result.Errors[foreign.ApplicationID])
	s.Equal(domain.StatusApplied, s.store.app(foreign.ApplicationID).Status)
}

func (s *BulkTransitionServiceTestSuite) TestBulk_CancelledContext() {
	a1 := s.store.seedApplication(agencyA, "cand-1", domain.StatusApplied)
	a2 := s.store.seedApplication(agencyA, "cand-2", domain.StatusApplied)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	result, err := s.svc.ApplyBulk(ctx, domain.BulkTransitionCommand{
		Action:         domain.ActionBulkShortlist,
		Actor:          ownerOf(agencyA),
		ApplicationIDs: []string{a1.ApplicationID, a2.ApplicationID},
	})

	s.Require().NoError(err)
	s.True(result.Success)
	s.Zero(result.UpdatedCount)
	s.Equal([]string{a1.ApplicationID, a2.ApplicationID}, result.Failed)
	s.Equal("Cancelled", result.Errors[a1.ApplicationID])
	s.Equal(domain.StatusApplied, s.store.app(a1.ApplicationID).Status)
}
