package services_test

import (
	"context"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock NotificationDispatcher ---
type MockNotificationDispatcher struct {
	mock.Mock
}

var _ portssvc.NotificationDispatcher = (*MockNotificationDispatcher)(nil)

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, event domain.TransitionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Mock APITokenRepository ---
type MockAPITokenRepository struct {
	mock.Mock
}

var _ portsrepo.APITokenRepository = (*MockAPITokenRepository)(nil)

func (m *MockAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIToken), args.Error(1)
}

func (m *MockAPITokenRepository) FindByAgencyID(ctx context.Context, agencyID string) ([]domain.APIToken, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIToken), args.Error(1)
}

func (m *MockAPITokenRepository) TouchLastUsed(ctx context.Context, token *domain.APIToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAPITokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- fixtures ---

const (
	agencyA = "agency-a"
	agencyB = "agency-b"
)

func ownerOf(agencyID string) domain.Actor {
	return domain.Actor{ID: "owner-" + agencyID, Role: domain.RoleOwner, AgencyID: agencyID}
}

func actorWithRole(role domain.Role, agencyID string) domain.Actor {
	return domain.Actor{ID: string(role) + "-" + agencyID, Role: role, AgencyID: agencyID}
}

func candidate(id string) domain.Actor {
	return domain.Actor{ID: id, Role: domain.RoleCandidate}
}

func interviewDetails(date string) *domain.InterviewDetails {
	return &domain.InterviewDetails{
		Date:              date,
		Time:              "10:30",
		Location:          "Kathmandu office",
		ContactPerson:     "Front desk",
		RequiredDocuments: []string{"passport", "cv"},
	}
}
