package services

import (
	"context"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
)

// PermissionGate answers whether a role may perform an action. It performs no I/O.
type PermissionGate interface {
	Allowed(role domain.Role, action domain.Action) bool
}

// ApplicationStateMachineSvc is the single entry point that moves applications between statuses.
type ApplicationStateMachineSvc interface {
	Apply(ctx context.Context, cmd domain.TransitionCommand) (*domain.TransitionResult, error)
}

// HistoryLedgerSvc exposes the append-only ledger outside of transitions.
type HistoryLedgerSvc interface {
	// AppendCorrection appends a corrected=true annotation without moving the status.
	AppendCorrection(ctx context.Context, cmd domain.CorrectionCommand) (*domain.TransitionRecord, error)
	// GetHistory returns the ledger oldest first for an application visible to actor.
	GetHistory(ctx context.Context, actor domain.Actor, applicationID string) ([]domain.TransitionRecord, error)
}

// BulkTransitionSvc applies one bulk action to many applications with per-item outcomes.
type BulkTransitionSvc interface {
	ApplyBulk(ctx context.Context, cmd domain.BulkTransitionCommand) (*domain.BulkResult, error)
}

// ListApplicationsParams carries listing filters and pagination.
type ListApplicationsParams struct {
	Filter    domain.ApplicationFilter
	Limit     int
	NextToken string
}

// ApplicationQuerySvc is the read side. It never writes.
type ApplicationQuerySvc interface {
	GetApplication(ctx context.Context, actor domain.Actor, applicationID string) (*domain.ApplicationView, error)
	GetHistory(ctx context.Context, actor domain.Actor, applicationID string) ([]domain.TransitionRecord, error)
	ListApplications(ctx context.Context, actor domain.Actor, params ListApplicationsParams) (*domain.ApplicationPage, error)
}

// ApplicationSvc creates applications on behalf of candidates.
type ApplicationSvc interface {
	CreateApplication(ctx context.Context, cmd domain.CreateApplicationCommand) (*domain.TransitionResult, error)
}

// NotificationDispatcher publishes committed lifecycle events. Delivery is somebody else's job.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, event domain.TransitionEvent) error
}
