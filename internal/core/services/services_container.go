package services

import (
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/chasseuragace/code-sub001/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	matrix *domain.PermissionMatrix,
	dispatcher portssvc.NotificationDispatcher,
) *portssvc.ServiceContainer {
	retry := RetryPolicy{Attempts: cfg.TransientRetryAttempts, Backoff: cfg.TransientRetryBackoff}

	container := &portssvc.ServiceContainer{}

	// The gate is shared by every service that checks permissions
	container.Permissions = NewPermissionGate(matrix)

	container.StateMachine = NewApplicationStateMachine(
		repos.TxManager,
		repos.ApplicationRepo,
		repos.HistoryRepo,
		repos.InterviewRepo,
		container.Permissions,
		dispatcher,
		StateMachineConfig{
			AllowWithdrawAfterPass: cfg.AllowWithdrawAfterPass,
			Retry:                  retry,
			NotificationTimeout:    cfg.NotificationTimeout,
		},
	)

	container.History = NewHistoryLedgerService(repos.TxManager, repos.ApplicationRepo, repos.HistoryRepo, container.Permissions, retry)

	container.Bulk = NewBulkTransitionService(
		container.StateMachine,
		repos.ApplicationRepo,
		container.Permissions,
		BulkConfig{MaxItems: cfg.BulkMaxItems, Concurrency: cfg.BulkConcurrency},
	)

	container.Query = NewApplicationQueryService(repos.TxManager, repos.ApplicationRepo, repos.HistoryRepo, repos.InterviewRepo, repos.CatalogRepo, retry)

	container.Application = NewApplicationService(
		repos.TxManager,
		repos.ApplicationRepo,
		repos.HistoryRepo,
		repos.CatalogRepo,
		dispatcher,
		retry,
		cfg.NotificationTimeout,
	)

	container.APIToken = NewAPITokenService(repos.APITokenRepo, container.Permissions)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PermissionGate             = (*permissionGate)(nil)
	_ portssvc.ApplicationStateMachineSvc = (*applicationStateMachine)(nil)
	_ portssvc.HistoryLedgerSvc           = (*historyLedgerService)(nil)
	_ portssvc.BulkTransitionSvc          = (*bulkTransitionService)(nil)
	_ portssvc.ApplicationQuerySvc        = (*applicationQueryService)(nil)
	_ portssvc.ApplicationSvc             = (*applicationService)(nil)
	_ portssvc.APITokenSvc                = (*apiTokenService)(nil)
)
