package pgsql

import (
	"time"

	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories. lockTimeout bounds row-lock waits
// on the application write path.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	applicationRepo := newPgxApplicationRepository(dbPool, lockTimeout)
	historyRepo := newPgxHistoryRepository(dbPool)
	interviewRepo := newPgxInterviewRepository(dbPool)
	catalogRepo := newPgxCatalogRepository(dbPool)
	apiTokenRepo := newPgxAPITokenRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:       applicationRepo,
		ApplicationRepo: applicationRepo,
		HistoryRepo:     historyRepo,
		InterviewRepo:   interviewRepo,
		CatalogRepo:     catalogRepo,
		APITokenRepo:    apiTokenRepo,
	}
}
