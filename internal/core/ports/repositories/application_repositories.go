package repositories

import (
	"context"
	"time"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ApplicationCursor marks the last row of a listing page, ordered by (created_at, id).
type ApplicationCursor struct {
	CreatedAt time.Time
	ID        string
}

// ApplicationReader defines read operations for job applications.
type ApplicationReader interface {
	// FindApplicationByID returns apperrors.ErrNotFound when the application does not exist.
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.JobApplication, error)
	// FindApplicationByIDInTx is FindApplicationByID inside tx, without locking.
	FindApplicationByIDInTx(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.JobApplication, error)
	// FindApplicationsByPostingAndCandidate returns the candidate's applications on a posting.
	FindApplicationsByPostingAndCandidate(ctx context.Context, jobPostingID, candidateID string) ([]domain.JobApplication, error)
	// ListApplications returns up to limit applications after the cursor, oldest first.
	ListApplications(ctx context.Context, filter domain.ApplicationFilter, limit int, after *ApplicationCursor) ([]domain.JobApplication, error)
}

// ApplicationWriter defines the transactional write path of the state machine.
type ApplicationWriter interface {
	// SaveApplicationInTx inserts a new application. A duplicate
	// (candidate, posting, position) yields apperrors.ErrDuplicate.
	SaveApplicationInTx(ctx context.Context, tx pgx.Tx, app domain.JobApplication) error
	// FindApplicationByIDForUpdate row-locks the application for the rest of tx.
	// Lock waits are bounded; contention yields apperrors.ErrConflict.
	FindApplicationByIDForUpdate(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.JobApplication, error)
	// UpdateApplicationStatusInTx persists status, withdrawn_at and audit fields when the
	// stored version still equals expectedVersion, otherwise apperrors.ErrConflict.
	UpdateApplicationStatusInTx(ctx context.Context, tx pgx.Tx, app domain.JobApplication, expectedVersion int64) error
}

// ApplicationRepositoryFacade combines reads and writes.
type ApplicationRepositoryFacade interface {
	ApplicationReader
	ApplicationWriter
}

// ApplicationRepositoryWithTx adds transaction management to the facade.
type ApplicationRepositoryWithTx interface {
	ApplicationRepositoryFacade
	TransactionManager
}
