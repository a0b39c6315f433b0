package repositories

import (
	"context"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InterviewReader reads the 0..1 interview record of an application. Both methods return
// apperrors.ErrNotFound when none was scheduled.
type InterviewReader interface {
	FindInterviewByApplicationID(ctx context.Context, applicationID string) (*domain.InterviewRecord, error)
	FindInterviewByApplicationIDInTx(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.InterviewRecord, error)
}

// InterviewWriter creates or overwrites the interview record.
type InterviewWriter interface {
	// UpsertInterviewInTx creates or overwrites the record and fills its timestamps.
	UpsertInterviewInTx(ctx context.Context, tx pgx.Tx, rec *domain.InterviewRecord) error
}

// InterviewRepositoryFacade combines interview reads and writes.
type InterviewRepositoryFacade interface {
	InterviewReader
	InterviewWriter
}
