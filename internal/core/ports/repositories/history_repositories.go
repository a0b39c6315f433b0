package repositories

import (
	"context"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// HistoryReader reads an application's ledger.
type HistoryReader interface {
	// ListHistory returns the ledger oldest first. An unknown application yields an empty slice.
	ListHistory(ctx context.Context, applicationID string) ([]domain.TransitionRecord, error)
	// ListHistoryInTx is ListHistory inside tx.
	ListHistoryInTx(ctx context.Context, tx pgx.Tx, applicationID string) ([]domain.TransitionRecord, error)
}

// HistoryAppender is the only write path to the ledger. There is no update or delete.
type HistoryAppender interface {
	// AppendTransitionInTx inserts rec and sets rec.Seq to its 1-based position.
	AppendTransitionInTx(ctx context.Context, tx pgx.Tx, rec *domain.TransitionRecord) error
}

// HistoryRepositoryFacade combines ledger reads and appends.
type HistoryRepositoryFacade interface {
	HistoryReader
	HistoryAppender
}
