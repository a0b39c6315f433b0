package pgsql

import (
	"context"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	"github.com/chasseuragace/code-sub001/internal/models"
	"github.com/chasseuragace/code-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxHistoryRepository struct {
	BaseRepository
}

// newPgxHistoryRepository creates the repository for application_history. The table is
// insert-only; a trigger rejects UPDATE and DELETE.
func newPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepositoryFacade {
	return &PgxHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

const (
	historyTable = "application_history"

	// seq is derived under the application's row lock (or, on creation, from an application
	// no other transaction can see yet); the unique (application_id, seq) key is the backstop.
	appendHistoryQuery = `
		INSERT INTO ` + historyTable + ` (
			application_id, seq, prev_status, next_status, updated_at, updated_by, note, corrected
		)
		SELECT $1, COALESCE(MAX(seq), 0) + 1, $2, $3, $4, $5, $6, $7
		FROM ` + historyTable + `
		WHERE application_id = $1
		RETURNING seq
	`

	listHistoryQuery = `
		SELECT application_id, seq, prev_status, next_status, updated_at, updated_by, note, corrected
		FROM ` + historyTable + `
		WHERE application_id = $1
		ORDER BY seq
	`
)

// AppendTransitionInTx inserts rec at the end of the application's ledger and sets rec.Seq.
func (r *PgxHistoryRepository) AppendTransitionInTx(ctx context.Context, tx pgx.Tx, rec *domain.TransitionRecord) error {
	m := mapping.ToModelHistoryEntry(*rec)
	var seq int64
	err := tx.QueryRow(ctx, appendHistoryQuery,
		m.ApplicationID,
		m.PrevStatus,
		m.NextStatus,
		m.UpdatedAt,
		m.UpdatedBy,
		m.Note,
		m.Corrected,
	).Scan(&seq)
	if err != nil {
		return classifyError(err, "failed to append application history")
	}
	rec.Seq = seq
	return nil
}

// ListHistory returns the ledger oldest first.
func (r *PgxHistoryRepository) ListHistory(ctx context.Context, applicationID string) ([]domain.TransitionRecord, error) {
	return r.listHistory(ctx, r.Pool, applicationID)
}

// ListHistoryInTx returns the ledger as seen by tx.
func (r *PgxHistoryRepository) ListHistoryInTx(ctx context.Context, tx pgx.Tx, applicationID string) ([]domain.TransitionRecord, error) {
	return r.listHistory(ctx, tx, applicationID)
}

func (r *PgxHistoryRepository) listHistory(ctx context.Context, q querier, applicationID string) ([]domain.TransitionRecord, error) {
	rows, err := q.Query(ctx, listHistoryQuery, applicationID)
	if err != nil {
		return nil, classifyError(err, "failed to query application history")
	}
	defer rows.Close()

	history := []domain.TransitionRecord{}
	for rows.Next() {
		var m models.HistoryEntry
		if err := rows.Scan(
			&m.ApplicationID,
			&m.Seq,
			&m.PrevStatus,
			&m.NextStatus,
			&m.UpdatedAt,
			&m.UpdatedBy,
			&m.Note,
			&m.Corrected,
		); err != nil {
			return nil, classifyError(err, "failed to scan application history row")
		}
		history = append(history, mapping.ToDomainHistoryEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "failed to iterate application history")
	}
	return history, nil
}
