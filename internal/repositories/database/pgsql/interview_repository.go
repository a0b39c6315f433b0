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

type PgxInterviewRepository struct {
	BaseRepository
}

func newPgxInterviewRepository(pool *pgxpool.Pool) portsrepo.InterviewRepositoryFacade {
	return &PgxInterviewRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InterviewRepositoryFacade = (*PgxInterviewRepository)(nil)

const (
	interviewsTable = "interview_details"

	upsertInterviewQuery = `
		INSERT INTO ` + interviewsTable + ` (
			application_id, interview_date, interview_time, location, contact_person,
			required_documents, notes, expenses, created_at, updated_at
		) VALUES ($1, $2::date, $3::time, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (application_id) DO UPDATE SET
			interview_date = EXCLUDED.interview_date,
			interview_time = EXCLUDED.interview_time,
			location = EXCLUDED.location,
			contact_person = EXCLUDED.contact_person,
			required_documents = EXCLUDED.required_documents,
			notes = EXCLUDED.notes,
			expenses = EXCLUDED.expenses,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	findInterviewQuery = `
		SELECT application_id, interview_date::text, to_char(interview_time, 'HH24:MI'), location,
		       contact_person, required_documents, COALESCE(notes, ''), expenses, created_at, updated_at
		FROM ` + interviewsTable + `
		WHERE application_id = $1
	`
)

// UpsertInterviewInTx creates or overwrites the application's interview. Rescheduling keeps
// the original created_at.
func (r *PgxInterviewRepository) UpsertInterviewInTx(ctx context.Context, tx pgx.Tx, rec *domain.InterviewRecord) error {
	m, err := mapping.ToModelInterview(*rec)
	if err != nil {
		return err
	}
	err = tx.QueryRow(ctx, upsertInterviewQuery,
		m.ApplicationID,
		m.InterviewDate,
		m.InterviewTime,
		m.Location,
		m.ContactPerson,
		m.RequiredDocuments,
		m.Notes,
		m.Expenses,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return classifyError(err, "failed to save interview details")
	}
	return nil
}

// FindInterviewByApplicationID returns the application's interview, or ErrNotFound.
func (r *PgxInterviewRepository) FindInterviewByApplicationID(ctx context.Context, applicationID string) (*domain.InterviewRecord, error) {
	return r.findInterview(ctx, r.Pool, applicationID)
}

// FindInterviewByApplicationIDInTx returns the application's interview as seen by tx.
func (r *PgxInterviewRepository) FindInterviewByApplicationIDInTx(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.InterviewRecord, error) {
	return r.findInterview(ctx, tx, applicationID)
}

func (r *PgxInterviewRepository) findInterview(ctx context.Context, q querier, applicationID string) (*domain.InterviewRecord, error) {
	var m models.Interview
	err := q.QueryRow(ctx, findInterviewQuery, applicationID).Scan(
		&m.ApplicationID,
		&m.InterviewDate,
		&m.InterviewTime,
		&m.Location,
		&m.ContactPerson,
		&m.RequiredDocuments,
		&m.Notes,
		&m.Expenses,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, classifyError(err, "interview not found")
	}

	rec, err := mapping.ToDomainInterview(m)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
