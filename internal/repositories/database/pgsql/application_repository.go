package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	"github.com/chasseuragace/code-sub001/internal/models"
	"github.com/chasseuragace/code-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxApplicationRepository struct {
	BaseRepository
	lockTimeout time.Duration
}

// newPgxApplicationRepository creates the repository for job_applications. lockTimeout bounds
// how long FindApplicationByIDForUpdate waits for a row held by another transaction.
func newPgxApplicationRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.ApplicationRepositoryWithTx {
	return &PgxApplicationRepository{
		BaseRepository: BaseRepository{Pool: pool},
		lockTimeout:    lockTimeout,
	}
}

var _ portsrepo.ApplicationRepositoryWithTx = (*PgxApplicationRepository)(nil)

const (
	applicationsTable = "job_applications"

	selectApplicationFields = `
		application_id, candidate_id, job_posting_id, position_id, agency_id, status, withdrawn_at,
		created_at, created_by, last_updated_at, last_updated_by, version
	`

	insertApplicationQuery = `
		INSERT INTO ` + applicationsTable + ` (
			application_id, candidate_id, job_posting_id, position_id, agency_id, status, withdrawn_at,
			created_at, created_by, last_updated_at, last_updated_by, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	findApplicationByIDQuery = `
		SELECT ` + selectApplicationFields + `
		FROM ` + applicationsTable + `
		WHERE application_id = $1
	`

	findApplicationForUpdateQuery = findApplicationByIDQuery + ` FOR UPDATE`

	findApplicationsByPostingAndCandidateQuery = `
		SELECT ` + selectApplicationFields + `
		FROM ` + applicationsTable + `
		WHERE job_posting_id = $1 AND candidate_id = $2
		ORDER BY created_at, application_id
	`

	updateApplicationStatusQuery = `
		UPDATE ` + applicationsTable + `
		SET status = $2, withdrawn_at = $3, last_updated_at = $4, last_updated_by = $5, version = $6
		WHERE application_id = $1 AND version = $7
	`

	setLockTimeoutQuery = `SELECT set_config('lock_timeout', $1, true)`
)

// FindApplicationByID retrieves an application without locking it.
func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.JobApplication, error) {
	return r.findApplicationByID(ctx, r.Pool, applicationID)
}

// FindApplicationByIDInTx retrieves an application inside tx without locking it.
func (r *PgxApplicationRepository) FindApplicationByIDInTx(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.JobApplication, error) {
	return r.findApplicationByID(ctx, tx, applicationID)
}

func (r *PgxApplicationRepository) findApplicationByID(ctx context.Context, q querier, applicationID string) (*domain.JobApplication, error) {
	app, err := scanApplication(q.QueryRow(ctx, findApplicationByIDQuery, applicationID))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("application %s not found", applicationID))
	}
	return app, nil
}

// FindApplicationsByPostingAndCandidate lists a candidate's applications on one posting.
func (r *PgxApplicationRepository) FindApplicationsByPostingAndCandidate(ctx context.Context, jobPostingID, candidateID string) ([]domain.JobApplication, error) {
	rows, err := r.Pool.Query(ctx, findApplicationsByPostingAndCandidateQuery, jobPostingID, candidateID)
	if err != nil {
		return nil, classifyError(err, "failed to query applications by posting and candidate")
	}
	return collectApplications(rows)
}

// ListApplications returns up to limit applications after the cursor, ordered by (created_at, id).
func (r *PgxApplicationRepository) ListApplications(ctx context.Context, filter domain.ApplicationFilter, limit int, after *portsrepo.ApplicationCursor) ([]domain.JobApplication, error) {
	var (
		conditions []string
		args       []interface{}
	)
	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, strings.Replace(clause, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if filter.AgencyID != "" {
		addCondition("agency_id = ?", filter.AgencyID)
	}
	if filter.CandidateID != "" {
		addCondition("candidate_id = ?", filter.CandidateID)
	}
	if filter.JobPostingID != "" {
		addCondition("job_posting_id = ?", filter.JobPostingID)
	}
	if filter.PositionID != "" {
		addCondition("position_id = ?", filter.PositionID)
	}
	if filter.Status != "" {
		addCondition("status = ?", string(filter.Status))
	}
	if after != nil {
		// Tuple comparison keeps the keyset stable when created_at ties.
		args = append(args, after.CreatedAt, after.ID)
		conditions = append(conditions, fmt.Sprintf("(created_at, application_id) > ($%d, $%d)", len(args)-1, len(args)))
	}

	query := "SELECT " + selectApplicationFields + " FROM " + applicationsTable
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY created_at, application_id LIMIT $" + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err, "failed to list applications")
	}
	return collectApplications(rows)
}

// SaveApplicationInTx inserts a new application. A second application of the same candidate
// to the same position reports ErrDuplicate.
func (r *PgxApplicationRepository) SaveApplicationInTx(ctx context.Context, tx pgx.Tx, app domain.JobApplication) error {
	m := mapping.ToModelApplication(app)
	_, err := tx.Exec(ctx, insertApplicationQuery,
		m.ApplicationID,
		m.CandidateID,
		m.JobPostingID,
		m.PositionID,
		m.AgencyID,
		m.Status,
		m.WithdrawnAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return classifyError(err, "candidate has already applied to this position")
	}
	return nil
}

// FindApplicationByIDForUpdate locks the application row for the rest of tx.
// Waiting longer than the lock timeout reports ErrConflict.
func (r *PgxApplicationRepository) FindApplicationByIDForUpdate(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.JobApplication, error) {
	if r.lockTimeout > 0 {
		timeout := strconv.FormatInt(r.lockTimeout.Milliseconds(), 10) + "ms"
		if _, err := tx.Exec(ctx, setLockTimeoutQuery, timeout); err != nil {
			return nil, classifyError(err, "failed to set lock timeout")
		}
	}

	app, err := scanApplication(tx.QueryRow(ctx, findApplicationForUpdateQuery, applicationID))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("application %s not found", applicationID))
	}
	return app, nil
}

// UpdateApplicationStatusInTx writes the new status if the stored version still equals
// expectedVersion.
func (r *PgxApplicationRepository) UpdateApplicationStatusInTx(ctx context.Context, tx pgx.Tx, app domain.JobApplication, expectedVersion int64) error {
	m := mapping.ToModelApplication(app)
	tag, err := tx.Exec(ctx, updateApplicationStatusQuery,
		m.ApplicationID,
		m.Status,
		m.WithdrawnAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
		expectedVersion,
	)
	if err != nil {
		return classifyError(err, "failed to update application status")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewRetryableConflictError(fmt.Sprintf("application %s was modified concurrently", app.ApplicationID), nil)
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.JobApplication, error) {
	var m models.Application
	err := row.Scan(
		&m.ApplicationID,
		&m.CandidateID,
		&m.JobPostingID,
		&m.PositionID,
		&m.AgencyID,
		&m.Status,
		&m.WithdrawnAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return nil, err
	}
	app := mapping.ToDomainApplication(m)
	return &app, nil
}

func collectApplications(rows pgx.Rows) ([]domain.JobApplication, error) {
	defer rows.Close()

	var apps []domain.JobApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, classifyError(err, "failed to scan application row")
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "failed to iterate application rows")
	}
	return apps, nil
}
