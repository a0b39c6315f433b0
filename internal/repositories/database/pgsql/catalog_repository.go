package pgsql

import (
	"context"
	"fmt"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCatalogRepository reads the posting, position and candidate tables. Other services own
// those rows; this engine never writes them.
type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogReader {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CatalogReader = (*PgxCatalogRepository)(nil)

const (
	findJobPostingQuery = `
		SELECT job_posting_id, agency_id, title, COALESCE(country, ''), is_open
		FROM job_postings
		WHERE job_posting_id = $1
	`

	findPositionQuery = `
		SELECT position_id, job_posting_id, title, vacancies
		FROM job_positions
		WHERE position_id = $1
	`

	findCandidateQuery = `
		SELECT candidate_id, full_name, COALESCE(phone, '')
		FROM candidates
		WHERE candidate_id = $1
	`
)

func (r *PgxCatalogRepository) FindJobPostingByID(ctx context.Context, jobPostingID string) (*domain.JobPosting, error) {
	var p domain.JobPosting
	err := r.Pool.QueryRow(ctx, findJobPostingQuery, jobPostingID).Scan(&p.ID, &p.AgencyID, &p.Title, &p.Country, &p.IsOpen)
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("job posting %s not found", jobPostingID))
	}
	return &p, nil
}

func (r *PgxCatalogRepository) FindPositionByID(ctx context.Context, positionID string) (*domain.JobPosition, error) {
	var p domain.JobPosition
	err := r.Pool.QueryRow(ctx, findPositionQuery, positionID).Scan(&p.ID, &p.JobPostingID, &p.Title, &p.Vacancies)
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("position %s not found", positionID))
	}
	return &p, nil
}

func (r *PgxCatalogRepository) FindCandidateByID(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	var c domain.Candidate
	err := r.Pool.QueryRow(ctx, findCandidateQuery, candidateID).Scan(&c.ID, &c.FullName, &c.Phone)
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("candidate %s not found", candidateID))
	}
	return &c, nil
}
