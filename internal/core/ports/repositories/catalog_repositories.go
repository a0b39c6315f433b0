package repositories

import (
	"context"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
)

// CatalogReader looks up postings, positions and candidates owned by other parts of the platform.
// Every method returns apperrors.ErrNotFound for unknown ids.
type CatalogReader interface {
	FindJobPostingByID(ctx context.Context, jobPostingID string) (*domain.JobPosting, error)
	FindPositionByID(ctx context.Context, positionID string) (*domain.JobPosition, error)
	FindCandidateByID(ctx context.Context, candidateID string) (*domain.Candidate, error)
}
