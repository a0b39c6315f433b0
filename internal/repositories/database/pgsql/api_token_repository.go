package pgsql

import (
	"context"
	"errors"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	"github.com/chasseuragace/code-sub001/internal/models"
	"github.com/chasseuragace/code-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAPITokenRepository struct {
	BaseRepository
}

// newPgxAPITokenRepository creates a new instance of PgxAPITokenRepository
func newPgxAPITokenRepository(db *pgxpool.Pool) portsrepo.APITokenRepository {
	return &PgxAPITokenRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.APITokenRepository = (*PgxAPITokenRepository)(nil)

// queryRow is a helper method to execute a query that returns a single row
func (r *PgxAPITokenRepository) queryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return r.Pool.QueryRow(ctx, sql, args...)
}

// exec is a helper method to execute a query that doesn't return rows
func (r *PgxAPITokenRepository) exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return r.Pool.Exec(ctx, sql, args...)
}

const (
	apiTokensTable = "api_tokens"

	selectAPITokenFields = `
		api_token_id, agency_id, role, name, token_hash, created_by,
		last_used_at, expires_at, created_at, updated_at
	`

	insertAPITokenQuery = `
		INSERT INTO ` + apiTokensTable + ` (
			agency_id, role, name, token_hash, created_by, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + selectAPITokenFields

	findAPITokenByIDQuery = `
		SELECT ` + selectAPITokenFields + `
		FROM ` + apiTokensTable + `
		WHERE api_token_id = $1 AND deleted_at IS NULL
	`

	findAPITokensByAgencyIDQuery = `
		SELECT ` + selectAPITokenFields + `
		FROM ` + apiTokensTable + `
		WHERE agency_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	touchAPITokenQuery = `
		UPDATE ` + apiTokensTable + `
		SET last_used_at = $2, updated_at = NOW()
		WHERE api_token_id = $1 AND deleted_at IS NULL
	`

	deleteAPITokenQuery = `
		UPDATE ` + apiTokensTable + `
		SET deleted_at = NOW()
		WHERE api_token_id = $1 AND deleted_at IS NULL
	`
)

// Create persists a new API token
func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	if token == nil {
		return errors.New("token cannot be nil")
	}

	modelToken := mapping.ToModelAPIToken(*token)

	created, err := scanAPIToken(r.queryRow(
		ctx,
		insertAPITokenQuery,
		modelToken.AgencyID,
		modelToken.Role,
		modelToken.Name,
		modelToken.TokenHash,
		modelToken.CreatedBy,
		modelToken.ExpiresAt,
	))
	if err != nil {
		return classifyError(err, "failed to create api token")
	}

	// Update the original token with the generated values
	token.ID = created.ID
	token.CreatedAt = created.CreatedAt
	token.UpdatedAt = created.UpdatedAt
	return nil
}

// FindByID retrieves a live API token by its ID
func (r *PgxAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	if id == "" {
		return nil, apperrors.NewNotFoundError("token not found")
	}

	token, err := scanAPIToken(r.queryRow(ctx, findAPITokenByIDQuery, id))
	if err != nil {
		return nil, classifyError(err, "token not found")
	}

	domainToken := mapping.ToDomainAPIToken(*token)
	return &domainToken, nil
}

// FindByAgencyID retrieves all live API tokens of an agency
func (r *PgxAPITokenRepository) FindByAgencyID(ctx context.Context, agencyID string) ([]domain.APIToken, error) {
	rows, err := r.Pool.Query(ctx, findAPITokensByAgencyIDQuery, agencyID)
	if err != nil {
		return nil, classifyError(err, "failed to list api tokens")
	}
	defer rows.Close()

	var tokens []models.APIToken
	for rows.Next() {
		token, err := scanAPIToken(rows)
		if err != nil {
			return nil, classifyError(err, "failed to scan api token")
		}
		tokens = append(tokens, *token)
	}
	if err = rows.Err(); err != nil {
		return nil, classifyError(err, "failed to iterate api tokens")
	}

	return mapping.ToDomainAPITokenSlice(tokens), nil
}

// TouchLastUsed stores the token's LastUsedAt
func (r *PgxAPITokenRepository) TouchLastUsed(ctx context.Context, token *domain.APIToken) error {
	if token == nil {
		return errors.New("token cannot be nil")
	}

	result, err := r.exec(ctx, touchAPITokenQuery, token.ID, token.LastUsedAt)
	if err != nil {
		return classifyError(err, "failed to update api token")
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("token not found")
	}
	return nil
}

// Delete removes an API token by ID (soft delete)
func (r *PgxAPITokenRepository) Delete(ctx context.Context, id string) error {
	result, err := r.exec(ctx, deleteAPITokenQuery, id)
	if err != nil {
		return classifyError(err, "failed to delete api token")
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("token not found or already deleted")
	}
	return nil
}

// scanAPIToken scans an API token from a row
func scanAPIToken(row pgx.Row) (*models.APIToken, error) {
	var token models.APIToken
	err := row.Scan(
		&token.ID,
		&token.AgencyID,
		&token.Role,
		&token.Name,
		&token.TokenHash,
		&token.CreatedBy,
		&token.LastUsedAt,
		&token.ExpiresAt,
		&token.CreatedAt,
		&token.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
