package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// IResourceRepository stores shared study resources
type IResourceRepository interface {
	List(ctx context.Context) ([]models.Resource, error)
	Create(ctx context.Context, resource *models.Resource) error
}

// ResourceRepository handles resources database operations
type ResourceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{db: db, sb: statementBuilder()}
}

// List returns resources, newest first
func (r *ResourceRepository) List(ctx context.Context) ([]models.Resource, error) {
	sql, args, err := r.sb.Select("id", "subject", "drive_link", "COALESCE(created_by, 0) AS created_by", "created_at").
		From("resources").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list resources SQL")
		return nil, fmt.Errorf("failed to build list resources query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list resources query")
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	resources, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Resource])
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning resource rows")
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	return resources, nil
}

// Create inserts a resource
func (r *ResourceRepository) Create(ctx context.Context, res *models.Resource) error {
	sql, args, err := r.sb.Insert("resources").
		Columns("subject", "drive_link", "created_by").
		Values(res.Subject, res.DriveLink, nullableID(res.CreatedBy)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create resource SQL")
		return fmt.Errorf("failed to build create resource query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
		logger.Error().Err(err).Str("subject", res.Subject).Msg("Error executing create resource query")
		return fmt.Errorf("error creating resource: %w", err)
	}
	return nil
}
