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

// IDepartmentRepository reads and seeds the department catalogue
type IDepartmentRepository interface {
	GetAll(ctx context.Context) ([]models.Department, error)
	Upsert(ctx context.Context, departments []models.Department) error
}

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db, sb: statementBuilder()}
}

// GetAll retrieves all departments in display order
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]models.Department, error) {
	sql, args, err := r.sb.Select("code", "name").
		From("departments").
		OrderBy("sort_order ASC", "code ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list departments SQL")
		return nil, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list departments query")
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	departments, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Department])
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning department rows")
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	return departments, nil
}

func (r *DepartmentRepository) upsertQuery(departments []models.Department) (string, []interface{}, error) {
	q := r.sb.Insert("departments").Columns("code", "name", "sort_order")
	for i, d := range departments {
		q = q.Values(d.Code, d.Name, i)
	}
	return q.Suffix("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, sort_order = EXCLUDED.sort_order").ToSql()
}

// Upsert inserts or renames departments, keeping the given order
func (r *DepartmentRepository) Upsert(ctx context.Context, departments []models.Department) error {
	if len(departments) == 0 {
		return nil
	}
	sql, args, err := r.upsertQuery(departments)
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert departments SQL")
		return fmt.Errorf("failed to build upsert departments query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing upsert departments query")
		return fmt.Errorf("error upserting departments: %w", err)
	}
	return nil
}
