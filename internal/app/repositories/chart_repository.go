package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/dberrors"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// IChartRepository stores dashboard chart data points
type IChartRepository interface {
	List(ctx context.Context) ([]models.ChartData, error)
	GetByID(ctx context.Context, id int64) (*models.ChartData, error)
	Create(ctx context.Context, data *models.ChartData) error
	Update(ctx context.Context, data *models.ChartData) error
	Delete(ctx context.Context, id int64) error
}

var chartColumns = []string{
	"id", "year", "total_students_applied", "students_placed", "companies_hiring",
	"highest_package", "average_package", "lowest_package", "created_at", "updated_at",
}

// ChartRepository handles chart_data database operations
type ChartRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChartRepository creates a new ChartRepository
func NewChartRepository(db *pgxpool.Pool) *ChartRepository {
	return &ChartRepository{db: db, sb: statementBuilder()}
}

// List returns every data point in year order
func (r *ChartRepository) List(ctx context.Context) ([]models.ChartData, error) {
	sql, args, err := r.sb.Select(chartColumns...).From("chart_data").OrderBy("year ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list chart data SQL")
		return nil, fmt.Errorf("failed to build list chart data query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list chart data query")
		return nil, fmt.Errorf("error listing chart data: %w", err)
	}
	data, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ChartData])
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning chart data rows")
		return nil, fmt.Errorf("error listing chart data: %w", err)
	}
	return data, nil
}

// GetByID retrieves one data point
func (r *ChartRepository) GetByID(ctx context.Context, id int64) (*models.ChartData, error) {
	sql, args, err := r.sb.Select(chartColumns...).From("chart_data").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get chart data SQL")
		return nil, fmt.Errorf("failed to build get chart data query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("chartID", id).Msg("Error executing get chart data query")
		return nil, fmt.Errorf("error retrieving chart data: %w", err)
	}
	data, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.ChartData])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChartDataNotFound
		}
		logger.Error().Err(err).Int64("chartID", id).Msg("Error scanning chart data row")
		return nil, fmt.Errorf("error retrieving chart data: %w", err)
	}
	return data, nil
}

// Create inserts a data point. Years are unique.
func (r *ChartRepository) Create(ctx context.Context, d *models.ChartData) error {
	sql, args, err := r.sb.Insert("chart_data").
		Columns("year", "total_students_applied", "students_placed", "companies_hiring",
			"highest_package", "average_package", "lowest_package").
		Values(d.Year, d.TotalStudentsApplied, d.StudentsPlaced, d.CompaniesHiring,
			d.HighestPackage, d.AveragePackage, d.LowestPackage).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create chart data SQL")
		return fmt.Errorf("failed to build create chart data query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "chart_data_year_key") {
			return apperrors.NewConflictError("Chart data for this year already exists")
		}
		logger.Error().Err(err).Str("year", d.Year).Msg("Error executing create chart data query")
		return fmt.Errorf("error creating chart data: %w", err)
	}
	return nil
}

// Update replaces a data point
func (r *ChartRepository) Update(ctx context.Context, d *models.ChartData) error {
	d.UpdatedAt = time.Now()
	sql, args, err := r.sb.Update("chart_data").
		SetMap(map[string]interface{}{
			"year":                   d.Year,
			"total_students_applied": d.TotalStudentsApplied,
			"students_placed":        d.StudentsPlaced,
			"companies_hiring":       d.CompaniesHiring,
			"highest_package":        d.HighestPackage,
			"average_package":        d.AveragePackage,
			"lowest_package":         d.LowestPackage,
			"updated_at":             d.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": d.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update chart data SQL")
		return fmt.Errorf("failed to build update chart data query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrChartDataNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "chart_data_year_key") {
			return apperrors.NewConflictError("Chart data for this year already exists")
		}
		logger.Error().Err(err).Int64("chartID", d.ID).Msg("Error executing update chart data query")
		return fmt.Errorf("error updating chart data: %w", err)
	}
	return nil
}

// Delete removes a data point
func (r *ChartRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM chart_data WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("chartID", id).Msg("Error executing delete chart data query")
		return fmt.Errorf("error deleting chart data: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrChartDataNotFound
	}
	return nil
}
