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
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// IDriveRepository stores placement drives
type IDriveRepository interface {
	List(ctx context.Context, status models.DriveStatus) ([]models.PlacementDrive, error)
	GetByID(ctx context.Context, id int64) (*models.PlacementDrive, error)
	Create(ctx context.Context, drive *models.PlacementDrive) error
	Complete(ctx context.Context, id int64, noPlacedStudents int) error
}

var driveColumns = []string{
	"id", "company_name", "drive_date", "no_of_rounds", "round_description", "tech_stack",
	"status", "no_placed_students", "COALESCE(created_by, 0) AS created_by", "created_at", "updated_at",
}

// DriveRepository handles placement_drives database operations
type DriveRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDriveRepository creates a new DriveRepository
func NewDriveRepository(db *pgxpool.Pool) *DriveRepository {
	return &DriveRepository{db: db, sb: statementBuilder()}
}

func (r *DriveRepository) listQuery(status models.DriveStatus) (string, []interface{}, error) {
	q := r.sb.Select(driveColumns...).From("placement_drives")
	if status != "" {
		q = q.Where(squirrel.Eq{"status": status})
	}
	if status == models.DriveCompleted {
		q = q.OrderBy("drive_date DESC", "id DESC")
	} else {
		q = q.OrderBy("drive_date ASC", "id ASC")
	}
	return q.ToSql()
}

// List returns drives, optionally filtered by status. Upcoming drives come soonest first,
// completed ones most recent first.
func (r *DriveRepository) List(ctx context.Context, status models.DriveStatus) ([]models.PlacementDrive, error) {
	sql, args, err := r.listQuery(status)
	if err != nil {
		logger.Error().Err(err).Msg("Error building list drives SQL")
		return nil, fmt.Errorf("failed to build list drives query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list drives query")
		return nil, fmt.Errorf("error listing drives: %w", err)
	}
	drives, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PlacementDrive])
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning drive rows")
		return nil, fmt.Errorf("error listing drives: %w", err)
	}
	return drives, nil
}

// GetByID retrieves a drive
func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*models.PlacementDrive, error) {
	sql, args, err := r.sb.Select(driveColumns...).From("placement_drives").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get drive SQL")
		return nil, fmt.Errorf("failed to build get drive query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", id).Msg("Error executing get drive query")
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}
	drive, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.PlacementDrive])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriveNotFound
		}
		logger.Error().Err(err).Int64("driveID", id).Msg("Error scanning drive row")
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}
	return drive, nil
}

// Create inserts a drive
func (r *DriveRepository) Create(ctx context.Context, d *models.PlacementDrive) error {
	sql, args, err := r.sb.Insert("placement_drives").
		Columns("company_name", "drive_date", "no_of_rounds", "round_description", "tech_stack", "status", "created_by").
		Values(d.CompanyName, d.Date, d.NoOfRounds, d.RoundDescription, d.TechStack, d.Status, nullableID(d.CreatedBy)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create drive SQL")
		return fmt.Errorf("failed to build create drive query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("company", d.CompanyName).Msg("Error executing create drive query")
		return fmt.Errorf("error creating drive: %w", err)
	}
	return nil
}

// Complete closes an upcoming drive with its placed count
func (r *DriveRepository) Complete(ctx context.Context, id int64, noPlacedStudents int) error {
	sql, args, err := r.sb.Update("placement_drives").
		Set("status", models.DriveCompleted).
		Set("no_placed_students", noPlacedStudents).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": models.DriveUpcoming}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building complete drive SQL")
		return fmt.Errorf("failed to build complete drive query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", id).Msg("Error executing complete drive query")
		return fmt.Errorf("error completing drive: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}
	return nil
}
