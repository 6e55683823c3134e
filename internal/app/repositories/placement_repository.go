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
	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/dberrors"
	"github.com/yigit/placementhub/internal/pkg/logger"
	"github.com/yigit/placementhub/internal/pkg/placementstats"
)

// IPlacementRepository stores yearly placement records with their department rows
type IPlacementRepository interface {
	List(ctx context.Context) ([]models.PlacementRecord, error)
	GetByYear(ctx context.Context, year string) (*models.PlacementRecord, error)
	Create(ctx context.Context, record *models.PlacementRecord) error
	Update(ctx context.Context, record *models.PlacementRecord) error
	Delete(ctx context.Context, year string) error
}

var placementColumns = []string{
	"id", "academic_year", "no_of_companies", "total_students", "interested_for_job",
	"students_placed", "placement_percentage", "COALESCE(updated_by, 0)", "created_at", "updated_at",
}

// PlacementRepository handles placement_records and placement_departments
type PlacementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPlacementRepository creates a new PlacementRepository
func NewPlacementRepository(db *pgxpool.Pool) *PlacementRepository {
	return &PlacementRepository{db: db, sb: statementBuilder()}
}

func scanPlacementRecord(row pgx.CollectableRow) (models.PlacementRecord, error) {
	var rec models.PlacementRecord
	err := row.Scan(&rec.ID, &rec.AcademicYear, &rec.NoOfCompanies,
		&rec.Total.TotalStudents, &rec.Total.InterestedForJob, &rec.Total.StudentsPlaced,
		&rec.Total.PlacementPercentage, &rec.UpdatedBy, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

// List returns every record, newest academic year first
func (r *PlacementRepository) List(ctx context.Context) ([]models.PlacementRecord, error) {
	sql, args, err := r.sb.Select(placementColumns...).
		From("placement_records").
		OrderBy("academic_year DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list placement records SQL")
		return nil, fmt.Errorf("failed to build list placement records query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list placement records query")
		return nil, fmt.Errorf("error listing placement records: %w", err)
	}
	records, err := pgx.CollectRows(rows, scanPlacementRecord)
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning placement record rows")
		return nil, fmt.Errorf("error listing placement records: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	ids := make([]int64, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	byRecord, err := r.departments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Departments = placementstats.Merge(byRecord[records[i].ID])
	}
	return records, nil
}

// GetByYear retrieves a record with its departments
func (r *PlacementRepository) GetByYear(ctx context.Context, year string) (*models.PlacementRecord, error) {
	sql, args, err := r.sb.Select(placementColumns...).
		From("placement_records").
		Where(squirrel.Eq{"academic_year": year}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get placement record SQL")
		return nil, fmt.Errorf("failed to build get placement record query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("year", year).Msg("Error executing get placement record query")
		return nil, fmt.Errorf("error retrieving placement record: %w", err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, scanPlacementRecord)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlacementRecordNotFound
		}
		logger.Error().Err(err).Str("year", year).Msg("Error scanning placement record row")
		return nil, fmt.Errorf("error retrieving placement record: %w", err)
	}

	byRecord, err := r.departments(ctx, []int64{rec.ID})
	if err != nil {
		return nil, err
	}
	rec.Departments = placementstats.Merge(byRecord[rec.ID])
	return &rec, nil
}

func (r *PlacementRepository) departments(ctx context.Context, recordIDs []int64) (map[int64][]models.DepartmentStat, error) {
	sql, args, err := r.sb.Select("record_id", "department_code", "total_students", "interested_for_job", "students_placed", "placement_percentage").
		From("placement_departments").
		Where(squirrel.Eq{"record_id": recordIDs}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list placement departments SQL")
		return nil, fmt.Errorf("failed to build list placement departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list placement departments query")
		return nil, fmt.Errorf("error listing placement departments: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]models.DepartmentStat, len(recordIDs))
	for rows.Next() {
		var id int64
		var d models.DepartmentStat
		if err := rows.Scan(&id, &d.Name, &d.TotalStudents, &d.InterestedForJob, &d.StudentsPlaced, &d.PlacementPercentage); err != nil {
			logger.Error().Err(err).Msg("Error scanning placement department row")
			return nil, fmt.Errorf("error listing placement departments: %w", err)
		}
		out[id] = append(out[id], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing placement departments: %w", err)
	}
	return out, nil
}

// departmentInsertQuery writes every department that carries data. Zero rows are implied by Merge.
func (r *PlacementRepository) departmentInsertQuery(recordID int64, depts []models.DepartmentStat) (string, []interface{}, bool, error) {
	q := r.sb.Insert("placement_departments").
		Columns("record_id", "department_code", "total_students", "interested_for_job", "students_placed", "placement_percentage")
	n := 0
	for _, d := range depts {
		if !d.HasData() {
			continue
		}
		q = q.Values(recordID, d.Name, d.TotalStudents, d.InterestedForJob, d.StudentsPlaced, d.PlacementPercentage)
		n++
	}
	if n == 0 {
		return "", nil, false, nil
	}
	sql, args, err := q.ToSql()
	return sql, args, true, err
}

func (r *PlacementRepository) writeDepartments(ctx context.Context, tx pgx.Tx, rec *models.PlacementRecord) error {
	sql, args, ok, err := r.departmentInsertQuery(rec.ID, rec.Departments)
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert placement departments SQL")
		return fmt.Errorf("failed to build insert placement departments query: %w", err)
	}
	if !ok {
		return nil
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("year", rec.AcademicYear).Msg("Error executing insert placement departments query")
		return fmt.Errorf("error storing placement departments: %w", err)
	}
	return nil
}

// Create inserts a new record and its departments in one transaction
func (r *PlacementRepository) Create(ctx context.Context, rec *models.PlacementRecord) error {
	sql, args, err := r.sb.Insert("placement_records").
		Columns("academic_year", "no_of_companies", "total_students", "interested_for_job",
			"students_placed", "placement_percentage", "updated_by").
		Values(rec.AcademicYear, rec.NoOfCompanies, rec.Total.TotalStudents, rec.Total.InterestedForJob,
			rec.Total.StudentsPlaced, rec.Total.PlacementPercentage, nullableID(rec.UpdatedBy)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create placement record SQL")
		return fmt.Errorf("failed to build create placement record query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "placement_records_academic_year_key") {
				return apperrors.ErrPlacementRecordExists
			}
			logger.Error().Err(err).Str("year", rec.AcademicYear).Msg("Error executing create placement record query")
			return fmt.Errorf("error creating placement record: %w", err)
		}
		return r.writeDepartments(ctx, tx, rec)
	})
}

// Update replaces the companies count, totals and department rows of an existing year
func (r *PlacementRepository) Update(ctx context.Context, rec *models.PlacementRecord) error {
	rec.UpdatedAt = time.Now()
	sql, args, err := r.sb.Update("placement_records").
		SetMap(map[string]interface{}{
			"no_of_companies":      rec.NoOfCompanies,
			"total_students":       rec.Total.TotalStudents,
			"interested_for_job":   rec.Total.InterestedForJob,
			"students_placed":      rec.Total.StudentsPlaced,
			"placement_percentage": rec.Total.PlacementPercentage,
			"updated_by":           nullableID(rec.UpdatedBy),
			"updated_at":           rec.UpdatedAt,
		}).
		Where(squirrel.Eq{"academic_year": rec.AcademicYear}).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update placement record SQL")
		return fmt.Errorf("failed to build update placement record query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrPlacementRecordNotFound
			}
			logger.Error().Err(err).Str("year", rec.AcademicYear).Msg("Error executing update placement record query")
			return fmt.Errorf("error updating placement record: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM placement_departments WHERE record_id = $1`, rec.ID); err != nil {
			logger.Error().Err(err).Str("year", rec.AcademicYear).Msg("Error clearing placement departments")
			return fmt.Errorf("error replacing placement departments: %w", err)
		}
		return r.writeDepartments(ctx, tx, rec)
	})
}

// Delete removes a year. Department rows go with it through ON DELETE CASCADE.
func (r *PlacementRepository) Delete(ctx context.Context, year string) error {
	sql, args, err := r.sb.Delete("placement_records").
		Where(squirrel.Eq{"academic_year": year}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete placement record SQL")
		return fmt.Errorf("failed to build delete placement record query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("year", year).Msg("Error executing delete placement record query")
		return fmt.Errorf("error deleting placement record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPlacementRecordNotFound
	}
	return nil
}
