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

// IExamRepository stores exams
type IExamRepository interface {
	List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error)
	GetByID(ctx context.Context, id int64) (*models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) error
	Update(ctx context.Context, exam *models.Exam) error
	UpdateStatus(ctx context.Context, id int64, from, to models.ExamStatus) error
}

var examColumns = []string{
	"id", "exam_date", "exam_time", "exam_type", "venue", "college_name", "department_name",
	"duration", "status", "COALESCE(created_by, 0) AS created_by", "created_at", "updated_at",
}

// ExamRepository handles exams database operations
type ExamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{db: db, sb: statementBuilder()}
}

func (r *ExamRepository) listQuery(f models.ExamFilter) (string, []interface{}, error) {
	q := r.sb.Select(examColumns...).From("exams")
	if f.ExamType != "" {
		q = q.Where(squirrel.ILike{"exam_type": f.ExamType})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"status": f.Status})
	}
	return q.OrderBy("exam_date ASC", "exam_time ASC", "id ASC").ToSql()
}

// List returns exams in date order
func (r *ExamRepository) List(ctx context.Context, f models.ExamFilter) ([]models.Exam, error) {
	sql, args, err := r.listQuery(f)
	if err != nil {
		logger.Error().Err(err).Msg("Error building list exams SQL")
		return nil, fmt.Errorf("failed to build list exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list exams query")
		return nil, fmt.Errorf("error listing exams: %w", err)
	}
	exams, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Exam])
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning exam rows")
		return nil, fmt.Errorf("error listing exams: %w", err)
	}
	return exams, nil
}

// GetByID retrieves an exam
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	sql, args, err := r.sb.Select(examColumns...).From("exams").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get exam SQL")
		return nil, fmt.Errorf("failed to build get exam query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", id).Msg("Error executing get exam query")
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}
	exam, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Exam])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		logger.Error().Err(err).Int64("examID", id).Msg("Error scanning exam row")
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}
	return exam, nil
}

// Create inserts an exam
func (r *ExamRepository) Create(ctx context.Context, e *models.Exam) error {
	sql, args, err := r.sb.Insert("exams").
		Columns("exam_date", "exam_time", "exam_type", "venue", "college_name", "department_name",
			"duration", "status", "created_by").
		Values(e.Date, e.Time, e.ExamType, e.Venue, e.CollegeName, e.DepartmentName,
			e.Duration, e.Status, nullableID(e.CreatedBy)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create exam SQL")
		return fmt.Errorf("failed to build create exam query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("examType", e.ExamType).Msg("Error executing create exam query")
		return fmt.Errorf("error creating exam: %w", err)
	}
	return nil
}

// Update replaces the editable fields of a scheduled exam
func (r *ExamRepository) Update(ctx context.Context, e *models.Exam) error {
	e.UpdatedAt = time.Now()
	sql, args, err := r.sb.Update("exams").
		SetMap(map[string]interface{}{
			"exam_date":       e.Date,
			"exam_time":       e.Time,
			"exam_type":       e.ExamType,
			"venue":           e.Venue,
			"college_name":    e.CollegeName,
			"department_name": e.DepartmentName,
			"duration":        e.Duration,
			"updated_at":      e.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": e.ID, "status": models.ExamScheduled}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update exam SQL")
		return fmt.Errorf("failed to build update exam query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", e.ID).Msg("Error executing update exam query")
		return fmt.Errorf("error updating exam: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

// UpdateStatus moves an exam from one status to another. It fails with ErrInvalidTransition
// when the exam is not currently in the from status.
func (r *ExamRepository) UpdateStatus(ctx context.Context, id int64, from, to models.ExamStatus) error {
	sql, args, err := r.sb.Update("exams").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update exam status SQL")
		return fmt.Errorf("failed to build update exam status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", id).Msg("Error executing update exam status query")
		return fmt.Errorf("error updating exam status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}
	return nil
}
