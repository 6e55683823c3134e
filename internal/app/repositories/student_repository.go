package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/dberrors"
	"github.com/yigit/placementhub/internal/pkg/helpers"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// IStudentRepository stores student profiles and serves the faculty student directory
type IStudentRepository interface {
	Create(ctx context.Context, profile *models.StudentProfile) error
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	Update(ctx context.Context, profile *models.StudentProfile) error
	List(ctx context.Context, filter models.StudentFilter, page helpers.PageRequest) ([]models.StudentProfile, int64, error)
	ListAll(ctx context.Context, filter models.StudentFilter) ([]models.StudentProfile, error)
}

var studentColumns = []string{
	"sp.user_id", "sp.student_id", "sp.name", "u.email", "sp.college_name", "sp.department_name",
	"sp.batch", "sp.mobile_number", "sp.ssc_result", "sp.hsc_result", "sp.diploma_result",
	"sp.cgpa", "sp.sgpa", "sp.no_of_backlog", "sp.interested_domains", "sp.created_at", "sp.updated_at",
}

// StudentRepository handles student_profiles database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db, sb: statementBuilder()}
}

// Create stores the profile and marks the owning user's profile as completed in one transaction
func (r *StudentRepository) Create(ctx context.Context, p *models.StudentProfile) error {
	if p.SGPA == nil {
		p.SGPA = map[string]float64{}
	}
	if p.InterestedDomains == nil {
		p.InterestedDomains = []string{}
	}

	sql, args, err := r.sb.Insert("student_profiles").
		Columns("user_id", "student_id", "name", "college_name", "department_name", "batch",
			"mobile_number", "ssc_result", "hsc_result", "diploma_result", "cgpa", "sgpa",
			"no_of_backlog", "interested_domains").
		Values(p.UserID, p.StudentID, p.Name, p.CollegeName, p.DepartmentName, p.Batch,
			p.MobileNumber, p.SSCResult, p.HSCResult, p.DiplomaResult, p.CGPA, p.SGPA,
			p.NoOfBacklog, p.InterestedDomains).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student profile SQL")
		return fmt.Errorf("failed to build create student profile query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
			switch {
			case dberrors.IsDuplicateConstraintError(err, "student_profiles_pkey"):
				return apperrors.ErrProfileCompleted
			case dberrors.IsDuplicateConstraintError(err, "student_profiles_student_id_key"):
				return apperrors.ErrStudentIDExists
			}
			logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error executing create student profile query")
			return fmt.Errorf("error creating student profile: %w", err)
		}
		return markProfileCompleted(ctx, tx, p.UserID, p.Name)
	})
}

// markProfileCompleted flips the user's profile flag and syncs the display name
func markProfileCompleted(ctx context.Context, tx pgx.Tx, userID int64, name string) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE users SET profile_completed = TRUE, name = $1, updated_at = $2 WHERE id = $3`,
		name, time.Now(), userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error marking profile completed")
		return fmt.Errorf("error marking profile completed: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *StudentRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(studentColumns...).
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id")
}

func scanStudents(rows pgx.Rows) ([]models.StudentProfile, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StudentProfile, error) {
		var p models.StudentProfile
		err := row.Scan(&p.UserID, &p.StudentID, &p.Name, &p.Email, &p.CollegeName, &p.DepartmentName,
			&p.Batch, &p.MobileNumber, &p.SSCResult, &p.HSCResult, &p.DiplomaResult,
			&p.CGPA, &p.SGPA, &p.NoOfBacklog, &p.InterestedDomains, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	})
}

// GetByUserID retrieves the profile of a user
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"sp.user_id": userID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student profile SQL")
		return nil, fmt.Errorf("failed to build get student profile query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing get student profile query")
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}
	students, err := scanStudents(rows)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student profile row")
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}
	if len(students) == 0 {
		return nil, apperrors.ErrProfileNotFound
	}
	return &students[0], nil
}

// Update replaces the editable profile fields
func (r *StudentRepository) Update(ctx context.Context, p *models.StudentProfile) error {
	sql, args, err := r.sb.Update("student_profiles").
		SetMap(map[string]interface{}{
			"student_id":         p.StudentID,
			"name":               p.Name,
			"college_name":       p.CollegeName,
			"department_name":    p.DepartmentName,
			"batch":              p.Batch,
			"mobile_number":      p.MobileNumber,
			"ssc_result":         p.SSCResult,
			"hsc_result":         p.HSCResult,
			"diploma_result":     p.DiplomaResult,
			"cgpa":               p.CGPA,
			"sgpa":               p.SGPA,
			"no_of_backlog":      p.NoOfBacklog,
			"interested_domains": p.InterestedDomains,
			"updated_at":         time.Now(),
		}).
		Where(squirrel.Eq{"user_id": p.UserID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student profile SQL")
		return fmt.Errorf("failed to build update student profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_student_id_key") {
			return apperrors.ErrStudentIDExists
		}
		logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error executing update student profile query")
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// applyStudentFilter narrows a directory query. Search matches name or email case-insensitively.
func applyStudentFilter(q squirrel.SelectBuilder, f models.StudentFilter) squirrel.SelectBuilder {
	if f.Batch != "" {
		q = q.Where(squirrel.Eq{"sp.batch": f.Batch})
	}
	if f.College != "" {
		q = q.Where(squirrel.ILike{"sp.college_name": "%" + escapeLike(f.College) + "%"})
	}
	if f.Department != "" {
		q = q.Where(squirrel.Eq{"sp.department_name": f.Department})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"sp.name": pattern},
			squirrel.ILike{"u.email": pattern},
		})
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *StudentRepository) listQuery(f models.StudentFilter, page helpers.PageRequest) (string, []interface{}, error) {
	return applyStudentFilter(r.baseSelect(), f).
		OrderBy("sp.name ASC", "sp.user_id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		ToSql()
}

func (r *StudentRepository) countQuery(f models.StudentFilter) (string, []interface{}, error) {
	return applyStudentFilter(
		r.sb.Select("COUNT(*)").From("student_profiles sp").Join("users u ON u.id = sp.user_id"), f,
	).ToSql()
}

// List returns one page of the directory and the total number of matches
func (r *StudentRepository) List(ctx context.Context, f models.StudentFilter, page helpers.PageRequest) ([]models.StudentProfile, int64, error) {
	countSQL, countArgs, err := r.countQuery(f)
	if err != nil {
		logger.Error().Err(err).Msg("Error building count students SQL")
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count students query")
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}
	if total == 0 {
		return []models.StudentProfile{}, 0, nil
	}

	sql, args, err := r.listQuery(f, page)
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	students, err := r.query(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// ListAll returns every match, for exports
func (r *StudentRepository) ListAll(ctx context.Context, f models.StudentFilter) ([]models.StudentProfile, error) {
	sql, args, err := applyStudentFilter(r.baseSelect(), f).OrderBy("sp.name ASC", "sp.user_id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building export students SQL")
		return nil, fmt.Errorf("failed to build export students query: %w", err)
	}
	return r.query(ctx, sql, args)
}

func (r *StudentRepository) query(ctx context.Context, sql string, args []interface{}) ([]models.StudentProfile, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	students, err := scanStudents(rows)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Msg("Error scanning student rows")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}
