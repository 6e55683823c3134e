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
)

// IProfileRepository stores faculty and company profiles
type IProfileRepository interface {
	CreateFaculty(ctx context.Context, profile *models.FacultyProfile) error
	GetFaculty(ctx context.Context, userID int64) (*models.FacultyProfile, error)
	UpdateFaculty(ctx context.Context, profile *models.FacultyProfile) error
	CreateCompany(ctx context.Context, profile *models.CompanyProfile) error
	GetCompany(ctx context.Context, userID int64) (*models.CompanyProfile, error)
}

// ProfileRepository handles faculty_profiles and company_profiles
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db, sb: statementBuilder()}
}

// CreateFaculty stores the profile and completes the user in one transaction
func (r *ProfileRepository) CreateFaculty(ctx context.Context, p *models.FacultyProfile) error {
	sql, args, err := r.sb.Insert("faculty_profiles").
		Columns("user_id", "faculty_id", "name", "college_name", "department_name", "mobile_number", "linkedin_profile").
		Values(p.UserID, p.FacultyID, p.Name, p.CollegeName, p.DepartmentName, p.MobileNumber, p.LinkedinProfile).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create faculty profile SQL")
		return fmt.Errorf("failed to build create faculty profile query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "faculty_profiles_pkey") {
				return apperrors.ErrProfileCompleted
			}
			if dberrors.IsDuplicateConstraintError(err, "faculty_profiles_faculty_id_key") {
				return apperrors.NewConflictError("Faculty ID already exists")
			}
			logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error executing create faculty profile query")
			return fmt.Errorf("error creating faculty profile: %w", err)
		}
		return markProfileCompleted(ctx, tx, p.UserID, p.Name)
	})
}

// GetFaculty retrieves the faculty profile of a user
func (r *ProfileRepository) GetFaculty(ctx context.Context, userID int64) (*models.FacultyProfile, error) {
	sql, args, err := r.sb.Select("fp.user_id", "fp.faculty_id", "fp.name", "u.email", "fp.college_name",
		"fp.department_name", "fp.mobile_number", "fp.linkedin_profile", "fp.created_at", "fp.updated_at").
		From("faculty_profiles fp").
		Join("users u ON u.id = fp.user_id").
		Where(squirrel.Eq{"fp.user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculty profile SQL")
		return nil, fmt.Errorf("failed to build get faculty profile query: %w", err)
	}

	var p models.FacultyProfile
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.UserID, &p.FacultyID, &p.Name, &p.Email, &p.CollegeName,
		&p.DepartmentName, &p.MobileNumber, &p.LinkedinProfile, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning faculty profile row")
		return nil, fmt.Errorf("error retrieving faculty profile: %w", err)
	}
	return &p, nil
}

// UpdateFaculty replaces the editable faculty fields
func (r *ProfileRepository) UpdateFaculty(ctx context.Context, p *models.FacultyProfile) error {
	sql, args, err := r.sb.Update("faculty_profiles").
		SetMap(map[string]interface{}{
			"faculty_id":       p.FacultyID,
			"name":             p.Name,
			"college_name":     p.CollegeName,
			"department_name":  p.DepartmentName,
			"mobile_number":    p.MobileNumber,
			"linkedin_profile": p.LinkedinProfile,
			"updated_at":       time.Now(),
		}).
		Where(squirrel.Eq{"user_id": p.UserID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update faculty profile SQL")
		return fmt.Errorf("failed to build update faculty profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "faculty_profiles_faculty_id_key") {
			return apperrors.NewConflictError("Faculty ID already exists")
		}
		logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error executing update faculty profile query")
		return fmt.Errorf("error updating faculty profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// CreateCompany stores the profile and completes the user in one transaction
func (r *ProfileRepository) CreateCompany(ctx context.Context, p *models.CompanyProfile) error {
	if p.Domains == nil {
		p.Domains = []string{}
	}
	sql, args, err := r.sb.Insert("company_profiles").
		Columns("user_id", "company_name", "hr_name", "hr_email", "contact_number", "domains").
		Values(p.UserID, p.CompanyName, p.HRName, p.HREmail, p.ContactNumber, p.Domains).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create company profile SQL")
		return fmt.Errorf("failed to build create company profile query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&p.CreatedAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "company_profiles_pkey") {
				return apperrors.ErrProfileCompleted
			}
			logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error executing create company profile query")
			return fmt.Errorf("error creating company profile: %w", err)
		}
		return markProfileCompleted(ctx, tx, p.UserID, p.HRName)
	})
}

// GetCompany retrieves the company profile of a user
func (r *ProfileRepository) GetCompany(ctx context.Context, userID int64) (*models.CompanyProfile, error) {
	sql, args, err := r.sb.Select("user_id", "company_name", "hr_name", "hr_email", "contact_number", "domains", "created_at").
		From("company_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get company profile SQL")
		return nil, fmt.Errorf("failed to build get company profile query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing get company profile query")
		return nil, fmt.Errorf("error retrieving company profile: %w", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.CompanyProfile])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning company profile row")
		return nil, fmt.Errorf("error retrieving company profile: %w", err)
	}
	return p, nil
}
