package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/placementstats"
)

// MsgDuplicateDepartment flags a department submitted twice in one record
const MsgDuplicateDepartment = "Department listed more than once"

// PlacementService validates and stores yearly placement statistics. Percentages and
// totals are always derived here from the submitted counts.
type PlacementService struct {
	repo   repositories.IPlacementRepository
	logger zerolog.Logger
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(repo repositories.IPlacementRepository, logger zerolog.Logger) *PlacementService {
	return &PlacementService{repo: repo, logger: logger}
}

func validationError(fields map[string]string) error {
	msg := "Placement data is invalid"
	if len(fields) == 1 {
		for _, v := range fields {
			msg = v
		}
	}
	return apperrors.NewValidationError(msg, fields)
}

// buildRecord validates the submission and returns the derived record
func buildRecord(year string, req *dto.PlacementRecordRequest) (*models.PlacementRecord, error) {
	stats := req.Stats()
	errs := placementstats.Validate(year, req.NoOfCompanies, stats)

	seen := map[string]bool{}
	for _, d := range stats {
		if seen[d.Name] {
			errs[placementstats.ErrorKey(d.Name, "name")] = MsgDuplicateDepartment
		}
		seen[d.Name] = true
	}
	if len(errs) > 0 {
		return nil, validationError(errs)
	}

	rec := &models.PlacementRecord{
		AcademicYear:  year,
		NoOfCompanies: req.NoOfCompanies,
		Departments:   placementstats.Merge(stats),
	}
	rec.Derive()
	return rec, nil
}

// List returns every record, newest year first
func (s *PlacementService) List(ctx context.Context) ([]models.PlacementRecord, error) {
	return s.repo.List(ctx)
}

// Get returns the record of one academic year
func (s *PlacementService) Get(ctx context.Context, year string) (*models.PlacementRecord, error) {
	if msg := placementstats.ValidateAcademicYear(year); msg != "" {
		return nil, validationError(map[string]string{placementstats.KeyYear: msg})
	}
	return s.repo.GetByYear(ctx, year)
}

// Create stores a new academic year
func (s *PlacementService) Create(ctx context.Context, year string, req *dto.PlacementRecordRequest, userID int64) (*models.PlacementRecord, error) {
	rec, err := buildRecord(year, req)
	if err != nil {
		return nil, err
	}
	rec.UpdatedBy = userID

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info().Str("year", year).Int64("userID", userID).Msg("Placement record created")
	return rec, nil
}

// Replace overwrites the companies count and every department of an existing year
func (s *PlacementService) Replace(ctx context.Context, year string, req *dto.PlacementRecordRequest, userID int64) (*models.PlacementRecord, error) {
	rec, err := buildRecord(year, req)
	if err != nil {
		return nil, err
	}
	rec.UpdatedBy = userID

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info().Str("year", year).Int64("userID", userID).Msg("Placement record updated")
	return rec, nil
}

// UpdateDepartment replaces one department's counts and re-derives the year's totals
func (s *PlacementService) UpdateDepartment(ctx context.Context, year, dept string, req *dto.UpdateDepartmentRequest, userID int64) (*models.PlacementRecord, error) {
	if !placementstats.IsDepartmentCode(dept) {
		return nil, apperrors.NewCustomError(apperrors.ErrDepartmentNotFound, fmt.Sprintf("Unknown department %q", dept))
	}

	stat := placementstats.DepartmentStat{
		Name:             dept,
		TotalStudents:    req.TotalStudents,
		InterestedForJob: req.InterestedForJob,
		StudentsPlaced:   req.StudentsPlaced,
	}
	if errs := placementstats.CheckBounds(stat); len(errs) > 0 {
		return nil, validationError(errs)
	}

	rec, err := s.repo.GetByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	hasData := false
	for i := range rec.Departments {
		if rec.Departments[i].Name == dept {
			rec.Departments[i] = stat
		}
		if rec.Departments[i].HasData() {
			hasData = true
		}
	}
	if !hasData {
		return nil, validationError(map[string]string{placementstats.KeyDepartments: placementstats.MsgNoDepartmentData})
	}
	rec.Derive()
	rec.UpdatedBy = userID

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info().Str("year", year).Str("department", dept).Int64("userID", userID).Msg("Placement department updated")
	return rec, nil
}

// Delete removes an academic year
func (s *PlacementService) Delete(ctx context.Context, year string) error {
	if err := s.repo.Delete(ctx, year); err != nil {
		return err
	}
	s.logger.Info().Str("year", year).Msg("Placement record deleted")
	return nil
}
