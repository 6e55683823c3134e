package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// ChartService manages dashboard chart data
type ChartService struct {
	repo   repositories.IChartRepository
	logger zerolog.Logger
}

// NewChartService creates a new ChartService
func NewChartService(repo repositories.IChartRepository, logger zerolog.Logger) *ChartService {
	return &ChartService{repo: repo, logger: logger}
}

// checkChart enforces placed <= applied and lowest <= average <= highest
func checkChart(req *dto.ChartDataRequest) error {
	fields := map[string]string{}
	if req.StudentsPlaced > req.TotalStudentsApplied {
		fields["studentsPlaced"] = "cannot exceed totalStudentsApplied"
	}
	if req.AveragePackage > req.HighestPackage {
		fields["averagePackage"] = "cannot exceed highestPackage"
	}
	if req.LowestPackage > req.AveragePackage {
		fields["lowestPackage"] = "cannot exceed averagePackage"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("Chart data is inconsistent", fields)
	}
	return nil
}

func chartFromRequest(req *dto.ChartDataRequest) *models.ChartData {
	return &models.ChartData{
		Year:                 req.Year,
		TotalStudentsApplied: req.TotalStudentsApplied,
		StudentsPlaced:       req.StudentsPlaced,
		CompaniesHiring:      req.CompaniesHiring,
		HighestPackage:       req.HighestPackage,
		AveragePackage:       req.AveragePackage,
		LowestPackage:        req.LowestPackage,
	}
}

// List returns every data point
func (s *ChartService) List(ctx context.Context) ([]models.ChartData, error) {
	data, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []models.ChartData{}
	}
	return data, nil
}

// Get returns one data point
func (s *ChartService) Get(ctx context.Context, id int64) (*models.ChartData, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a data point
func (s *ChartService) Create(ctx context.Context, req *dto.ChartDataRequest) (*models.ChartData, error) {
	if err := checkChart(req); err != nil {
		return nil, err
	}
	d := chartFromRequest(req)
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info().Str("year", d.Year).Msg("Chart data created")
	return d, nil
}

// Update replaces a data point
func (s *ChartService) Update(ctx context.Context, id int64, req *dto.ChartDataRequest) (*models.ChartData, error) {
	if err := checkChart(req); err != nil {
		return nil, err
	}
	d := chartFromRequest(req)
	d.ID = id
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a data point
func (s *ChartService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
