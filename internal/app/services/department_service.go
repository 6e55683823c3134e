package services

import (
	"context"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/placementstats"
)

// DepartmentService serves the department catalogue
type DepartmentService struct {
	repo repositories.IDepartmentRepository
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(repo repositories.IDepartmentRepository) *DepartmentService {
	return &DepartmentService{repo: repo}
}

// Catalogue is the built-in department list in display order
func Catalogue() []models.Department {
	out := make([]models.Department, len(placementstats.Departments))
	for i, code := range placementstats.Departments {
		out[i] = models.Department{Code: code, Name: placementstats.DepartmentNames[code]}
	}
	return out
}

// List returns the seeded departments
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	departments, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return Catalogue(), nil
	}
	return departments, nil
}

// Seed stores the built-in catalogue
func (s *DepartmentService) Seed(ctx context.Context) error {
	return s.repo.Upsert(ctx, Catalogue())
}
