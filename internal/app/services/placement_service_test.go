package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/placementstats"
)

func fieldErrors(t *testing.T, err error) map[string]interface{} {
	t.Helper()
	var ce *apperrors.CustomError
	require.True(t, errors.As(err, &ce), "expected CustomError, got %v", err)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	return ce.Details
}

func pct(v float64) *float64 { return &v }

func TestPlacementCreate_DerivesValues(t *testing.T) {
	svc := NewPlacementService(newFakePlacements(), zerolog.Nop())

	rec, err := svc.Create(context.Background(), "2024-2025", &dto.PlacementRecordRequest{
		NoOfCompanies: 12,
		Departments: []dto.DepartmentInput{
			{Name: "CSE", TotalStudents: 100, InterestedForJob: 80, StudentsPlaced: 60, PlacementPercentage: pct(99)},
			{Name: "ME", TotalStudents: 60, InterestedForJob: 20, StudentsPlaced: 5},
		},
		Total: &placementstats.Totals{TotalStudents: 1},
	}, 7)
	require.NoError(t, err)

	assert.Len(t, rec.Departments, len(placementstats.Departments))
	for _, d := range rec.Departments {
		switch d.Name {
		case "CSE":
			assert.Equal(t, 75.0, d.PlacementPercentage)
		case "ME":
			assert.Equal(t, 25.0, d.PlacementPercentage)
		default:
			assert.False(t, d.HasData())
		}
	}
	assert.Equal(t, 160, rec.Total.TotalStudents)
	assert.Equal(t, 100, rec.Total.InterestedForJob)
	assert.Equal(t, 65, rec.Total.StudentsPlaced)
	assert.Equal(t, 65.0, rec.Total.PlacementPercentage)
	assert.Equal(t, int64(7), rec.UpdatedBy)
}

func TestPlacementCreate_Validation(t *testing.T) {
	svc := NewPlacementService(newFakePlacements(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, "2024-2026", &dto.PlacementRecordRequest{}, 1)
	details := fieldErrors(t, err)
	assert.Equal(t, placementstats.MsgYearFormat, details[placementstats.KeyYear])
	assert.Equal(t, placementstats.MsgCompanies, details[placementstats.KeyNoOfCompanies])
	assert.Equal(t, placementstats.MsgNoDepartmentData, details[placementstats.KeyDepartments])

	_, err = svc.Create(ctx, "2024-2025", &dto.PlacementRecordRequest{
		NoOfCompanies: 1,
		Departments: []dto.DepartmentInput{
			{Name: "IT", TotalStudents: 10, InterestedForJob: 5, StudentsPlaced: 1},
			{Name: "IT", TotalStudents: 10, InterestedForJob: 5, StudentsPlaced: 1},
		},
	}, 1)
	details = fieldErrors(t, err)
	assert.Equal(t, MsgDuplicateDepartment, details["IT-name"])
}

func TestPlacementCreate_DuplicateYear(t *testing.T) {
	svc := NewPlacementService(newFakePlacements(), zerolog.Nop())
	ctx := context.Background()
	req := &dto.PlacementRecordRequest{
		NoOfCompanies: 3,
		Departments:   []dto.DepartmentInput{{Name: "CE", TotalStudents: 10, InterestedForJob: 5, StudentsPlaced: 2}},
	}

	_, err := svc.Create(ctx, "2023-2024", req, 1)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "2023-2024", req, 1)
	assert.ErrorIs(t, err, apperrors.ErrPlacementRecordExists)
}

func TestPlacementUpdateDepartment(t *testing.T) {
	repo := newFakePlacements()
	svc := NewPlacementService(repo, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, "2024-2025", &dto.PlacementRecordRequest{
		NoOfCompanies: 4,
		Departments:   []dto.DepartmentInput{{Name: "CSE", TotalStudents: 100, InterestedForJob: 80, StudentsPlaced: 60}},
	}, 1)
	require.NoError(t, err)

	rec, err := svc.UpdateDepartment(ctx, "2024-2025", "IT", &dto.UpdateDepartmentRequest{
		TotalStudents: 50, InterestedForJob: 20, StudentsPlaced: 20,
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, 100, rec.Total.InterestedForJob)
	assert.Equal(t, 80, rec.Total.StudentsPlaced)
	assert.Equal(t, 80.0, rec.Total.PlacementPercentage)

	stored, err := svc.Get(ctx, "2024-2025")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.UpdatedBy)

	_, err = svc.UpdateDepartment(ctx, "2024-2025", "BIO", &dto.UpdateDepartmentRequest{}, 2)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)

	_, err = svc.UpdateDepartment(ctx, "2024-2025", "IT", &dto.UpdateDepartmentRequest{
		TotalStudents: 10, InterestedForJob: 20,
	}, 2)
	details := fieldErrors(t, err)
	assert.Equal(t, placementstats.MsgExceedsTotal, details["IT-interestedForJob"])

	_, err = svc.UpdateDepartment(ctx, "2030-2031", "IT", &dto.UpdateDepartmentRequest{TotalStudents: 1}, 2)
	assert.ErrorIs(t, err, apperrors.ErrPlacementRecordNotFound)
}

func TestPlacementUpdateDepartment_CannotClearLastDepartment(t *testing.T) {
	svc := NewPlacementService(newFakePlacements(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, "2024-2025", &dto.PlacementRecordRequest{
		NoOfCompanies: 1,
		Departments:   []dto.DepartmentInput{{Name: "EE", TotalStudents: 10}},
	}, 1)
	require.NoError(t, err)

	_, err = svc.UpdateDepartment(ctx, "2024-2025", "EE", &dto.UpdateDepartmentRequest{}, 1)
	details := fieldErrors(t, err)
	assert.Equal(t, placementstats.MsgNoDepartmentData, details[placementstats.KeyDepartments])
}

func TestPlacementReplaceAndDelete(t *testing.T) {
	svc := NewPlacementService(newFakePlacements(), zerolog.Nop())
	ctx := context.Background()
	req := &dto.PlacementRecordRequest{
		NoOfCompanies: 2,
		Departments:   []dto.DepartmentInput{{Name: "DCE", TotalStudents: 30, InterestedForJob: 30, StudentsPlaced: 10}},
	}

	_, err := svc.Replace(ctx, "2022-2023", req, 1)
	assert.ErrorIs(t, err, apperrors.ErrPlacementRecordNotFound)

	_, err = svc.Create(ctx, "2022-2023", req, 1)
	require.NoError(t, err)

	req.NoOfCompanies = 5
	rec, err := svc.Replace(ctx, "2022-2023", req, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, rec.NoOfCompanies)
	assert.Equal(t, 33.33, rec.Total.PlacementPercentage)

	require.NoError(t, svc.Delete(ctx, "2022-2023"))
	_, err = svc.Get(ctx, "2022-2023")
	assert.ErrorIs(t, err, apperrors.ErrPlacementRecordNotFound)
}
