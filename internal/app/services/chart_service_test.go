package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

type fakeCharts struct {
	next  int64
	items map[int64]models.ChartData
}

func newFakeCharts() *fakeCharts { return &fakeCharts{items: map[int64]models.ChartData{}} }

func (f *fakeCharts) List(context.Context) ([]models.ChartData, error) {
	var out []models.ChartData
	for _, d := range f.items {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeCharts) GetByID(_ context.Context, id int64) (*models.ChartData, error) {
	d, ok := f.items[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Chart data not found")
	}
	return &d, nil
}

func (f *fakeCharts) Create(_ context.Context, d *models.ChartData) error {
	f.next++
	d.ID = f.next
	f.items[d.ID] = *d
	return nil
}

func (f *fakeCharts) Update(_ context.Context, d *models.ChartData) error {
	if _, ok := f.items[d.ID]; !ok {
		return apperrors.NewResourceNotFoundError("Chart data not found")
	}
	f.items[d.ID] = *d
	return nil
}

func (f *fakeCharts) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return apperrors.NewResourceNotFoundError("Chart data not found")
	}
	delete(f.items, id)
	return nil
}

func chartReq() *dto.ChartDataRequest {
	return &dto.ChartDataRequest{
		Year:                 "2024",
		TotalStudentsApplied: 200,
		StudentsPlaced:       150,
		CompaniesHiring:      12,
		HighestPackage:       18,
		AveragePackage:       6.5,
		LowestPackage:        3.2,
	}
}

func TestChartService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewChartService(newFakeCharts(), zerolog.Nop())

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	created, err := svc.Create(ctx, chartReq())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	req := chartReq()
	req.StudentsPlaced = 160
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 160, updated.StudentsPlaced)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 160, got.StudentsPlaced)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestChartService_RejectsInconsistentFigures(t *testing.T) {
	svc := NewChartService(newFakeCharts(), zerolog.Nop())

	req := chartReq()
	req.StudentsPlaced = 250
	req.LowestPackage = 7
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	var ce *apperrors.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Details, "studentsPlaced")
	assert.Contains(t, ce.Details, "lowestPackage")
	assert.NotContains(t, ce.Details, "averagePackage")
}
