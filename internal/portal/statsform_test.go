package portal

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/placementstats"
)

type placementCall struct {
	method string
	year   string
	req    dto.PlacementRecordRequest
}

// fakePlacementAPI echoes the request back as the saved record, the way the server does
// after re-deriving it.
type fakePlacementAPI struct {
	mu    sync.Mutex
	calls []placementCall
	err   error
	gate  chan struct{}
}

func (f *fakePlacementAPI) save(method, year string, req dto.PlacementRecordRequest) (*models.PlacementRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, placementCall{method: method, year: year, req: req})
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return nil, f.err
	}

	// the server only stores departments that have data
	var depts []placementstats.DepartmentStat
	for _, d := range req.Stats() {
		if d.HasData() {
			depts = append(depts, d)
		}
	}
	record := &models.PlacementRecord{AcademicYear: year, NoOfCompanies: req.NoOfCompanies, Departments: depts}
	record.Derive()
	return record, nil
}

func (f *fakePlacementAPI) CreatePlacementRecord(_ context.Context, year string, req dto.PlacementRecordRequest) (*models.PlacementRecord, error) {
	return f.save(http.MethodPost, year, req)
}

func (f *fakePlacementAPI) ReplacePlacementRecord(_ context.Context, year string, req dto.PlacementRecordRequest) (*models.PlacementRecord, error) {
	return f.save(http.MethodPut, year, req)
}

func (f *fakePlacementAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fillCSE enters the CSE {100, 80, 60} scenario.
func fillCSE(t *testing.T, form *StatsForm) int {
	t.Helper()
	cse := form.DepartmentIndex("CSE")
	require.GreaterOrEqual(t, cse, 0)
	require.True(t, form.OnDepartmentFieldChange(cse, placementstats.FieldTotalStudents, "100"))
	require.True(t, form.OnDepartmentFieldChange(cse, placementstats.FieldInterestedForJob, "80"))
	require.True(t, form.OnDepartmentFieldChange(cse, placementstats.FieldStudentsPlaced, "60"))
	return cse
}

func TestStatsForm_Scenario(t *testing.T) {
	api := &fakePlacementAPI{}
	form := NewStatsForm(api)
	form.SetYear("2024-2025")
	form.SetNoOfCompanies("10")
	cse := fillCSE(t, form)

	assert.Equal(t, 75.0, form.Departments()[cse].PlacementPercentage)
	total := form.Total()
	assert.Equal(t, 100, total.TotalStudents)
	assert.Equal(t, 75.0, total.PlacementPercentage)
	assert.Empty(t, form.Validate())

	// recomputation is idempotent
	assert.Equal(t, total, form.RecomputeTotals())
	assert.Equal(t, total, form.RecomputeTotals())

	var saved models.PlacementRecord
	require.NoError(t, form.Submit(context.Background(), func(r models.PlacementRecord) { saved = r }))

	require.Equal(t, 1, api.callCount())
	call := api.calls[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "2024-2025", call.year)
	assert.Equal(t, 10, call.req.NoOfCompanies)
	require.Len(t, call.req.Departments, len(placementstats.Departments))
	assert.Equal(t, "CSE", call.req.Departments[cse].Name)
	assert.Equal(t, 80, call.req.Departments[cse].InterestedForJob)
	require.NotNil(t, call.req.Total)
	assert.Equal(t, total, *call.req.Total)

	assert.Equal(t, "2024-2025", saved.AcademicYear)
	assert.Len(t, saved.Departments, len(placementstats.Departments))
	assert.Equal(t, total, saved.Total)
}

func TestStatsForm_RejectedEditLeavesState(t *testing.T) {
	form := NewStatsForm(&fakePlacementAPI{})
	cse := fillCSE(t, form)
	before := form.Departments()
	beforeTotal := form.Total()

	assert.False(t, form.OnDepartmentFieldChange(cse, placementstats.FieldInterestedForJob, "150"))
	assert.Equal(t, placementstats.MsgExceedsTotal, form.Errors()["CSE-interestedForJob"])
	assert.Equal(t, before, form.Departments())
	assert.Equal(t, beforeTotal, form.Total())

	assert.False(t, form.OnDepartmentFieldChange(cse, placementstats.FieldStudentsPlaced, "81"))
	assert.Equal(t, placementstats.MsgExceedsInterested, form.Errors()["CSE-studentsPlaced"])
	assert.Equal(t, before, form.Departments())

	// a good edit clears that field's error
	assert.True(t, form.OnDepartmentFieldChange(cse, placementstats.FieldInterestedForJob, "90"))
	_, still := form.Errors()["CSE-interestedForJob"]
	assert.False(t, still)
	assert.Equal(t, 66.67, form.Departments()[cse].PlacementPercentage)
}

func TestStatsForm_LoweringEditsKeepBounds(t *testing.T) {
	form := NewStatsForm(&fakePlacementAPI{})
	cse := fillCSE(t, form)
	before := form.Departments()

	assert.False(t, form.OnDepartmentFieldChange(cse, placementstats.FieldInterestedForJob, "10"))
	assert.Equal(t, placementstats.MsgBelowPlaced, form.Errors()["CSE-interestedForJob"])
	assert.False(t, form.OnDepartmentFieldChange(cse, placementstats.FieldTotalStudents, "5"))
	assert.Equal(t, placementstats.MsgBelowInterested, form.Errors()["CSE-totalStudents"])
	assert.False(t, form.OnDepartmentFieldChange(cse, placementstats.FieldStudentsPlaced, "-3"))
	assert.Equal(t, placementstats.MsgNegative, form.Errors()["CSE-studentsPlaced"])
	assert.Equal(t, before, form.Departments())

	for _, d := range form.Departments() {
		assert.LessOrEqual(t, d.InterestedForJob, d.TotalStudents, d.Name)
		assert.LessOrEqual(t, d.StudentsPlaced, d.InterestedForJob, d.Name)
		assert.GreaterOrEqual(t, d.StudentsPlaced, 0, d.Name)
	}
}

func TestStatsForm_SetDepartmentCounts(t *testing.T) {
	form := NewStatsForm(&fakePlacementAPI{})
	cse := fillCSE(t, form)

	require.True(t, form.SetDepartmentCounts(cse, "20", "10", "5"))
	got := form.Departments()[cse]
	assert.Equal(t, 20, got.TotalStudents)
	assert.Equal(t, 50.0, got.PlacementPercentage)
	assert.Equal(t, 20, form.Total().TotalStudents)

	assert.False(t, form.SetDepartmentCounts(cse, "5", "10", "1"))
	assert.Equal(t, placementstats.MsgExceedsTotal, form.Errors()["CSE-interestedForJob"])
	assert.Equal(t, got, form.Departments()[cse])

	// a valid triple clears the earlier violations
	require.True(t, form.SetDepartmentCounts(cse, "10", "10", "1"))
	assert.Empty(t, form.Errors())
	assert.False(t, form.SetDepartmentCounts(-1, "1", "1", "1"))
}

func TestStatsForm_NonNumericInputIsZero(t *testing.T) {
	form := NewStatsForm(&fakePlacementAPI{})
	cse := fillCSE(t, form)

	assert.True(t, form.OnDepartmentFieldChange(cse, placementstats.FieldStudentsPlaced, "lots"))
	assert.Equal(t, 0, form.Departments()[cse].StudentsPlaced)
	assert.Equal(t, 0.0, form.Total().PlacementPercentage)

	assert.False(t, form.OnDepartmentFieldChange(99, placementstats.FieldTotalStudents, "1"))
	assert.False(t, form.OnDepartmentFieldChange(cse, "placementPercentage", "1"))
}

func TestStatsForm_InvalidSubmitMakesNoCall(t *testing.T) {
	api := &fakePlacementAPI{}
	form := NewStatsForm(api)

	err := form.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrFormInvalid)
	assert.Zero(t, api.callCount())

	errs := form.Errors()
	assert.Contains(t, errs, placementstats.KeyYear)
	assert.Contains(t, errs, placementstats.KeyNoOfCompanies)
	assert.Contains(t, errs, placementstats.KeyDepartments)

	form.SetYear("2024-26")
	form.SetNoOfCompanies("3")
	fillCSE(t, form)
	assert.Equal(t, placementstats.MsgYearFormat, form.Validate()[placementstats.KeyYear])
	assert.ErrorIs(t, form.Submit(context.Background(), nil), ErrFormInvalid)
	assert.Zero(t, api.callCount())
}

func TestStatsForm_SecondSubmitReplaces(t *testing.T) {
	api := &fakePlacementAPI{}
	form := NewStatsForm(api)
	form.SetYear("2023-2024")
	form.SetNoOfCompanies("4")
	fillCSE(t, form)

	require.NoError(t, form.Submit(context.Background(), nil))
	assert.True(t, form.IsExisting())
	require.NoError(t, form.Submit(context.Background(), nil))

	require.Equal(t, 2, api.callCount())
	assert.Equal(t, http.MethodPost, api.calls[0].method)
	assert.Equal(t, http.MethodPut, api.calls[1].method)
}

func TestEditStatsForm_UsesPut(t *testing.T) {
	api := &fakePlacementAPI{}
	record := models.PlacementRecord{
		AcademicYear:  "2022-2023",
		NoOfCompanies: 7,
		Departments:   []placementstats.DepartmentStat{{Name: "IT", TotalStudents: 50, InterestedForJob: 40, StudentsPlaced: 10}},
	}
	form := EditStatsForm(api, record)

	assert.Equal(t, 25.0, form.Total().PlacementPercentage)
	require.NoError(t, form.Submit(context.Background(), nil))
	require.Equal(t, 1, api.callCount())
	assert.Equal(t, http.MethodPut, api.calls[0].method)
	assert.Equal(t, "2022-2023", api.calls[0].year)
}

func TestStatsForm_FailureKeepsStateAndMessage(t *testing.T) {
	api := &fakePlacementAPI{err: &APIError{Status: http.StatusConflict, Message: "Placement data for 2024-2025 already exists"}}
	form := NewStatsForm(api)
	form.SetYear("2024-2025")
	form.SetNoOfCompanies("10")
	fillCSE(t, form)
	before := form.Departments()

	called := false
	err := form.Submit(context.Background(), func(models.PlacementRecord) { called = true })
	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, "Placement data for 2024-2025 already exists", form.APIError())
	assert.Equal(t, before, form.Departments())
	assert.False(t, form.IsExisting())
	assert.False(t, form.Submitting())
}

func TestStatsForm_DoubleSubmitRejected(t *testing.T) {
	api := &fakePlacementAPI{gate: make(chan struct{})}
	form := NewStatsForm(api)
	form.SetYear("2024-2025")
	form.SetNoOfCompanies("10")
	fillCSE(t, form)

	done := make(chan error, 1)
	go func() { done <- form.Submit(context.Background(), nil) }()

	require.Eventually(t, form.Submitting, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, form.Submit(context.Background(), nil), ErrSubmitInFlight)

	close(api.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.callCount())
	assert.False(t, form.Submitting())
}
