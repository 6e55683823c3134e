package portal

import (
	"context"
	"errors"
	"sync"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/placementstats"
)

var (
	// ErrSubmitInFlight is returned when Submit is called before the previous one resolved.
	ErrSubmitInFlight = errors.New("placement data is already being saved")
	// ErrFormInvalid is returned by Submit when Validate reports errors. Nothing is sent.
	ErrFormInvalid = errors.New("placement data is invalid")
)

// PlacementAPI saves placement records.
type PlacementAPI interface {
	CreatePlacementRecord(ctx context.Context, year string, req dto.PlacementRecordRequest) (*models.PlacementRecord, error)
	ReplacePlacementRecord(ctx context.Context, year string, req dto.PlacementRecordRequest) (*models.PlacementRecord, error)
}

// StatsForm is the yearly placement statistics form. Department edits are checked against
// the count bounds as they are typed and the totals follow every accepted edit.
type StatsForm struct {
	api PlacementAPI

	mu            sync.Mutex
	year          string
	noOfCompanies int
	departments   []placementstats.DepartmentStat
	total         placementstats.Totals
	errors        map[string]string
	apiError      string
	existing      bool
	submitting    bool
}

// NewStatsForm starts an empty form for a new academic year.
func NewStatsForm(api PlacementAPI) *StatsForm {
	return &StatsForm{
		api:         api,
		departments: placementstats.EmptyDepartments(),
		errors:      map[string]string{},
	}
}

// EditStatsForm opens an existing record. Submitting it replaces the record.
func EditStatsForm(api PlacementAPI, record models.PlacementRecord) *StatsForm {
	f := &StatsForm{
		api:           api,
		year:          record.AcademicYear,
		noOfCompanies: record.NoOfCompanies,
		departments:   placementstats.Merge(record.Departments),
		errors:        map[string]string{},
		existing:      true,
	}
	f.total = placementstats.Sum(f.departments)
	return f
}

// SetYear sets the academic year, e.g. "2024-2025".
func (f *StatsForm) SetYear(year string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.year = year
	delete(f.errors, placementstats.KeyYear)
}

// SetNoOfCompanies sets the company count from raw input. Non-numeric input becomes 0.
func (f *StatsForm) SetNoOfCompanies(raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noOfCompanies = placementstats.ParseCount(raw)
	delete(f.errors, placementstats.KeyNoOfCompanies)
}

// OnDepartmentFieldChange applies raw input to one department count. An edit that would
// break a bound is rejected: the error is recorded under "<DEPT>-<field>" and nothing
// changes. Accepted edits recompute the department and the totals. It reports whether the
// edit was accepted.
func (f *StatsForm) OnDepartmentFieldChange(deptIndex int, field, raw string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if deptIndex < 0 || deptIndex >= len(f.departments) || !placementstats.IsEditableField(field) {
		return false
	}

	dept := f.departments[deptIndex]
	key := placementstats.ErrorKey(dept.Name, field)

	updated, msg, ok := placementstats.Apply(dept, field, placementstats.ParseCount(raw))
	if !ok {
		f.errors[key] = msg
		return false
	}

	f.departments[deptIndex] = updated
	delete(f.errors, key)
	delete(f.errors, placementstats.KeyDepartments)
	f.total = placementstats.Sum(f.departments)
	return true
}

// SetDepartmentCounts replaces a department's three counts in one step, parsing each raw
// value like OnDepartmentFieldChange. Either the whole triple is committed or nothing
// changes and the violations are recorded.
func (f *StatsForm) SetDepartmentCounts(deptIndex int, total, interested, placed string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if deptIndex < 0 || deptIndex >= len(f.departments) {
		return false
	}

	dept := f.departments[deptIndex]
	for _, field := range []string{placementstats.FieldTotalStudents, placementstats.FieldInterestedForJob, placementstats.FieldStudentsPlaced} {
		delete(f.errors, placementstats.ErrorKey(dept.Name, field))
	}

	updated, errs := placementstats.Assign(dept,
		placementstats.ParseCount(total),
		placementstats.ParseCount(interested),
		placementstats.ParseCount(placed))
	if len(errs) > 0 {
		for k, v := range errs {
			f.errors[k] = v
		}
		return false
	}

	f.departments[deptIndex] = updated
	delete(f.errors, placementstats.KeyDepartments)
	f.total = placementstats.Sum(f.departments)
	return true
}

// RecomputeTotals derives the totals from the current departments.
func (f *StatsForm) RecomputeTotals() placementstats.Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total = placementstats.Sum(f.departments)
	return f.total
}

// Validate checks the whole form, records the errors and returns them.
func (f *StatsForm) Validate() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *StatsForm) validateLocked() map[string]string {
	f.errors = placementstats.Validate(f.year, f.noOfCompanies, f.departments)
	return copyErrors(f.errors)
}

// Submit validates and saves the form: POST for a new year, PUT for an existing one. On
// success the saved record, normalised to the full department list, is passed to onSaved
// and the form switches to editing that record. On failure the server message is kept in
// APIError and the form is left as it was.
func (f *StatsForm) Submit(ctx context.Context, onSaved func(models.PlacementRecord)) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if errs := f.validateLocked(); len(errs) > 0 {
		f.mu.Unlock()
		return ErrFormInvalid
	}

	f.submitting = true
	f.apiError = ""
	year := f.year
	existing := f.existing
	req := f.requestLocked()
	f.mu.Unlock()

	var (
		saved *models.PlacementRecord
		err   error
	)
	if existing {
		saved, err = f.api.ReplacePlacementRecord(ctx, year, req)
	} else {
		saved, err = f.api.CreatePlacementRecord(ctx, year, req)
	}

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.apiError = ErrorMessage(err)
		f.mu.Unlock()
		return err
	}

	record := normaliseRecord(year, saved)
	f.departments = record.Departments
	f.noOfCompanies = record.NoOfCompanies
	f.total = record.Total
	f.existing = true
	f.mu.Unlock()

	if onSaved != nil {
		onSaved(record)
	}
	return nil
}

func (f *StatsForm) requestLocked() dto.PlacementRecordRequest {
	req := dto.PlacementRecordRequest{
		NoOfCompanies: f.noOfCompanies,
		Departments:   make([]dto.DepartmentInput, len(f.departments)),
	}
	for i, d := range f.departments {
		pct := d.PlacementPercentage
		req.Departments[i] = dto.DepartmentInput{
			Name:                d.Name,
			TotalStudents:       d.TotalStudents,
			InterestedForJob:    d.InterestedForJob,
			StudentsPlaced:      d.StudentsPlaced,
			PlacementPercentage: &pct,
		}
	}
	total := f.total
	req.Total = &total
	return req
}

// normaliseRecord gives a saved record the form's shape: the year as submitted and every
// department present in display order.
func normaliseRecord(year string, saved *models.PlacementRecord) models.PlacementRecord {
	var record models.PlacementRecord
	if saved != nil {
		record = *saved
	}
	record.AcademicYear = year
	record.Departments = placementstats.Merge(record.Departments)
	record.Total = placementstats.Sum(record.Departments)
	return record
}

// Year returns the academic year.
func (f *StatsForm) Year() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.year
}

// NoOfCompanies returns the company count.
func (f *StatsForm) NoOfCompanies() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.noOfCompanies
}

// Departments returns a copy of the department rows.
func (f *StatsForm) Departments() []placementstats.DepartmentStat {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]placementstats.DepartmentStat, len(f.departments))
	copy(out, f.departments)
	return out
}

// DepartmentIndex returns the row of a department code, or -1.
func (f *StatsForm) DepartmentIndex(code string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, d := range f.departments {
		if d.Name == code {
			return i
		}
	}
	return -1
}

// Total returns the current totals.
func (f *StatsForm) Total() placementstats.Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

// Errors returns a copy of the field errors.
func (f *StatsForm) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyErrors(f.errors)
}

// APIError returns the message of the last failed submit.
func (f *StatsForm) APIError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apiError
}

// Submitting reports whether a submit is in flight.
func (f *StatsForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// IsExisting reports whether Submit will replace an existing record.
func (f *StatsForm) IsExisting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existing
}

func copyErrors(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
