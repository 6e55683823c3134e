// Package placementstats holds the derivation and validation rules for yearly placement
// statistics. The API server and the portal form both build on it so the two sides always
// agree on percentages, totals and bounds.
package placementstats

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Department count fields that can be edited.
const (
	FieldTotalStudents    = "totalStudents"
	FieldInterestedForJob = "interestedForJob"
	FieldStudentsPlaced   = "studentsPlaced"
)

// Error keys for record level validation.
const (
	KeyYear          = "year"
	KeyNoOfCompanies = "noOfCompanies"
	KeyDepartments   = "departments"
)

const (
	MsgExceedsTotal      = "Cannot exceed total students"
	MsgExceedsInterested = "Cannot exceed interested students"
	MsgBelowInterested   = "Cannot be less than interested students"
	MsgBelowPlaced       = "Cannot be less than students placed"
	MsgYearRequired      = "Academic year is required"
	MsgYearFormat        = "Academic year must look like 2024-2025"
	MsgCompanies         = "Number of companies must be greater than 0"
	MsgNoDepartmentData  = "Data for at least one department is required"
	MsgUnknownDepartment = "Unknown department code"
	MsgNegative          = "Counts cannot be negative"
)

// Departments lists the department codes in display order.
var Departments = []string{"CE", "CSE", "IT", "ME", "EE", "EC", "DCE", "DCS", "DIT"}

// DepartmentNames maps each code to its display name.
var DepartmentNames = map[string]string{
	"CE":  "Computer Engineering",
	"CSE": "Computer Science and Engineering",
	"IT":  "Information Technology",
	"ME":  "Mechanical Engineering",
	"EE":  "Electrical Engineering",
	"EC":  "Electronics and Communication",
	"DCE": "Diploma in Computer Engineering",
	"DCS": "Diploma in Computer Science",
	"DIT": "Diploma in Information Technology",
}

var academicYearPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// DepartmentStat is one department's counts within an academic year.
type DepartmentStat struct {
	Name                string  `json:"name"`
	TotalStudents       int     `json:"totalStudents"`
	InterestedForJob    int     `json:"interestedForJob"`
	StudentsPlaced      int     `json:"studentsPlaced"`
	PlacementPercentage float64 `json:"placementPercentage"`
}

// Totals is the field-wise aggregate of a set of departments.
type Totals struct {
	TotalStudents       int     `json:"totalStudents"`
	InterestedForJob    int     `json:"interestedForJob"`
	StudentsPlaced      int     `json:"studentsPlaced"`
	PlacementPercentage float64 `json:"placementPercentage"`
}

// IsDepartmentCode reports whether code is a known department.
func IsDepartmentCode(code string) bool {
	_, ok := DepartmentNames[code]
	return ok
}

// IsEditableField reports whether field names one of the three department counts.
func IsEditableField(field string) bool {
	switch field {
	case FieldTotalStudents, FieldInterestedForJob, FieldStudentsPlaced:
		return true
	}
	return false
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percentage returns placed/interested*100 rounded to two decimals, or 0 when nobody is interested.
func Percentage(placed, interested int) float64 {
	if interested <= 0 {
		return 0
	}
	return Round2(float64(placed) / float64(interested) * 100)
}

// ParseCount parses raw form input. Anything that is not an integer becomes 0.
func ParseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// ErrorKey builds the field-scoped error key used by forms, e.g. "CSE-interestedForJob".
func ErrorKey(dept, field string) string {
	return dept + "-" + field
}

// Recompute returns d with its placement percentage derived from its counts.
func (d DepartmentStat) Recompute() DepartmentStat {
	d.PlacementPercentage = Percentage(d.StudentsPlaced, d.InterestedForJob)
	return d
}

// HasData reports whether any count is non-zero.
func (d DepartmentStat) HasData() bool {
	return d.TotalStudents != 0 || d.InterestedForJob != 0 || d.StudentsPlaced != 0
}

// Get returns the value of a count field.
func (d DepartmentStat) Get(field string) int {
	switch field {
	case FieldTotalStudents:
		return d.TotalStudents
	case FieldInterestedForJob:
		return d.InterestedForJob
	case FieldStudentsPlaced:
		return d.StudentsPlaced
	}
	return 0
}

// Apply sets field to value when the edit keeps the department within bounds in both
// directions. On rejection the original department is returned with the error message
// and ok=false.
func Apply(d DepartmentStat, field string, value int) (DepartmentStat, string, bool) {
	if !IsEditableField(field) {
		return d, fmt.Sprintf("unknown field %q", field), false
	}
	if value < 0 {
		return d, MsgNegative, false
	}
	switch field {
	case FieldTotalStudents:
		if value < d.InterestedForJob {
			return d, MsgBelowInterested, false
		}
		d.TotalStudents = value
	case FieldInterestedForJob:
		if value > d.TotalStudents {
			return d, MsgExceedsTotal, false
		}
		if value < d.StudentsPlaced {
			return d, MsgBelowPlaced, false
		}
		d.InterestedForJob = value
	case FieldStudentsPlaced:
		if value > d.InterestedForJob {
			return d, MsgExceedsInterested, false
		}
		d.StudentsPlaced = value
	}
	return d.Recompute(), "", true
}

// Assign replaces all three counts at once. The new values are checked together, so a
// department can move to any valid triple in one step. Violations are keyed by ErrorKey
// and leave d untouched.
func Assign(d DepartmentStat, total, interested, placed int) (DepartmentStat, map[string]string) {
	next := DepartmentStat{Name: d.Name, TotalStudents: total, InterestedForJob: interested, StudentsPlaced: placed}
	if errs := CheckBounds(next); len(errs) > 0 {
		return d, errs
	}
	return next.Recompute(), nil
}

// Sum aggregates departments field by field. The percentage comes from the summed
// counts, never from averaging department percentages.
func Sum(depts []DepartmentStat) Totals {
	var t Totals
	for _, d := range depts {
		t.TotalStudents += d.TotalStudents
		t.InterestedForJob += d.InterestedForJob
		t.StudentsPlaced += d.StudentsPlaced
	}
	t.PlacementPercentage = Percentage(t.StudentsPlaced, t.InterestedForJob)
	return t
}

// CheckBounds returns the bound violations of one department keyed by ErrorKey.
func CheckBounds(d DepartmentStat) map[string]string {
	errs := map[string]string{}
	if d.TotalStudents < 0 || d.InterestedForJob < 0 || d.StudentsPlaced < 0 {
		errs[ErrorKey(d.Name, FieldTotalStudents)] = MsgNegative
	}
	if d.InterestedForJob > d.TotalStudents {
		errs[ErrorKey(d.Name, FieldInterestedForJob)] = MsgExceedsTotal
	}
	if d.StudentsPlaced > d.InterestedForJob {
		errs[ErrorKey(d.Name, FieldStudentsPlaced)] = MsgExceedsInterested
	}
	return errs
}

// ValidateAcademicYear returns an empty string for a valid "YYYY-YYYY" pair of consecutive
// years, else the error message.
func ValidateAcademicYear(year string) string {
	year = strings.TrimSpace(year)
	if year == "" {
		return MsgYearRequired
	}
	m := academicYearPattern.FindStringSubmatch(year)
	if m == nil {
		return MsgYearFormat
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end != start+1 {
		return MsgYearFormat
	}
	return ""
}

// Validate checks a whole record and returns every violation keyed by field.
// An empty map means the record is valid.
func Validate(year string, noOfCompanies int, depts []DepartmentStat) map[string]string {
	errs := map[string]string{}

	if msg := ValidateAcademicYear(year); msg != "" {
		errs[KeyYear] = msg
	}
	if noOfCompanies <= 0 {
		errs[KeyNoOfCompanies] = MsgCompanies
	}

	hasData := false
	for _, d := range depts {
		if d.HasData() {
			hasData = true
		}
		if !IsDepartmentCode(d.Name) {
			errs[ErrorKey(d.Name, "name")] = MsgUnknownDepartment
		}
		for k, v := range CheckBounds(d) {
			errs[k] = v
		}
	}
	if !hasData {
		errs[KeyDepartments] = MsgNoDepartmentData
	}

	return errs
}

// EmptyDepartments returns one zeroed entry per department code, in display order.
func EmptyDepartments() []DepartmentStat {
	out := make([]DepartmentStat, len(Departments))
	for i, code := range Departments {
		out[i] = DepartmentStat{Name: code}
	}
	return out
}

// Merge lays known department values over the full zeroed list so callers always see
// every department in display order.
func Merge(known []DepartmentStat) []DepartmentStat {
	out := EmptyDepartments()
	for i := range out {
		for _, k := range known {
			if k.Name == out[i].Name {
				out[i] = k.Recompute()
				break
			}
		}
	}
	return out
}
