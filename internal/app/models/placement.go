package models

import (
	"time"

	"github.com/yigit/placementhub/internal/pkg/placementstats"
)

// DepartmentStat is one department's counts for an academic year
type DepartmentStat = placementstats.DepartmentStat

// PlacementTotals is the aggregate row of a placement record
type PlacementTotals = placementstats.Totals

// PlacementRecord is the yearly placement statistics aggregate, one per academic year
type PlacementRecord struct {
	ID            int64            `json:"id" db:"id"`
	AcademicYear  string           `json:"academicYear" db:"academic_year" example:"2024-2025"`
	NoOfCompanies int              `json:"noOfCompanies" db:"no_of_companies" example:"10"`
	Departments   []DepartmentStat `json:"departments"`
	Total         PlacementTotals  `json:"total"`
	UpdatedBy     int64            `json:"updatedBy,omitempty" db:"updated_by"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
}

// Derive recomputes every department percentage and the totals from the stored counts.
func (r *PlacementRecord) Derive() {
	for i := range r.Departments {
		r.Departments[i] = r.Departments[i].Recompute()
	}
	r.Total = placementstats.Sum(r.Departments)
}

// Department is a department code with its display name
type Department struct {
	Code string `json:"code" db:"code" example:"CSE"`
	Name string `json:"name" db:"name" example:"Computer Science and Engineering"`
}

// ChartData is one year of headline placement figures shown on the dashboards
type ChartData struct {
	ID                   int64     `json:"id" db:"id"`
	Year                 string    `json:"year" db:"year" example:"2024"`
	TotalStudentsApplied int       `json:"totalStudentsApplied" db:"total_students_applied"`
	StudentsPlaced       int       `json:"studentsPlaced" db:"students_placed"`
	CompaniesHiring      int       `json:"companiesHiring" db:"companies_hiring"`
	HighestPackage       float64   `json:"highestPackage" db:"highest_package"`
	AveragePackage       float64   `json:"averagePackage" db:"average_package"`
	LowestPackage        float64   `json:"lowestPackage" db:"lowest_package"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`
}
