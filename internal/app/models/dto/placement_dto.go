package dto

import "github.com/yigit/placementhub/internal/pkg/placementstats"

// DepartmentInput is one department's counts as submitted by the form.
// Client side percentages are accepted but never trusted.
type DepartmentInput struct {
	Name                string   `json:"name" binding:"required" example:"CSE"`
	TotalStudents       int      `json:"totalStudents" example:"100"`
	InterestedForJob    int      `json:"interestedForJob" example:"80"`
	StudentsPlaced      int      `json:"studentsPlaced" example:"60"`
	PlacementPercentage *float64 `json:"placementPercentage,omitempty" swaggerignore:"true"`
}

// PlacementRecordRequest creates or replaces a year's placement record
type PlacementRecordRequest struct {
	NoOfCompanies int                    `json:"noOfCompanies" example:"10"`
	Departments   []DepartmentInput      `json:"departments"`
	Total         *placementstats.Totals `json:"total,omitempty" swaggerignore:"true"`
}

// Stats converts the submitted departments, dropping any client derived value.
func (r PlacementRecordRequest) Stats() []placementstats.DepartmentStat {
	out := make([]placementstats.DepartmentStat, len(r.Departments))
	for i, d := range r.Departments {
		out[i] = placementstats.DepartmentStat{
			Name:             d.Name,
			TotalStudents:    d.TotalStudents,
			InterestedForJob: d.InterestedForJob,
			StudentsPlaced:   d.StudentsPlaced,
		}
	}
	return out
}

// UpdateDepartmentRequest replaces one department's counts
type UpdateDepartmentRequest struct {
	TotalStudents    int `json:"totalStudents" example:"100"`
	InterestedForJob int `json:"interestedForJob" example:"80"`
	StudentsPlaced   int `json:"studentsPlaced" example:"60"`
}

// ChartDataRequest creates or replaces a chart data point
type ChartDataRequest struct {
	Year                 string  `json:"year" binding:"required,numeric,len=4" example:"2024"`
	TotalStudentsApplied int     `json:"totalStudentsApplied" binding:"gte=0" example:"420"`
	StudentsPlaced       int     `json:"studentsPlaced" binding:"gte=0,ltefield=TotalStudentsApplied" example:"310"`
	CompaniesHiring      int     `json:"companiesHiring" binding:"gte=0" example:"38"`
	HighestPackage       float64 `json:"highestPackage" binding:"gte=0" example:"24"`
	AveragePackage       float64 `json:"averagePackage" binding:"gte=0,ltefield=HighestPackage" example:"6.5"`
	LowestPackage        float64 `json:"lowestPackage" binding:"gte=0,ltefield=AveragePackage" example:"3.2"`
}
