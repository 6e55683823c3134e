package models

import "time"

// StudentProfile is the completed signup profile of a student
type StudentProfile struct {
	UserID            int64              `json:"userId" db:"user_id"`
	StudentID         string             `json:"studentId" db:"student_id" example:"21CE045"`
	Name              string             `json:"name" db:"name"`
	Email             string             `json:"email" db:"email"`
	CollegeName       string             `json:"collegeName" db:"college_name"`
	DepartmentName    string             `json:"departmentName" db:"department_name"`
	Batch             string             `json:"batch" db:"batch" example:"2025"`
	MobileNumber      string             `json:"mobileNumber" db:"mobile_number"`
	SSCResult         float64            `json:"sscResult" db:"ssc_result"`
	HSCResult         float64            `json:"hscResult" db:"hsc_result"`
	DiplomaResult     *float64           `json:"diplomaResult,omitempty" db:"diploma_result"`
	CGPA              float64            `json:"cgpa" db:"cgpa"`
	SGPA              map[string]float64 `json:"sgpa" db:"sgpa"`
	NoOfBacklog       int                `json:"noOfBacklog" db:"no_of_backlog"`
	InterestedDomains []string           `json:"interestedDomains" db:"interested_domains"`
	CreatedAt         time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time          `json:"updatedAt" db:"updated_at"`
}

// StudentFilter narrows the student directory
type StudentFilter struct {
	Batch      string
	College    string
	Department string
	Search     string
}

// FacultyProfile is the completed signup profile of a faculty member
type FacultyProfile struct {
	UserID          int64     `json:"userId" db:"user_id"`
	FacultyID       string    `json:"facultyId" db:"faculty_id"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	CollegeName     string    `json:"collegeName" db:"college_name"`
	DepartmentName  string    `json:"departmentName" db:"department_name"`
	MobileNumber    string    `json:"mobileNumber" db:"mobile_number"`
	LinkedinProfile string    `json:"linkedinProfile,omitempty" db:"linkedin_profile"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// CompanyProfile is the completed signup profile of a recruiting company
type CompanyProfile struct {
	UserID        int64     `json:"userId" db:"user_id"`
	CompanyName   string    `json:"companyName" db:"company_name"`
	HRName        string    `json:"hrName" db:"hr_name"`
	HREmail       string    `json:"hrEmail" db:"hr_email"`
	ContactNumber string    `json:"contactNumber" db:"contact_number"`
	Domains       []string  `json:"domains" db:"domains"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
