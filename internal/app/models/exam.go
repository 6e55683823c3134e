package models

import "time"

// ExamStatus is the lifecycle state of an exam
type ExamStatus string

const (
	ExamScheduled ExamStatus = "scheduled"
	ExamCompleted ExamStatus = "completed"
)

// Exam is an aptitude or technical exam announced to students
type Exam struct {
	ID             int64      `json:"id" db:"id"`
	Date           time.Time  `json:"date" db:"exam_date"`
	Time           string     `json:"time" db:"exam_time" example:"10:00"`
	ExamType       string     `json:"examType" db:"exam_type" example:"Aptitude"`
	Venue          string     `json:"venue" db:"venue"`
	CollegeName    string     `json:"collegeName" db:"college_name"`
	DepartmentName string     `json:"departmentName" db:"department_name"`
	Duration       string     `json:"duration" db:"duration" example:"90 minutes"`
	Status         ExamStatus `json:"status" db:"status"`
	CreatedBy      int64      `json:"createdBy" db:"created_by"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// ExamFilter narrows exam listings
type ExamFilter struct {
	ExamType string
	Status   ExamStatus
}

// DriveStatus is the lifecycle state of a placement drive
type DriveStatus string

const (
	DriveUpcoming  DriveStatus = "upcoming"
	DriveCompleted DriveStatus = "completed"
)

// PlacementDrive is a company's recruitment drive on campus
type PlacementDrive struct {
	ID               int64       `json:"id" db:"id"`
	CompanyName      string      `json:"companyName" db:"company_name"`
	Date             time.Time   `json:"date" db:"drive_date"`
	NoOfRounds       int         `json:"noOfRounds" db:"no_of_rounds"`
	RoundDescription string      `json:"roundDescription" db:"round_description"`
	TechStack        string      `json:"techStack" db:"tech_stack"`
	Status           DriveStatus `json:"status" db:"status"`
	NoPlacedStudents *int        `json:"noPlacedStudents,omitempty" db:"no_placed_students"`
	CreatedBy        int64       `json:"createdBy" db:"created_by"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at"`
}

// Resource is a study resource shared as a Google Drive link
type Resource struct {
	ID        int64     `json:"id" db:"id"`
	Subject   string    `json:"subject" db:"subject"`
	DriveLink string    `json:"driveLink" db:"drive_link"`
	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Feedback is a message a student sends to the placement cell
type Feedback struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	UserName  string    `json:"userName" db:"name"`
	UserEmail string    `json:"userEmail" db:"email"`
	Category  string    `json:"category" db:"category"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
