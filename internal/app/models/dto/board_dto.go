package dto

// CreateExamRequest announces an exam
type CreateExamRequest struct {
	Date           string `json:"date" binding:"required,datetime=2006-01-02" example:"2025-03-14"`
	Time           string `json:"time" binding:"required,examtime" example:"10:00"`
	ExamType       string `json:"examType" binding:"required,max=50" example:"Aptitude"`
	Venue          string `json:"venue" binding:"required,max=200" example:"Seminar Hall 2"`
	CollegeName    string `json:"collegeName" binding:"required,max=200"`
	DepartmentName string `json:"departmentName" binding:"required,max=100"`
	Duration       string `json:"duration" binding:"required,max=50" example:"90 minutes"`
}

// UpdateExamStatusRequest transitions an exam
type UpdateExamStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed" example:"completed"`
}

// CreateDriveRequest announces a placement drive
type CreateDriveRequest struct {
	CompanyName      string `json:"companyName" binding:"required,max=200" example:"Infosys"`
	Date             string `json:"date" binding:"required,datetime=2006-01-02" example:"2025-02-20"`
	NoOfRounds       int    `json:"noOfRounds" binding:"required,gt=0,lte=20" example:"3"`
	RoundDescription string `json:"roundDescription" binding:"required,max=2000"`
	TechStack        string `json:"techStack" binding:"required,max=500" example:"Java, Spring"`
}

// CompleteDriveRequest closes a drive with its result
type CompleteDriveRequest struct {
	NoPlacedStudents *int `json:"noPlacedStudents" binding:"required,gte=0" example:"12"`
}

// CreateResourceRequest shares a study resource
type CreateResourceRequest struct {
	Subject   string `json:"subject" binding:"required,max=200" example:"Data Structures"`
	DriveLink string `json:"driveLink" binding:"required,drivelink" example:"https://drive.google.com/drive/folders/abc"`
}

// CreateFeedbackRequest sends a message to the placement cell
type CreateFeedbackRequest struct {
	Category string `json:"category" binding:"required,oneof=general placement exam resource support" example:"placement"`
	Message  string `json:"message" binding:"required,min=5,max=2000"`
}
