package dto

// StudentProfileRequest completes or updates a student profile
type StudentProfileRequest struct {
	StudentID         string             `json:"studentId" binding:"required,alphanum,max=20" example:"21CE045"`
	Name              string             `json:"name" binding:"required,max=100"`
	CollegeName       string             `json:"collegeName" binding:"required,max=200"`
	DepartmentName    string             `json:"departmentName" binding:"required,deptcode" example:"CE"`
	Batch             string             `json:"batch" binding:"required,numeric,len=4" example:"2025"`
	MobileNumber      string             `json:"mobileNumber" binding:"required,mobile" example:"9876543210"`
	SSCResult         float64            `json:"sscResult" binding:"gte=0,lte=100" example:"88.4"`
	HSCResult         float64            `json:"hscResult" binding:"gte=0,lte=100" example:"79.2"`
	DiplomaResult     *float64           `json:"diplomaResult,omitempty" binding:"omitempty,gte=0,lte=100"`
	CGPA              float64            `json:"cgpa" binding:"gte=0,lte=10" example:"8.3"`
	SGPA              map[string]float64 `json:"sgpa" binding:"omitempty,dive,keys,required,endkeys,gte=0,lte=10"`
	NoOfBacklog       int                `json:"noOfBacklog" binding:"gte=0"`
	InterestedDomains []string           `json:"interestedDomains" binding:"omitempty,dive,required,max=50"`
}

// FacultyProfileRequest completes or updates a faculty profile
type FacultyProfileRequest struct {
	FacultyID       string `json:"facultyId" binding:"required,alphanum,max=20"`
	Name            string `json:"name" binding:"required,max=100"`
	CollegeName     string `json:"collegeName" binding:"required,max=200"`
	DepartmentName  string `json:"departmentName" binding:"required,deptcode"`
	MobileNumber    string `json:"mobileNumber" binding:"required,mobile"`
	LinkedinProfile string `json:"linkedinProfile" binding:"omitempty,url"`
}

// CompanyProfileRequest completes a company profile
type CompanyProfileRequest struct {
	CompanyName   string   `json:"companyName" binding:"required,max=200"`
	HRName        string   `json:"hrName" binding:"required,max=100"`
	HREmail       string   `json:"hrEmail" binding:"required,email"`
	ContactNumber string   `json:"contactNumber" binding:"required,mobile"`
	Domains       []string `json:"domains" binding:"omitempty,dive,required,max=50"`
}

// ProfileCompletedResponse returns the stored profile with the session reissued for it
type ProfileCompletedResponse struct {
	Profile interface{}    `json:"profile"`
	Session *LoginResponse `json:"session"`
}
