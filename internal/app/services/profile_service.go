package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/repositories"
)

// ProfileService completes and maintains the role specific profiles created after signup
type ProfileService struct {
	studentRepo repositories.IStudentRepository
	profileRepo repositories.IProfileRepository
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(studentRepo repositories.IStudentRepository, profileRepo repositories.IProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{studentRepo: studentRepo, profileRepo: profileRepo, logger: logger}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := map[string]bool{}
	for _, it := range items {
		it = strings.TrimSpace(it)
		key := strings.ToLower(it)
		if it == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

func studentFromRequest(userID int64, req *dto.StudentProfileRequest) *models.StudentProfile {
	sgpa := req.SGPA
	if sgpa == nil {
		sgpa = map[string]float64{}
	}
	return &models.StudentProfile{
		UserID:            userID,
		StudentID:         strings.ToUpper(strings.TrimSpace(req.StudentID)),
		Name:              strings.TrimSpace(req.Name),
		CollegeName:       strings.TrimSpace(req.CollegeName),
		DepartmentName:    req.DepartmentName,
		Batch:             req.Batch,
		MobileNumber:      req.MobileNumber,
		SSCResult:         req.SSCResult,
		HSCResult:         req.HSCResult,
		DiplomaResult:     req.DiplomaResult,
		CGPA:              req.CGPA,
		SGPA:              sgpa,
		NoOfBacklog:       req.NoOfBacklog,
		InterestedDomains: cleanList(req.InterestedDomains),
	}
}

// CompleteStudent stores the first student profile of a user and marks it completed
func (s *ProfileService) CompleteStudent(ctx context.Context, userID int64, req *dto.StudentProfileRequest) (*models.StudentProfile, error) {
	p := studentFromRequest(userID, req)
	if err := s.studentRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", userID).Str("studentID", p.StudentID).Msg("Student profile completed")
	return s.studentRepo.GetByUserID(ctx, userID)
}

// GetStudent returns the student profile of a user
func (s *ProfileService) GetStudent(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// UpdateStudent replaces the student profile of a user
func (s *ProfileService) UpdateStudent(ctx context.Context, userID int64, req *dto.StudentProfileRequest) (*models.StudentProfile, error) {
	if err := s.studentRepo.Update(ctx, studentFromRequest(userID, req)); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByUserID(ctx, userID)
}

func facultyFromRequest(userID int64, req *dto.FacultyProfileRequest) *models.FacultyProfile {
	return &models.FacultyProfile{
		UserID:          userID,
		FacultyID:       strings.ToUpper(strings.TrimSpace(req.FacultyID)),
		Name:            strings.TrimSpace(req.Name),
		CollegeName:     strings.TrimSpace(req.CollegeName),
		DepartmentName:  req.DepartmentName,
		MobileNumber:    req.MobileNumber,
		LinkedinProfile: strings.TrimSpace(req.LinkedinProfile),
	}
}

// CompleteFaculty stores the first faculty profile of a user and marks it completed
func (s *ProfileService) CompleteFaculty(ctx context.Context, userID int64, req *dto.FacultyProfileRequest) (*models.FacultyProfile, error) {
	if err := s.profileRepo.CreateFaculty(ctx, facultyFromRequest(userID, req)); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", userID).Msg("Faculty profile completed")
	return s.profileRepo.GetFaculty(ctx, userID)
}

// GetFaculty returns the faculty profile of a user
func (s *ProfileService) GetFaculty(ctx context.Context, userID int64) (*models.FacultyProfile, error) {
	return s.profileRepo.GetFaculty(ctx, userID)
}

// UpdateFaculty replaces the faculty profile of a user
func (s *ProfileService) UpdateFaculty(ctx context.Context, userID int64, req *dto.FacultyProfileRequest) (*models.FacultyProfile, error) {
	if err := s.profileRepo.UpdateFaculty(ctx, facultyFromRequest(userID, req)); err != nil {
		return nil, err
	}
	return s.profileRepo.GetFaculty(ctx, userID)
}

// CompleteCompany stores the company profile of a user and marks it completed
func (s *ProfileService) CompleteCompany(ctx context.Context, userID int64, req *dto.CompanyProfileRequest) (*models.CompanyProfile, error) {
	p := &models.CompanyProfile{
		UserID:        userID,
		CompanyName:   strings.TrimSpace(req.CompanyName),
		HRName:        strings.TrimSpace(req.HRName),
		HREmail:       repositories.NormalizeEmail(req.HREmail),
		ContactNumber: req.ContactNumber,
		Domains:       cleanList(req.Domains),
	}
	if err := s.profileRepo.CreateCompany(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", userID).Str("company", p.CompanyName).Msg("Company profile completed")
	return s.profileRepo.GetCompany(ctx, userID)
}

// GetCompany returns the company profile of a user
func (s *ProfileService) GetCompany(ctx context.Context, userID int64) (*models.CompanyProfile, error) {
	return s.profileRepo.GetCompany(ctx, userID)
}
