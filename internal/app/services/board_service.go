package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/helpers"
	"github.com/yigit/placementhub/internal/pkg/validation"
)

func parseDate(field, value string) (time.Time, error) {
	t, err := helpers.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field+" must be a date in YYYY-MM-DD format",
			map[string]string{field: "must be a date in YYYY-MM-DD format"})
	}
	return t, nil
}

// ExamService manages the exam board
type ExamService struct {
	repo     repositories.IExamRepository
	notifier Notifier
	logger   zerolog.Logger
}

// NewExamService creates a new ExamService
func NewExamService(repo repositories.IExamRepository, notifier Notifier, logger zerolog.Logger) *ExamService {
	return &ExamService{repo: repo, notifier: notifier, logger: logger}
}

// ParseExamStatus validates an optional status filter
func ParseExamStatus(s string) (models.ExamStatus, error) {
	switch st := models.ExamStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "", models.ExamScheduled, models.ExamCompleted:
		return st, nil
	}
	return "", apperrors.NewBadRequestError("status must be scheduled or completed")
}

// List returns exams matching the filter
func (s *ExamService) List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	exams, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []models.Exam{}
	}
	return exams, nil
}

func examFromRequest(req *dto.CreateExamRequest) (*models.Exam, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	return &models.Exam{
		Date:           date,
		Time:           req.Time,
		ExamType:       strings.TrimSpace(req.ExamType),
		Venue:          strings.TrimSpace(req.Venue),
		CollegeName:    strings.TrimSpace(req.CollegeName),
		DepartmentName: strings.TrimSpace(req.DepartmentName),
		Duration:       strings.TrimSpace(req.Duration),
	}, nil
}

// Create schedules an exam and announces it
func (s *ExamService) Create(ctx context.Context, req *dto.CreateExamRequest, userID int64) (*models.Exam, error) {
	exam, err := examFromRequest(req)
	if err != nil {
		return nil, err
	}
	exam.Status = models.ExamScheduled
	exam.CreatedBy = userID

	if err := s.repo.Create(ctx, exam); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("examID", exam.ID).Str("examType", exam.ExamType).Msg("Exam scheduled")
	s.notifier.Notify(models.Notification{
		Type:     models.NotificationExamCreated,
		Title:    exam.ExamType + " exam scheduled",
		Body:     fmt.Sprintf("%s at %s, %s", exam.Date.Format(helpers.DateLayout), exam.Time, exam.Venue),
		Audience: everyone,
	})
	return exam, nil
}

// Update edits a scheduled exam
func (s *ExamService) Update(ctx context.Context, id int64, req *dto.CreateExamRequest) (*models.Exam, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.ExamScheduled {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition, "Only scheduled exams can be edited")
	}

	exam, err := examFromRequest(req)
	if err != nil {
		return nil, err
	}
	exam.ID = id
	exam.Status = current.Status
	exam.CreatedBy = current.CreatedBy
	exam.CreatedAt = current.CreatedAt

	if err := s.repo.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// UpdateStatus transitions an exam. Only scheduled -> completed is allowed.
func (s *ExamService) UpdateStatus(ctx context.Context, id int64, status models.ExamStatus) (*models.Exam, error) {
	if status != models.ExamCompleted {
		return nil, apperrors.NewBadRequestError("status can only be set to completed")
	}

	exam, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.Status != models.ExamScheduled {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition, "Exam is already completed")
	}

	if err := s.repo.UpdateStatus(ctx, id, models.ExamScheduled, models.ExamCompleted); err != nil {
		return nil, err
	}
	exam.Status = models.ExamCompleted

	s.logger.Info().Int64("examID", id).Msg("Exam completed")
	s.notifier.Notify(models.Notification{
		Type:     models.NotificationExamCompleted,
		Title:    exam.ExamType + " exam completed",
		Body:     "Results will be shared by the placement cell",
		Audience: everyone,
	})
	return exam, nil
}

// DriveService manages placement drives
type DriveService struct {
	repo     repositories.IDriveRepository
	notifier Notifier
	logger   zerolog.Logger
}

// NewDriveService creates a new DriveService
func NewDriveService(repo repositories.IDriveRepository, notifier Notifier, logger zerolog.Logger) *DriveService {
	return &DriveService{repo: repo, notifier: notifier, logger: logger}
}

// ParseDriveStatus validates an optional status filter
func ParseDriveStatus(s string) (models.DriveStatus, error) {
	switch st := models.DriveStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "", models.DriveUpcoming, models.DriveCompleted:
		return st, nil
	}
	return "", apperrors.NewBadRequestError("status must be upcoming or completed")
}

// List returns drives with the given status, or all drives
func (s *DriveService) List(ctx context.Context, status models.DriveStatus) ([]models.PlacementDrive, error) {
	drives, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	if drives == nil {
		drives = []models.PlacementDrive{}
	}
	return drives, nil
}

// Create announces an upcoming drive
func (s *DriveService) Create(ctx context.Context, req *dto.CreateDriveRequest, userID int64) (*models.PlacementDrive, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	drive := &models.PlacementDrive{
		CompanyName:      strings.TrimSpace(req.CompanyName),
		Date:             date,
		NoOfRounds:       req.NoOfRounds,
		RoundDescription: strings.TrimSpace(req.RoundDescription),
		TechStack:        strings.TrimSpace(req.TechStack),
		Status:           models.DriveUpcoming,
		CreatedBy:        userID,
	}
	if err := s.repo.Create(ctx, drive); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("driveID", drive.ID).Str("company", drive.CompanyName).Msg("Placement drive created")
	s.notifier.Notify(models.Notification{
		Type:     models.NotificationDriveCreated,
		Title:    drive.CompanyName + " placement drive",
		Body:     fmt.Sprintf("%s, %d rounds. Tech stack: %s", drive.Date.Format(helpers.DateLayout), drive.NoOfRounds, drive.TechStack),
		Audience: everyone,
	})
	return drive, nil
}

// Complete closes an upcoming drive with the number of students placed
func (s *DriveService) Complete(ctx context.Context, id int64, noPlacedStudents int) (*models.PlacementDrive, error) {
	if noPlacedStudents < 0 {
		return nil, apperrors.NewValidationError("noPlacedStudents cannot be negative",
			map[string]string{"noPlacedStudents": "cannot be negative"})
	}

	drive, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if drive.Status != models.DriveUpcoming {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition, "Drive is already completed")
	}

	if err := s.repo.Complete(ctx, id, noPlacedStudents); err != nil {
		return nil, err
	}
	drive.Status = models.DriveCompleted
	drive.NoPlacedStudents = &noPlacedStudents

	s.logger.Info().Int64("driveID", id).Int("placed", noPlacedStudents).Msg("Placement drive completed")
	s.notifier.Notify(models.Notification{
		Type:     models.NotificationDriveCompleted,
		Title:    drive.CompanyName + " drive completed",
		Body:     fmt.Sprintf("%d students placed", noPlacedStudents),
		Audience: everyone,
	})
	return drive, nil
}

// ResourceService manages shared study resources
type ResourceService struct {
	repo     repositories.IResourceRepository
	notifier Notifier
	logger   zerolog.Logger
}

// NewResourceService creates a new ResourceService
func NewResourceService(repo repositories.IResourceRepository, notifier Notifier, logger zerolog.Logger) *ResourceService {
	return &ResourceService{repo: repo, notifier: notifier, logger: logger}
}

// List returns every resource, newest first
func (s *ResourceService) List(ctx context.Context) ([]models.Resource, error) {
	resources, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if resources == nil {
		resources = []models.Resource{}
	}
	return resources, nil
}

// Create shares a Google Drive link
func (s *ResourceService) Create(ctx context.Context, req *dto.CreateResourceRequest, userID int64) (*models.Resource, error) {
	link := strings.TrimSpace(req.DriveLink)
	if !validation.IsDriveLink(link) {
		return nil, apperrors.NewValidationError("Please provide a valid Google Drive link",
			map[string]string{"driveLink": "must be a Google Drive or Google Docs link"})
	}

	res := &models.Resource{
		Subject:   strings.TrimSpace(req.Subject),
		DriveLink: link,
		CreatedBy: userID,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	s.notifier.Notify(models.Notification{
		Type:     models.NotificationResourceAdded,
		Title:    "New resource: " + res.Subject,
		Body:     res.DriveLink,
		Audience: []models.Role{models.RoleStudent},
	})
	return res, nil
}
