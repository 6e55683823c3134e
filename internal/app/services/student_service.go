package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/export"
	"github.com/yigit/placementhub/internal/pkg/helpers"
)

// StudentService serves the faculty student directory
type StudentService struct {
	repo   repositories.IStudentRepository
	logger zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(repo repositories.IStudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{repo: repo, logger: logger}
}

// Directory returns one page of students matching the filter
func (s *StudentService) Directory(ctx context.Context, filter models.StudentFilter, page helpers.PageRequest) (*dto.PagedResponse, error) {
	students, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []models.StudentProfile{}
	}
	return &dto.PagedResponse{
		Items:      students,
		Pagination: helpers.NewPaginationInfo(total, page.Page, page.Size),
	}, nil
}

var studentExportHeaders = []string{
	"Student ID", "Name", "Email", "College", "Department", "Batch", "Mobile",
	"SSC", "HSC", "Diploma", "CGPA", "SGPA", "Backlogs", "Interested Domains",
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// sgpaCell renders semesters in key order, e.g. "sem1: 8.20; sem2: 8.45"
func sgpaCell(sgpa map[string]float64) string {
	keys := make([]string, 0, len(sgpa))
	for k := range sgpa {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + formatFloat(sgpa[k])
	}
	return strings.Join(parts, "; ")
}

// StudentTable lays students out as an export table
func StudentTable(students []models.StudentProfile) export.Table {
	rows := make([][]string, len(students))
	for i, st := range students {
		diploma := ""
		if st.DiplomaResult != nil {
			diploma = formatFloat(*st.DiplomaResult)
		}
		rows[i] = []string{
			st.StudentID, st.Name, st.Email, st.CollegeName, st.DepartmentName, st.Batch, st.MobileNumber,
			formatFloat(st.SSCResult), formatFloat(st.HSCResult), diploma, formatFloat(st.CGPA),
			sgpaCell(st.SGPA), strconv.Itoa(st.NoOfBacklog), strings.Join(st.InterestedDomains, ", "),
		}
	}
	return export.Table{Title: "Students", Headers: studentExportHeaders, Rows: rows}
}

// Export writes every student matching the filter to w
func (s *StudentService) Export(ctx context.Context, filter models.StudentFilter, format export.Format, w io.Writer) error {
	students, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return err
	}
	if err := export.Write(w, format, StudentTable(students)); err != nil {
		return fmt.Errorf("failed to export students: %w", err)
	}
	s.logger.Info().Int("count", len(students)).Str("format", string(format)).Msg("Student directory exported")
	return nil
}
