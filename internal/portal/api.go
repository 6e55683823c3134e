package portal

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
)

// Session is the identity the portal keeps for the signed-in user.
type Session = dto.SessionResponse

// --- Auth ---

// Login signs in with email and password. The server sets the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestOTP mails a signup verification code.
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/request-otp", nil, dto.RequestOTPRequest{Email: email}, nil)
}

// VerifyOTP creates the account and starts its session.
func (c *Client) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckAuth asks the server who the session cookie belongs to.
func (c *Client) CheckAuth(ctx context.Context) (Session, error) {
	var out dto.CheckAuthResponse
	if err := c.do(ctx, http.MethodGet, "/auth/check-auth", nil, nil, &out); err != nil {
		return Session{}, err
	}
	return out.User, nil
}

// Logout ends the session on the server. Local cookies are dropped whatever the outcome.
func (c *Client) Logout(ctx context.Context) error {
	defer c.ClearSession()
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, struct{}{}, nil)
}

// RequestPasswordReset asks for a reset link. The returned message is the same whether
// or not the address is registered.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var out dto.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/reset-email", nil, dto.ResetEmailRequest{Email: email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ResetPassword sets a new password with the token from the reset link.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	defer c.ClearSession()
	return c.do(ctx, http.MethodPost, "/auth/reset-password", nil, dto.ResetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
}

// Departments lists the department codes with their display names.
func (c *Client) Departments(ctx context.Context) ([]models.Department, error) {
	var out []models.Department
	if err := c.do(ctx, http.MethodGet, "/departments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Placement data ---

// PlacementRecords lists every academic year, newest first.
func (c *Client) PlacementRecords(ctx context.Context) ([]models.PlacementRecord, error) {
	var out []models.PlacementRecord
	if err := c.do(ctx, http.MethodGet, "/placement-data", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlacementRecord fetches one academic year.
func (c *Client) PlacementRecord(ctx context.Context, year string) (*models.PlacementRecord, error) {
	var out models.PlacementRecord
	if err := c.do(ctx, http.MethodGet, "/placement-data/"+url.PathEscape(year), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePlacementRecord stores a new academic year.
func (c *Client) CreatePlacementRecord(ctx context.Context, year string, req dto.PlacementRecordRequest) (*models.PlacementRecord, error) {
	var out models.PlacementRecord
	if err := c.do(ctx, http.MethodPost, "/placement-data/"+url.PathEscape(year), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReplacePlacementRecord overwrites an existing academic year.
func (c *Client) ReplacePlacementRecord(ctx context.Context, year string, req dto.PlacementRecordRequest) (*models.PlacementRecord, error) {
	var out models.PlacementRecord
	if err := c.do(ctx, http.MethodPut, "/placement-data/"+url.PathEscape(year), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChartData lists the yearly headline figures.
func (c *Client) ChartData(ctx context.Context) ([]models.ChartData, error) {
	var out []models.ChartData
	if err := c.do(ctx, http.MethodGet, "/chart-data", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Exams, drives, resources ---

// Exams lists exams, optionally narrowed by type and status.
func (c *Client) Exams(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	query := url.Values{}
	if filter.ExamType != "" {
		query.Set("type", filter.ExamType)
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	var out []models.Exam
	if err := c.do(ctx, http.MethodGet, "/exams", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateExam schedules an exam.
func (c *Client) CreateExam(ctx context.Context, req dto.CreateExamRequest) (*models.Exam, error) {
	var out models.Exam
	if err := c.do(ctx, http.MethodPost, "/exams", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateExam edits a scheduled exam.
func (c *Client) UpdateExam(ctx context.Context, id int64, req dto.CreateExamRequest) (*models.Exam, error) {
	var out models.Exam
	if err := c.do(ctx, http.MethodPut, "/exams/"+strconv.FormatInt(id, 10), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteExam moves a scheduled exam to completed.
func (c *Client) CompleteExam(ctx context.Context, id int64) (*models.Exam, error) {
	var out models.Exam
	path := "/exams/" + strconv.FormatInt(id, 10) + "/status"
	if err := c.do(ctx, http.MethodPut, path, nil, dto.UpdateExamStatusRequest{Status: string(models.ExamCompleted)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Drives lists placement drives with the given status, or all of them when status is empty.
func (c *Client) Drives(ctx context.Context, status models.DriveStatus) ([]models.PlacementDrive, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	var out []models.PlacementDrive
	if err := c.do(ctx, http.MethodGet, "/drives", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDrive announces a placement drive.
func (c *Client) CreateDrive(ctx context.Context, req dto.CreateDriveRequest) (*models.PlacementDrive, error) {
	var out models.PlacementDrive
	if err := c.do(ctx, http.MethodPost, "/drives", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteDrive closes an upcoming drive with the number of students placed.
func (c *Client) CompleteDrive(ctx context.Context, id int64, placed int) (*models.PlacementDrive, error) {
	var out models.PlacementDrive
	path := "/drives/" + strconv.FormatInt(id, 10) + "/complete"
	if err := c.do(ctx, http.MethodPut, path, nil, dto.CompleteDriveRequest{NoPlacedStudents: &placed}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resources lists the shared study resources.
func (c *Client) Resources(ctx context.Context) ([]models.Resource, error) {
	var out []models.Resource
	if err := c.do(ctx, http.MethodGet, "/resources", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateResource shares a study resource.
func (c *Client) CreateResource(ctx context.Context, req dto.CreateResourceRequest) (*models.Resource, error) {
	var out models.Resource
	if err := c.do(ctx, http.MethodPost, "/resources", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendFeedback posts a student's message to the placement cell.
func (c *Client) SendFeedback(ctx context.Context, req dto.CreateFeedbackRequest) error {
	return c.do(ctx, http.MethodPost, "/feedback", nil, req, nil)
}

// RecentNotifications returns the latest broadcasts addressed to the caller's role.
func (c *Client) RecentNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/recent", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Student directory ---

// StudentPage is one page of the student directory.
type StudentPage struct {
	Items      []models.StudentProfile `json:"items"`
	Pagination dto.PaginationInfo      `json:"pagination"`
}

func studentQuery(filter models.StudentFilter) url.Values {
	query := url.Values{}
	for key, value := range map[string]string{
		"batch":      filter.Batch,
		"college":    filter.College,
		"department": filter.Department,
		"search":     filter.Search,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}
	return query
}

// Students fetches a page of the student directory.
func (c *Client) Students(ctx context.Context, filter models.StudentFilter, page, size int) (*StudentPage, error) {
	query := studentQuery(filter)
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}
	var out StudentPage
	if err := c.do(ctx, http.MethodGet, "/students", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadStudents streams the filtered directory in format (csv, xlsx or pdf) to w and
// returns the file name suggested by the server.
func (c *Client) DownloadStudents(ctx context.Context, format string, filter models.StudentFilter, w io.Writer) (string, error) {
	query := studentQuery(filter)
	query.Set("format", format)

	req, err := c.newRequest(ctx, http.MethodGet, "/students/download", query, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download students: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", decodeError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	filename := "students." + format
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		filename = params["filename"]
	}
	return filename, nil
}
