package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/middleware"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/export"
	"github.com/yigit/placementhub/internal/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.RegisterValidators(); err != nil {
		panic(err)
	}
}

var testCookie = CookieSettings{Name: "token", SameSite: http.SameSiteLaxMode}

// as fakes what JWTAuth puts in the context
func as(userID int64, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie.Name {
			return c
		}
	}
	return nil
}

// stubAuth implements AuthUseCase
type stubAuth struct {
	loginErr    error
	loggedOut   int64
	reissued    int64
	resetCalled bool
}

func (s *stubAuth) session(role models.Role, completed bool) *dto.LoginResponse {
	return &dto.LoginResponse{
		Role:             role,
		ProfileCompleted: completed,
		User:             dto.SessionResponse{ID: 7, Email: "a@college.test", Role: role, ProfileCompleted: completed},
		AccessToken:      "access-" + string(role),
		TokenType:        "Bearer",
		ExpiresIn:        3600,
	}
}

func (s *stubAuth) RequestOTP(context.Context, string) error { return nil }
func (s *stubAuth) VerifyOTP(_ context.Context, req *dto.VerifyOTPRequest) (*dto.LoginResponse, error) {
	return s.session(models.Role(req.UserData.Role), false), nil
}
func (s *stubAuth) Login(context.Context, *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.session(models.RoleStudent, true), nil
}
func (s *stubAuth) RefreshToken(context.Context, string) (*dto.LoginResponse, error) {
	return nil, apperrors.ErrTokenRevoked
}
func (s *stubAuth) Reissue(_ context.Context, userID int64) (*dto.LoginResponse, error) {
	s.reissued = userID
	return s.session(models.RoleStudent, true), nil
}
func (s *stubAuth) CheckAuth(_ context.Context, userID int64) (*dto.SessionResponse, error) {
	return &dto.SessionResponse{ID: userID, Role: models.RoleFaculty, ProfileCompleted: true}, nil
}
func (s *stubAuth) Logout(_ context.Context, userID int64) error {
	s.loggedOut = userID
	return nil
}
func (s *stubAuth) RequestPasswordReset(context.Context, string) error {
	s.resetCalled = true
	return nil
}
func (s *stubAuth) ResetPassword(context.Context, *dto.ResetPasswordRequest) error { return nil }
func (s *stubAuth) ResetEmailMessage() string                                      { return "If registered, sent" }
func (s *stubAuth) AccessTokenTTL() time.Duration                                  { return time.Hour }

func authRouter(svc *stubAuth) *gin.Engine {
	ctrl := NewAuthController(svc, testCookie, zerolog.Nop())
	r := gin.New()
	r.POST("/auth/login", ctrl.Login)
	r.POST("/auth/verify-otp", ctrl.VerifyOTP)
	r.POST("/auth/refresh-token", ctrl.RefreshToken)
	r.POST("/auth/reset-email", ctrl.ResetEmail)
	r.GET("/auth/check-auth", as(9, models.RoleFaculty), ctrl.CheckAuth)
	r.POST("/auth/logout", as(9, models.RoleFaculty), ctrl.Logout)
	r.GET("/auth/anonymous", ctrl.CheckAuth)
	return r
}

func TestAuthController_LoginSetsHttpOnlyCookie(t *testing.T) {
	w := doJSON(authRouter(&stubAuth{}), http.MethodPost, "/auth/login", map[string]string{
		"email": "a@college.test", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, "access-student", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)

	var session dto.LoginResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &session))
	assert.Equal(t, models.RoleStudent, session.Role)
	assert.True(t, session.ProfileCompleted)
}

func TestAuthController_LoginErrors(t *testing.T) {
	w := doJSON(authRouter(&stubAuth{}), http.MethodPost, "/auth/login", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decode(t, w).Error.Code)

	w = doJSON(authRouter(&stubAuth{loginErr: apperrors.ErrInvalidCredentials}), http.MethodPost, "/auth/login", map[string]string{
		"email": "a@college.test", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestAuthController_VerifyOTPRejectsUnknownRole(t *testing.T) {
	body := map[string]interface{}{
		"email": "a@college.test",
		"otp":   "123456",
		"userData": map[string]string{
			"name": "Asha", "password": "secret123", "role": "admin",
		},
	}
	w := doJSON(authRouter(&stubAuth{}), http.MethodPost, "/auth/verify-otp", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body["userData"] = map[string]string{"name": "Asha", "password": "secret123", "role": "company"}
	w = doJSON(authRouter(&stubAuth{}), http.MethodPost, "/auth/verify-otp", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "access-company", sessionCookie(w).Value)
}

func TestAuthController_SessionEndpoints(t *testing.T) {
	svc := &stubAuth{}
	r := authRouter(svc)

	w := doJSON(r, http.MethodGet, "/auth/check-auth", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var check dto.CheckAuthResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &check))
	assert.Equal(t, int64(9), check.User.ID)

	w = doJSON(r, http.MethodGet, "/auth/anonymous", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(9), svc.loggedOut)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)

	w = doJSON(r, http.MethodPost, "/auth/refresh-token", map[string]string{"refreshToken": "old"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/reset-email", map[string]string{"email": "nobody@college.test"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.resetCalled)
	assert.Equal(t, "If registered, sent", decode(t, w).Message)
}

// stubProfiles implements ProfileUseCase
type stubProfiles struct {
	existing bool
}

func (s *stubProfiles) CompleteStudent(_ context.Context, userID int64, req *dto.StudentProfileRequest) (*models.StudentProfile, error) {
	if s.existing {
		return nil, apperrors.NewCustomError(apperrors.ErrProfileCompleted, "Profile already completed")
	}
	return &models.StudentProfile{UserID: userID, StudentID: req.StudentID}, nil
}
func (s *stubProfiles) GetStudent(context.Context, int64) (*models.StudentProfile, error) {
	return nil, apperrors.ErrProfileNotFound
}
func (s *stubProfiles) UpdateStudent(context.Context, int64, *dto.StudentProfileRequest) (*models.StudentProfile, error) {
	return nil, nil
}
func (s *stubProfiles) CompleteFaculty(context.Context, int64, *dto.FacultyProfileRequest) (*models.FacultyProfile, error) {
	return nil, nil
}
func (s *stubProfiles) GetFaculty(context.Context, int64) (*models.FacultyProfile, error) {
	return nil, nil
}
func (s *stubProfiles) UpdateFaculty(context.Context, int64, *dto.FacultyProfileRequest) (*models.FacultyProfile, error) {
	return nil, nil
}
func (s *stubProfiles) CompleteCompany(context.Context, int64, *dto.CompanyProfileRequest) (*models.CompanyProfile, error) {
	return nil, nil
}
func (s *stubProfiles) GetCompany(context.Context, int64) (*models.CompanyProfile, error) {
	return nil, nil
}

func studentProfileBody() map[string]interface{} {
	return map[string]interface{}{
		"studentId":      "21CE045",
		"name":           "Asha Patel",
		"collegeName":    "LD College",
		"departmentName": "CE",
		"batch":          "2025",
		"mobileNumber":   "9876543210",
		"sscResult":      88.4,
		"hscResult":      79.2,
		"cgpa":           8.3,
		"sgpa":           map[string]float64{"sem1": 8.1},
	}
}

func TestProfileController_CompleteReissuesSession(t *testing.T) {
	svc := &stubAuth{}
	ctrl := NewProfileController(&stubProfiles{}, svc, testCookie, zerolog.Nop())
	r := gin.New()
	r.POST("/auth/profile/student", as(7, models.RoleStudent), ctrl.CompleteStudent)
	r.GET("/auth/profile/student", as(7, models.RoleStudent), ctrl.GetStudent)

	w := doJSON(r, http.MethodPost, "/auth/profile/student", studentProfileBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(7), svc.reissued)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, "access-student", cookie.Value)

	var resp struct {
		Profile models.StudentProfile `json:"profile"`
		Session dto.LoginResponse     `json:"session"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
	assert.Equal(t, "21CE045", resp.Profile.StudentID)
	assert.True(t, resp.Session.ProfileCompleted)

	w = doJSON(r, http.MethodGet, "/auth/profile/student", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileController_Validation(t *testing.T) {
	ctrl := NewProfileController(&stubProfiles{existing: true}, &stubAuth{}, testCookie, zerolog.Nop())
	r := gin.New()
	r.POST("/auth/profile/student", as(7, models.RoleStudent), ctrl.CompleteStudent)

	body := studentProfileBody()
	body["departmentName"] = "BIO"
	body["mobileNumber"] = "123"
	w := doJSON(r, http.MethodPost, "/auth/profile/student", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	details, ok := decode(t, w).Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "departmentName")
	assert.Contains(t, details, "mobileNumber")

	w = doJSON(r, http.MethodPost, "/auth/profile/student", studentProfileBody())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Nil(t, sessionCookie(w))
}

// stubPlacements implements PlacementUseCase
type stubPlacements struct {
	createdYear string
	createdBy   int64
}

func (s *stubPlacements) List(context.Context) ([]models.PlacementRecord, error) {
	return []models.PlacementRecord{}, nil
}
func (s *stubPlacements) Get(_ context.Context, year string) (*models.PlacementRecord, error) {
	return nil, apperrors.ErrPlacementRecordNotFound
}
func (s *stubPlacements) Create(_ context.Context, year string, req *dto.PlacementRecordRequest, userID int64) (*models.PlacementRecord, error) {
	s.createdYear, s.createdBy = year, userID
	if req.NoOfCompanies <= 0 {
		return nil, apperrors.NewValidationError("Invalid placement data", map[string]string{"noOfCompanies": "Must be greater than 0"})
	}
	return &models.PlacementRecord{AcademicYear: year, NoOfCompanies: req.NoOfCompanies}, nil
}
func (s *stubPlacements) Replace(context.Context, string, *dto.PlacementRecordRequest, int64) (*models.PlacementRecord, error) {
	return nil, apperrors.ErrPlacementRecordNotFound
}
func (s *stubPlacements) UpdateDepartment(context.Context, string, string, *dto.UpdateDepartmentRequest, int64) (*models.PlacementRecord, error) {
	return nil, apperrors.ErrDepartmentNotFound
}
func (s *stubPlacements) Delete(context.Context, string) error { return nil }

func TestPlacementController(t *testing.T) {
	svc := &stubPlacements{}
	ctrl := NewPlacementController(svc, zerolog.Nop())
	r := gin.New()
	g := r.Group("/placement-data", as(3, models.RoleFaculty))
	g.GET("/:year", ctrl.Get)
	g.POST("/:year", ctrl.Create)
	g.PUT("/:year", ctrl.Replace)
	g.PUT("/:year/departments/:dept", ctrl.UpdateDepartment)
	g.DELETE("/:year", ctrl.Delete)

	w := doJSON(r, http.MethodPost, "/placement-data/2024-2025", map[string]interface{}{
		"noOfCompanies": 10,
		"departments":   []map[string]interface{}{{"name": "CSE", "totalStudents": 100, "interestedForJob": 80, "studentsPlaced": 60}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2024-2025", svc.createdYear)
	assert.Equal(t, int64(3), svc.createdBy)

	w = doJSON(r, http.MethodPost, "/placement-data/2024-2025", map[string]interface{}{"noOfCompanies": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "noOfCompanies", env.Error.Field)

	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/placement-data/2030-2031", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodPut, "/placement-data/2030-2031", map[string]interface{}{}).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodPut, "/placement-data/2024-2025/departments/BIO", map[string]int{"totalStudents": 1}).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, "/placement-data/2024-2025", nil).Code)
}

// stubExams implements ExamUseCase
type stubExams struct {
	filter models.ExamFilter
	exam   models.Exam
}

func (s *stubExams) List(_ context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	s.filter = filter
	return []models.Exam{}, nil
}
func (s *stubExams) Create(_ context.Context, req *dto.CreateExamRequest, userID int64) (*models.Exam, error) {
	return &models.Exam{ID: 1, ExamType: req.ExamType, Status: models.ExamScheduled, CreatedBy: userID}, nil
}
func (s *stubExams) Update(context.Context, int64, *dto.CreateExamRequest) (*models.Exam, error) {
	return nil, apperrors.ErrInvalidTransition
}
func (s *stubExams) UpdateStatus(_ context.Context, id int64, status models.ExamStatus) (*models.Exam, error) {
	s.exam = models.Exam{ID: id, Status: status}
	return &s.exam, nil
}

func TestExamController(t *testing.T) {
	svc := &stubExams{}
	ctrl := NewExamController(svc, zerolog.Nop())
	r := gin.New()
	r.Use(as(3, models.RoleFaculty))
	r.GET("/exams", ctrl.List)
	r.POST("/exams", ctrl.Create)
	r.PUT("/exams/:id", ctrl.Update)
	r.PUT("/exams/:id/status", ctrl.UpdateStatus)

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/exams?type=Aptitude&status=Scheduled", nil).Code)
	assert.Equal(t, models.ExamFilter{ExamType: "Aptitude", Status: models.ExamScheduled}, svc.filter)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/exams?status=cancelled", nil).Code)

	exam := map[string]string{
		"date": "2025-03-14", "time": "10:00", "examType": "Aptitude", "venue": "Hall 2",
		"collegeName": "LD College", "departmentName": "CE", "duration": "90 minutes",
	}
	assert.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/exams", exam).Code)

	exam["time"] = "25:00"
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPost, "/exams", exam).Code)
	exam["time"] = "10:00"
	assert.Equal(t, http.StatusConflict, doJSON(r, http.MethodPut, "/exams/1", exam).Code)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPut, "/exams/1/status", map[string]string{"status": "scheduled"}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPut, "/exams/abc/status", map[string]string{"status": "completed"}).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPut, "/exams/4/status", map[string]string{"status": "completed"}).Code)
	assert.Equal(t, models.Exam{ID: 4, Status: models.ExamCompleted}, svc.exam)
}

// stubDrives implements DriveUseCase
type stubDrives struct {
	placed int
}

func (s *stubDrives) List(context.Context, models.DriveStatus) ([]models.PlacementDrive, error) {
	return []models.PlacementDrive{}, nil
}
func (s *stubDrives) Create(context.Context, *dto.CreateDriveRequest, int64) (*models.PlacementDrive, error) {
	return &models.PlacementDrive{ID: 1}, nil
}
func (s *stubDrives) Complete(_ context.Context, id int64, n int) (*models.PlacementDrive, error) {
	s.placed = n
	return &models.PlacementDrive{ID: id, Status: models.DriveCompleted, NoPlacedStudents: &n}, nil
}

func TestDriveController_Complete(t *testing.T) {
	svc := &stubDrives{placed: -1}
	ctrl := NewDriveController(svc, zerolog.Nop())
	r := gin.New()
	r.PUT("/drives/:id/complete", ctrl.Complete)
	r.GET("/drives", ctrl.List)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPut, "/drives/2/complete", map[string]int{}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPut, "/drives/2/complete", map[string]int{"noPlacedStudents": -1}).Code)

	// zero placed is a valid result
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPut, "/drives/2/complete", map[string]int{"noPlacedStudents": 0}).Code)
	assert.Equal(t, 0, svc.placed)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/drives?status=soon", nil).Code)
}

type stubResources struct{}

func (stubResources) List(context.Context) ([]models.Resource, error) { return nil, nil }
func (stubResources) Create(_ context.Context, req *dto.CreateResourceRequest, userID int64) (*models.Resource, error) {
	return &models.Resource{ID: 1, Subject: req.Subject, DriveLink: req.DriveLink, CreatedBy: userID}, nil
}

func TestResourceController_DriveLinkRule(t *testing.T) {
	ctrl := NewResourceController(stubResources{}, zerolog.Nop())
	r := gin.New()
	r.POST("/resources", as(3, models.RoleFaculty), ctrl.Create)

	w := doJSON(r, http.MethodPost, "/resources", map[string]string{"subject": "DSA", "driveLink": "https://dropbox.com/x"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "driveLink", decode(t, w).Error.Field)

	w = doJSON(r, http.MethodPost, "/resources", map[string]string{"subject": "DSA", "driveLink": "https://drive.google.com/drive/folders/abc"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

// stubStudents implements StudentUseCase
type stubStudents struct {
	filter models.StudentFilter
	page   helpers.PageRequest
}

func (s *stubStudents) Directory(_ context.Context, filter models.StudentFilter, page helpers.PageRequest) (*dto.PagedResponse, error) {
	s.filter, s.page = filter, page
	return &dto.PagedResponse{Items: []models.StudentProfile{}, Pagination: helpers.NewPaginationInfo(0, page.Page, page.Size)}, nil
}
func (s *stubStudents) Export(_ context.Context, filter models.StudentFilter, format export.Format, w io.Writer) error {
	s.filter = filter
	return export.Write(w, format, export.Table{Title: "Students", Headers: []string{"Name"}, Rows: [][]string{{"Asha"}}})
}

func TestStudentController(t *testing.T) {
	svc := &stubStudents{}
	ctrl := NewStudentController(svc, zerolog.Nop())
	ctrl.now = func() time.Time { return time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC) }
	r := gin.New()
	r.GET("/students", ctrl.List)
	r.GET("/students/download", ctrl.Download)

	w := doJSON(r, http.MethodGet, "/students?page=2&size=5&batch=2025&department=CE&search=%20asha%20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StudentFilter{Batch: "2025", Department: "CE", Search: "asha"}, svc.filter)
	assert.Equal(t, helpers.PageRequest{Page: 2, Size: 5}, svc.page)

	w = doJSON(r, http.MethodGet, "/students/download?format=csv&college=LD", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="students-20250401.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "LD", svc.filter.College)
	assert.Contains(t, w.Body.String(), "Asha")

	w = doJSON(r, http.MethodGet, "/students/download?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubFeed struct{}

func (stubFeed) Recent(role models.Role) []models.Notification {
	return []models.Notification{{Type: models.NotificationDriveCreated, Title: string(role)}}
}

func TestNotificationController_Recent(t *testing.T) {
	ctrl := NewNotificationController(stubFeed{})
	r := gin.New()
	r.GET("/notifications/recent", as(1, models.RoleStudent), ctrl.Recent)
	r.GET("/anonymous", ctrl.Recent)

	w := doJSON(r, http.MethodGet, "/notifications/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Notification
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "student", got[0].Title)

	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodGet, "/anonymous", nil).Code)
}

type stubDepartments struct{}

func (stubDepartments) List(context.Context) ([]models.Department, error) {
	return []models.Department{{Code: "CSE", Name: "Computer Science and Engineering"}}, nil
}

func TestDepartmentController(t *testing.T) {
	r := gin.New()
	r.GET("/departments", NewDepartmentController(stubDepartments{}).GetAllDepartments)

	w := doJSON(r, http.MethodGet, "/departments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"CSE"`)
}
