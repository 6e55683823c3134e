package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/placementhub/internal/app/controllers"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/middleware"
	"github.com/yigit/placementhub/internal/pkg/websocket"
)

// Controllers groups every HTTP controller of the API
type Controllers struct {
	Auth         *controllers.AuthController
	Profile      *controllers.ProfileController
	Placement    *controllers.PlacementController
	Chart        *controllers.ChartController
	Exam         *controllers.ExamController
	Drive        *controllers.DriveController
	Resource     *controllers.ResourceController
	Student      *controllers.StudentController
	Feedback     *controllers.FeedbackController
	Department   *controllers.DepartmentController
	Notification *controllers.NotificationController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
	wsHandler *websocket.Handler,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/departments", c.Department.GetAllDepartments)

	auth := v1.Group("/auth")
	{
		// Mail sending and password guessing endpoints are throttled per client IP
		throttled := auth.Group("", limiter.Middleware())
		throttled.POST("/request-otp", c.Auth.RequestOTP)
		throttled.POST("/verify-otp", c.Auth.VerifyOTP)
		throttled.POST("/login", c.Auth.Login)
		throttled.POST("/reset-email", c.Auth.ResetEmail)

		auth.POST("/refresh-token", c.Auth.RefreshToken)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/check-auth", c.Auth.CheckAuth)
	authenticated.POST("/auth/logout", c.Auth.Logout)

	// Profile completion is reachable before the profile exists
	profile := authenticated.Group("/auth/profile")
	{
		student := profile.Group("/student", authMiddleware.RoleRequired(models.RoleStudent), authMiddleware.ActiveAccountRequired())
		student.POST("", c.Profile.CompleteStudent)
		student.GET("", c.Profile.GetStudent)
		student.PUT("", c.Profile.UpdateStudent)

		faculty := profile.Group("/faculty", authMiddleware.RoleRequired(models.RoleFaculty), authMiddleware.ActiveAccountRequired())
		faculty.POST("", c.Profile.CompleteFaculty)
		faculty.GET("", c.Profile.GetFaculty)
		faculty.PUT("", c.Profile.UpdateFaculty)

		company := profile.Group("/company", authMiddleware.RoleRequired(models.RoleCompany), authMiddleware.ActiveAccountRequired())
		company.POST("", c.Profile.CompleteCompany)
		company.GET("", c.Profile.GetCompany)
	}

	// --- Portal content, for users with a completed profile ---
	portal := authenticated.Group("")
	portal.Use(authMiddleware.ProfileRequired())
	{
		portal.GET("/placement-data", c.Placement.List)
		portal.GET("/placement-data/:year", c.Placement.Get)
		portal.GET("/chart-data", c.Chart.List)
		portal.GET("/chart-data/:id", c.Chart.Get)
		portal.GET("/exams", c.Exam.List)
		portal.GET("/drives", c.Drive.List)
		portal.GET("/resources", c.Resource.List)
		portal.GET("/notifications/recent", c.Notification.Recent)
	}

	// Faculty only
	faculty := portal.Group("")
	faculty.Use(authMiddleware.RoleRequired(models.RoleFaculty), authMiddleware.ActiveAccountRequired())
	{
		faculty.POST("/placement-data/:year", c.Placement.Create)
		faculty.PUT("/placement-data/:year", c.Placement.Replace)
		faculty.PUT("/placement-data/:year/departments/:dept", c.Placement.UpdateDepartment)
		faculty.DELETE("/placement-data/:year", c.Placement.Delete)

		faculty.POST("/chart-data", c.Chart.Create)
		faculty.PUT("/chart-data/:id", c.Chart.Update)
		faculty.DELETE("/chart-data/:id", c.Chart.Delete)

		faculty.POST("/exams", c.Exam.Create)
		faculty.PUT("/exams/:id", c.Exam.Update)
		faculty.PUT("/exams/:id/status", c.Exam.UpdateStatus)

		faculty.POST("/drives", c.Drive.Create)
		faculty.PUT("/drives/:id/complete", c.Drive.Complete)

		faculty.POST("/resources", c.Resource.Create)

		faculty.GET("/students", c.Student.List)
		faculty.GET("/students/download", c.Student.Download)

		faculty.GET("/feedback", c.Feedback.List)
	}

	// Student only
	students := portal.Group("")
	students.Use(authMiddleware.RoleRequired(models.RoleStudent), authMiddleware.ActiveAccountRequired())
	{
		students.POST("/feedback", c.Feedback.Create)
	}

	// WebSocket routes live outside /api/v1; browsers authenticate with the session cookie
	router.GET("/ws/notifications", authMiddleware.JWTAuth(), wsHandler.HandleConnection)
}
