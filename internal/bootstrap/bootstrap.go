package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/placementhub/internal/app/auth"
	appControllers "github.com/yigit/placementhub/internal/app/controllers"
	appMigrations "github.com/yigit/placementhub/internal/app/migrations"
	appRepos "github.com/yigit/placementhub/internal/app/repositories"
	appRoutes "github.com/yigit/placementhub/internal/app/routes"
	appServices "github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/config"
	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/jobs"
	appMiddleware "github.com/yigit/placementhub/internal/middleware"
	pkgAuth "github.com/yigit/placementhub/internal/pkg/auth"
	"github.com/yigit/placementhub/internal/pkg/email"
	"github.com/yigit/placementhub/internal/pkg/helpers"
	"github.com/yigit/placementhub/internal/pkg/logger"
	"github.com/yigit/placementhub/internal/pkg/websocket"
	"github.com/yigit/placementhub/internal/seed"
)

// recentNotifications is how many broadcasts are kept for late subscribers
const recentNotifications = 50

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService

	AuthService       *appServices.AuthService
	ProfileService    *appServices.ProfileService
	PlacementService  *appServices.PlacementService
	ChartService      *appServices.ChartService
	ExamService       *appServices.ExamService
	DriveService      *appServices.DriveService
	ResourceService   *appServices.ResourceService
	StudentService    *appServices.StudentService
	FeedbackService   *appServices.FeedbackService
	DepartmentService *appServices.DepartmentService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	RateLimiter    *appMiddleware.RateLimiter
	Metrics        *appMiddleware.Metrics

	Hub            *websocket.Hub
	MessageHandler *websocket.MessageHandler
	WSHandler      *websocket.Handler
	Cleanup        *jobs.Cleanup

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.Migrate(ctx, appMigrations.Files()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// SeedDefaults creates the department catalogue and the configured faculty account.
// Failures are logged and do not stop the startup.
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	admin := seed.FacultyAccount{
		Email:    cfg.Seed.FacultyEmail,
		Password: cfg.Seed.FacultyPassword,
		Name:     cfg.Seed.FacultyName,
	}
	if err := seed.CreateDefaultData(ctx, deps.DepartmentService, deps.Repos.UserRepository, admin, deps.Logger); err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.UserRepository)

	// Realtime notifications
	deps.Hub = websocket.NewHub(logger.Component("websocket"))
	deps.MessageHandler = websocket.NewMessageHandler(deps.Hub, recentNotifications, lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, cfg.Server.CORSOrigins, logger.Component("websocket"))

	mailer := email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, logger.Component("email"))

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.OTPRepository,
		deps.Repos.PasswordResetTokenRepository,
		deps.JWTService,
		mailer,
		appServices.AuthSettings{
			OTPLength:      cfg.OTP.Length,
			OTPTTL:         helpers.ParseDuration(cfg.OTP.TTL, 10*time.Minute),
			OTPMaxAttempts: cfg.OTP.MaxAttempts,
			PublicURL:      cfg.Server.PublicURL,
		},
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(deps.Repos.StudentRepository, deps.Repos.ProfileRepository, lgr)
	deps.PlacementService = appServices.NewPlacementService(deps.Repos.PlacementRepository, lgr)
	deps.ChartService = appServices.NewChartService(deps.Repos.ChartRepository, lgr)
	deps.ExamService = appServices.NewExamService(deps.Repos.ExamRepository, deps.Hub, lgr)
	deps.DriveService = appServices.NewDriveService(deps.Repos.DriveRepository, deps.Hub, lgr)
	deps.ResourceService = appServices.NewResourceService(deps.Repos.ResourceRepository, deps.Hub, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.FeedbackService = appServices.NewFeedbackService(deps.Repos.FeedbackRepository, lgr)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService, cfg.Cookie.Name)
	deps.RateLimiter = appMiddleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	deps.Metrics = appMiddleware.NewMetrics()
	deps.Metrics.Registry().MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "placementhub",
		Name:      "websocket_clients",
		Help:      "Connected notification subscribers.",
	}, func() float64 { return float64(deps.Hub.ClientsCount("")) }))

	deps.Cleanup = jobs.NewCleanup(cfg.Cron.CleanupSpec, logger.Component("jobs")).
		Expire("refreshTokens", jobs.ExpirerFunc(deps.Repos.TokenRepository.CleanupExpiredTokens)).
		Expire("otpChallenges", deps.Repos.OTPRepository).
		Expire("resetTokens", deps.Repos.PasswordResetTokenRepository).
		Sweep("rateLimitVisitors", deps.RateLimiter)

	cookie := appControllers.CookieSettings{
		Name:     deps.AuthMiddleware.CookieName(),
		Domain:   cfg.Cookie.Domain,
		Secure:   cfg.Cookie.Secure,
		SameSite: appControllers.ParseSameSite(cfg.Cookie.SameSite),
	}

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService, cookie, lgr),
		Profile:      appControllers.NewProfileController(deps.ProfileService, deps.AuthService, cookie, lgr),
		Placement:    appControllers.NewPlacementController(deps.PlacementService, lgr),
		Chart:        appControllers.NewChartController(deps.ChartService, lgr),
		Exam:         appControllers.NewExamController(deps.ExamService, lgr),
		Drive:        appControllers.NewDriveController(deps.DriveService, lgr),
		Resource:     appControllers.NewResourceController(deps.ResourceService, lgr),
		Student:      appControllers.NewStudentController(deps.StudentService, lgr),
		Feedback:     appControllers.NewFeedbackController(deps.FeedbackService, lgr),
		Department:   appControllers.NewDepartmentController(deps.DepartmentService),
		Notification: appControllers.NewNotificationController(deps.MessageHandler),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(lgr),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.Server.CORSOrigins),
		deps.Metrics.Middleware(),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.RateLimiter, deps.WSHandler)

	router.GET("/metrics", deps.Metrics.Handler())

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
