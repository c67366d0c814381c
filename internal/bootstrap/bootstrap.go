package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ekinoz/classtrack/internal/app/controllers"
	appMigrations "github.com/ekinoz/classtrack/internal/app/migrations"
	appRepos "github.com/ekinoz/classtrack/internal/app/repositories"
	appRoutes "github.com/ekinoz/classtrack/internal/app/routes"
	appServices "github.com/ekinoz/classtrack/internal/app/services"
	"github.com/ekinoz/classtrack/internal/config"
	"github.com/ekinoz/classtrack/internal/db"
	appMiddleware "github.com/ekinoz/classtrack/internal/middleware"
	pkgAuth "github.com/ekinoz/classtrack/internal/pkg/auth"
	"github.com/ekinoz/classtrack/internal/pkg/filestorage"
	"github.com/ekinoz/classtrack/internal/pkg/helpers"
	"github.com/ekinoz/classtrack/internal/pkg/logger"
	"github.com/ekinoz/classtrack/internal/pkg/summarizer"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	CourseService        appServices.CourseService
	LectureService       appServices.LectureService
	ScheduleService      appServices.ScheduleService
	AttendanceService    appServices.AttendanceService
	SummaryService       appServices.SummaryService
	DashboardService     appServices.DashboardService
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	LectureController    *appControllers.LectureController
	ScheduleController   *appControllers.ScheduleController
	AttendanceController *appControllers.AttendanceController
	DashboardController  *appControllers.DashboardController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	FileStorage          *filestorage.LocalStorage
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	completer := summarizer.NewClient(summarizer.Config{
		BaseURL:     cfg.Summarizer.BaseURL,
		APIKey:      cfg.Summarizer.APIKey,
		Model:       cfg.Summarizer.Model,
		MaxTokens:   cfg.Summarizer.MaxTokens,
		Temperature: cfg.Summarizer.Temperature,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.User, deps.JWTService)
	deps.CourseService = appServices.NewCourseService(deps.Repos.Course, config.DefaultCourseColor)
	deps.LectureService = appServices.NewLectureService(deps.Repos.Lecture, deps.Repos.Attendance)
	deps.ScheduleService = appServices.NewScheduleService(
		deps.Repos.Course, deps.Repos.Lecture, deps.Repos.Attendance, config.DefaultCourseColor)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.Attendance, deps.Repos.Lecture, deps.FileStorage)
	deps.SummaryService = appServices.NewSummaryService(deps.Repos.Attendance, deps.FileStorage, completer)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.Course, deps.Repos.Lecture, deps.Repos.Attendance)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.LectureController = appControllers.NewLectureController(deps.LectureService)
	deps.ScheduleController = appControllers.NewScheduleController(deps.ScheduleService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService, deps.SummaryService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

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

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.LectureController,
		deps.ScheduleController,
		deps.AttendanceController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	return router
}
