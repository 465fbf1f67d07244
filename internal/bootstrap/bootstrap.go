package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/hallsphere/internal/app/controllers"
	appMigrations "github.com/yigit/hallsphere/internal/app/migrations"
	appRepos "github.com/yigit/hallsphere/internal/app/repositories"
	appRoutes "github.com/yigit/hallsphere/internal/app/routes"
	appServices "github.com/yigit/hallsphere/internal/app/services"
	"github.com/yigit/hallsphere/internal/config"
	"github.com/yigit/hallsphere/internal/db"
	appMiddleware "github.com/yigit/hallsphere/internal/middleware"
	pkgAuth "github.com/yigit/hallsphere/internal/pkg/auth"
	"github.com/yigit/hallsphere/internal/pkg/helpers"
	"github.com/yigit/hallsphere/internal/pkg/logger"
	"github.com/yigit/hallsphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService      appServices.AuthService
	ExpiryService    appServices.ExpiryService
	ExtensionService appServices.ExtensionService
	StudentService   appServices.StudentService
	ProvostService   appServices.ProvostService
	HallService      appServices.HallService
	ComplaintService appServices.ComplaintService
	NoticeService    appServices.NoticeService
	ClearanceService appServices.ClearanceService
	StatsService     appServices.StatsService

	AuthController      *appControllers.AuthController
	ExtensionController *appControllers.ExtensionController
	StudentController   *appControllers.StudentController
	ProvostController   *appControllers.ProvostController
	HallController      *appControllers.HallController
	ComplaintController *appControllers.ComplaintController
	NoticeController    *appControllers.NoticeController
	ClearanceController *appControllers.ClearanceController
	StatsController     *appControllers.StatsController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
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
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	// Services. The expiry engine sits underneath the extension workflow:
	// every approved record funnels through it.
	deps.ExpiryService = appServices.NewExpiryService(deps.Repos.Students, deps.Repos.Extensions)
	deps.ExtensionService = appServices.NewExtensionService(
		deps.Repos.Extensions,
		deps.Repos.Students,
		deps.Repos.Students,
		deps.ExpiryService,
	)
	deps.AuthService = appServices.NewAuthService(
		database,
		deps.Repos.Users,
		deps.Repos.Students,
		deps.Repos.Halls,
		deps.Repos.Rooms,
		deps.JWTService,
	)
	deps.StudentService = appServices.NewStudentService(deps.Repos.Users, deps.Repos.Students, deps.Repos.Halls, deps.Repos.Rooms)
	deps.ProvostService = appServices.NewProvostService(deps.Repos.Users, deps.Repos.Halls)
	deps.HallService = appServices.NewHallService(deps.Repos.Halls, deps.Repos.Rooms)
	deps.ComplaintService = appServices.NewComplaintService(deps.Repos.Complaints)
	deps.NoticeService = appServices.NewNoticeService(deps.Repos.Notices)
	deps.ClearanceService = appServices.NewClearanceService(
		deps.Repos.Clearances,
		deps.Repos.Students,
		deps.Repos.Users,
		deps.Repos.Halls,
		deps.Repos.Rooms,
	)
	deps.StatsService = appServices.NewStatsService(
		deps.Repos.Users,
		deps.Repos.Halls,
		deps.Repos.Complaints,
		deps.Repos.Notices,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.Users)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ExtensionController = appControllers.NewExtensionController(deps.ExtensionService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.ProvostController = appControllers.NewProvostController(deps.ProvostService, lgr)
	deps.HallController = appControllers.NewHallController(deps.HallService, lgr)
	deps.ComplaintController = appControllers.NewComplaintController(deps.ComplaintService, lgr)
	deps.NoticeController = appControllers.NewNoticeController(deps.NoticeService, lgr)
	deps.ClearanceController = appControllers.NewClearanceController(deps.ClearanceService, lgr)
	deps.StatsController = appControllers.NewStatsController(deps.StatsService, lgr)

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
		deps.ExtensionController,
		deps.StudentController,
		deps.ProvostController,
		deps.HallController,
		deps.ComplaintController,
		deps.NoticeController,
		deps.ClearanceController,
		deps.StatsController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
