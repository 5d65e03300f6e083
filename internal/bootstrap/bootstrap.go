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
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campusworks/studenttrack/internal/app/controllers"
	appMigrations "github.com/campusworks/studenttrack/internal/app/migrations"
	appRepos "github.com/campusworks/studenttrack/internal/app/repositories"
	appRoutes "github.com/campusworks/studenttrack/internal/app/routes"
	appServices "github.com/campusworks/studenttrack/internal/app/services"
	"github.com/campusworks/studenttrack/internal/config"
	"github.com/campusworks/studenttrack/internal/db"
	"github.com/campusworks/studenttrack/internal/middleware"
	pkgAuth "github.com/campusworks/studenttrack/internal/pkg/auth"
	"github.com/campusworks/studenttrack/internal/pkg/filestorage"
	"github.com/campusworks/studenttrack/internal/pkg/helpers"
	"github.com/campusworks/studenttrack/internal/pkg/logger"
	"github.com/campusworks/studenttrack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService     appServices.StudentService
	DocumentService    appServices.DocumentService
	AuthService        appServices.AuthService
	AuthController     *appControllers.AuthController
	StudentController  *appControllers.StudentController
	DocumentController *appControllers.DocumentController
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	FileStorage        *filestorage.LocalStorage
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

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
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
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
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 30*time.Minute),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	txRunner := db.FromPool(dbPool)
	deps.StudentService = appServices.NewStudentService(
		txRunner,
		deps.Repos.StudentRepository,
		deps.Repos.AcademicDetailRepository,
		deps.Repos.DocumentRepository,
		deps.FileStorage,
		lgr,
	)
	deps.DocumentService = appServices.NewDocumentService(
		deps.Repos.StudentRepository,
		deps.Repos.DocumentRepository,
		deps.FileStorage,
		lgr,
	)
	deps.AuthService = appServices.NewAuthService(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.DocumentController = appControllers.NewDocumentController(deps.DocumentService)

	return deps, nil
}

// SeedDefaultData populates the database with sample students on first start.
// Seed failures are logged but do not stop the application.
func SeedDefaultData(dbPool *pgxpool.Pool, deps *Dependencies, lgr zerolog.Logger) {
	if err := seed.CreateDefaultData(context.Background(), dbPool, deps.StudentService, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
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
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ErrorHandlerMiddleware())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.DocumentController,
		deps.JWTService,
	)

	return router
}
