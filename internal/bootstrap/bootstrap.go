package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/steampunk99/school-locator/internal/app/controllers"
	appMigrations "github.com/steampunk99/school-locator/internal/app/migrations"
	appRepos "github.com/steampunk99/school-locator/internal/app/repositories"
	appRoutes "github.com/steampunk99/school-locator/internal/app/routes"
	appServices "github.com/steampunk99/school-locator/internal/app/services"
	"github.com/steampunk99/school-locator/internal/config"
	"github.com/steampunk99/school-locator/internal/db"
	appMiddleware "github.com/steampunk99/school-locator/internal/middleware"
	pkgAuth "github.com/steampunk99/school-locator/internal/pkg/auth"
	"github.com/steampunk99/school-locator/internal/pkg/email"
	"github.com/steampunk99/school-locator/internal/pkg/filestorage"
	"github.com/steampunk99/school-locator/internal/pkg/helpers"
	"github.com/steampunk99/school-locator/internal/pkg/logger"
	"github.com/steampunk99/school-locator/internal/pkg/payments"
	"github.com/steampunk99/school-locator/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           *appServices.AuthService
	SchoolService         *appServices.SchoolService
	ApplicationService    *appServices.ApplicationService
	DashboardService      *appServices.DashboardService
	DirectoryService      *appServices.DirectoryService
	AuthController        *appControllers.AuthController
	SchoolController      *appControllers.SchoolController
	ApplicationController *appControllers.ApplicationController
	DashboardController   *appControllers.DashboardController
	DirectoryController   *appControllers.DirectoryController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	EmailService          email.EmailService
	PaymentRegistry       *payments.Registry
	FileStorage           *filestorage.LocalStorage
	Logger                zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
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

	migrationsDir := filepath.Join("internal", "app", "migrations")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failures are logged but do not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage serves uploads from the static /uploads endpoint
	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	fileStorageBaseURL := baseURL + "/uploads"
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   baseURL,
	}, lgr)

	deps.PaymentRegistry = buildPaymentRegistry(cfg, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.SchoolService = appServices.NewSchoolService(deps.Repos.SchoolRepository, deps.FileStorage, lgr)
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.ApplicationRepository,
		deps.Repos.SchoolRepository,
		deps.Repos.UserRepository,
		deps.Repos.StaffRepository,
		deps.EmailService,
		deps.PaymentRegistry,
		lgr,
	)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos.DashboardRepository, lgr)
	deps.DirectoryService = appServices.NewDirectoryService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.StaffRepository,
		deps.Repos.FeeRepository,
		deps.Repos.ProgramRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.SchoolController = appControllers.NewSchoolController(deps.SchoolService, lgr)
	deps.ApplicationController = appControllers.NewApplicationController(deps.ApplicationService, lgr)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService, lgr)
	deps.DirectoryController = appControllers.NewDirectoryController(deps.DirectoryService, lgr)

	return deps, nil
}

// buildPaymentRegistry wires the mobile money providers. When payments are
// disabled the registry gets simulated providers so the application flow
// stays usable in development.
func buildPaymentRegistry(cfg *config.Config, lgr zerolog.Logger) *payments.Registry {
	if !cfg.Payments.Enabled {
		lgr.Warn().Msg("Payments disabled, using simulated providers")
		return payments.NewRegistry(
			payments.NewSimulatedProvider("MTN-Uganda", lgr),
			payments.NewSimulatedProvider("Airtel-Uganda", lgr),
		)
	}

	timeout := helpers.ParseDuration(cfg.Payments.RequestTimeout, 30*time.Second)
	return payments.NewRegistry(
		payments.NewMTNProvider(cfg.Payments.MTNBaseURL, cfg.Payments.MTNAPIKey, timeout, lgr),
		payments.NewAirtelProvider(cfg.Payments.AirtelBaseURL, cfg.Payments.AirtelAPIKey, timeout, lgr),
	)
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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Serve uploaded files (logos, gallery images)
	router.Static("/uploads", cfg.Server.StoragePath)

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.SchoolController,
		deps.ApplicationController,
		deps.DashboardController,
		deps.DirectoryController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
