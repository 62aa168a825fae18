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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/affan/clubsphere/internal/app/auth"
	appControllers "github.com/affan/clubsphere/internal/app/controllers"
	appMigrations "github.com/affan/clubsphere/internal/app/migrations"
	appRepos "github.com/affan/clubsphere/internal/app/repositories"
	appRoutes "github.com/affan/clubsphere/internal/app/routes"
	appServices "github.com/affan/clubsphere/internal/app/services"
	"github.com/affan/clubsphere/internal/config"
	"github.com/affan/clubsphere/internal/db"
	appMiddleware "github.com/affan/clubsphere/internal/middleware"
	pkgAuth "github.com/affan/clubsphere/internal/pkg/auth"
	"github.com/affan/clubsphere/internal/pkg/helpers"
	"github.com/affan/clubsphere/internal/pkg/logger"
	"github.com/affan/clubsphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	ClubService            appServices.ClubService
	EventService           appServices.EventService
	AnnouncementService    appServices.AnnouncementService
	AuthController         *appControllers.AuthController
	ClubController         *appControllers.ClubController
	EventController        *appControllers.EventController
	AnnouncementController *appControllers.AnnouncementController
	AdminController        *appControllers.AdminController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	AuthzService           *appAuth.AuthorizationService
	Logger                 zerolog.Logger
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
	lgr.Info().Msg("Database connection established")

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
	lgr.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// The server still starts; a missing admin only blocks review ops.
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.ClubMemberRepository)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.ProfileRepository,
		deps.JWTService,
		lgr,
	)

	deps.ClubService = appServices.NewClubService(
		deps.Repos.ClubRepository,
		deps.Repos.ClubMemberRepository,
		deps.Repos.EventRepository,
		deps.AuthzService,
		lgr,
	)

	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.EventParticipantRepository,
		deps.Repos.ClubRepository,
		deps.AuthzService,
		lgr,
	)

	deps.AnnouncementService = appServices.NewAnnouncementService(
		deps.Repos.AnnouncementRepository,
		deps.Repos.ClubRepository,
		deps.Repos.ClubRepository,
		deps.Repos.EventRepository,
		deps.Repos.ProfileRepository,
		deps.AuthzService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ClubController = appControllers.NewClubController(deps.ClubService)
	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.AnnouncementService)
	deps.AdminController = appControllers.NewAdminController(deps.ClubService, deps.EventService)

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

	appMiddleware.RegisterValidators()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ClubController,
		deps.EventController,
		deps.AnnouncementController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
