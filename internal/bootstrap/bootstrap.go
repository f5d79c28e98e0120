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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/emrekaya/clubsphere/docs" // Import generated swagger docs
	appControllers "github.com/emrekaya/clubsphere/internal/app/controllers"
	appMigrations "github.com/emrekaya/clubsphere/internal/app/migrations"
	appRepos "github.com/emrekaya/clubsphere/internal/app/repositories"
	appRoutes "github.com/emrekaya/clubsphere/internal/app/routes"
	appServices "github.com/emrekaya/clubsphere/internal/app/services"
	"github.com/emrekaya/clubsphere/internal/config"
	"github.com/emrekaya/clubsphere/internal/db"
	appMiddleware "github.com/emrekaya/clubsphere/internal/middleware"
	"github.com/emrekaya/clubsphere/internal/monitoring"
	pkgAuth "github.com/emrekaya/clubsphere/internal/pkg/auth"
	"github.com/emrekaya/clubsphere/internal/pkg/helpers"
	"github.com/emrekaya/clubsphere/internal/pkg/logger"
	"github.com/emrekaya/clubsphere/internal/pkg/websocket"
	"github.com/emrekaya/clubsphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	MemberService       appServices.MemberService
	EventService        appServices.EventService
	RSVPService         appServices.RSVPService
	NotificationService appServices.NotificationService
	ChatService         appServices.ChatService
	AdminService        appServices.AdminService
	Reconciler          *appServices.Reconciler

	AuthController         *appControllers.AuthController
	EventController        *appControllers.EventController
	RegistrationController *appControllers.RegistrationController
	NotificationController *appControllers.NotificationController
	MemberController       *appControllers.MemberController
	ChatController         *appControllers.ChatController
	AdminController        *appControllers.AdminController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService

	Hub              *websocket.Hub
	WebSocketHandler *websocket.Handler
	MessageHandler   *websocket.MessageHandler
	Monitor          *monitoring.Monitor

	Logger zerolog.Logger
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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool, cfg.RSVP.PreviewSize)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Live update infrastructure
	deps.Hub = websocket.NewHub(lgr)
	deps.WebSocketHandler = websocket.NewHandler(deps.Hub, deps.Repos.RegistrationRepository, lgr)
	deps.MessageHandler = websocket.NewMessageHandler(deps.Repos.ChatRepository, deps.Hub, lgr)
	deps.Monitor = monitoring.NewMonitor()

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.MemberRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.MemberService = appServices.NewMemberService(deps.Repos.MemberRepository, lgr)
	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.NotificationRepository,
		deps.Repos.MemberRepository,
		lgr,
	)
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.MemberRepository,
		deps.NotificationService,
		lgr,
	)
	deps.RSVPService = appServices.NewRSVPService(
		deps.Repos.RegistrationRepository,
		deps.Repos.EventRepository,
		deps.Hub,
		lgr,
	)
	deps.ChatService = appServices.NewChatService(
		deps.Repos.ChatRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.MemberRepository,
		deps.Hub,
		deps.NotificationService,
		lgr,
	)
	deps.AdminService = appServices.NewAdminService(
		deps.Repos.MemberRepository,
		deps.Repos.EventRepository,
		deps.Repos.RegistrationRepository,
		lgr,
	)
	deps.Reconciler = appServices.NewReconciler(
		deps.Repos.EventRepository,
		deps.Repos.NotificationRepository,
		helpers.ParseDuration(cfg.RSVP.ReconcileInterval, 5*time.Minute),
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Initialize controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.MemberService, lgr)
	deps.EventController = appControllers.NewEventController(deps.EventService, lgr)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.RSVPService, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService, lgr)
	deps.MemberController = appControllers.NewMemberController(deps.MemberService, lgr)
	deps.ChatController = appControllers.NewChatController(deps.ChatService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, deps.Reconciler, lgr)

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

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.EventController,
		deps.RegistrationController,
		deps.NotificationController,
		deps.MemberController,
		deps.ChatController,
		deps.AdminController,
		deps.WebSocketHandler,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
