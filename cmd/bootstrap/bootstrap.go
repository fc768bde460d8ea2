package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawcare-booking/config"
	deliveryHttp "pawcare-booking/internal/delivery/http"
	"pawcare-booking/internal/delivery/http/handler"
	"pawcare-booking/internal/delivery/http/middleware"
	"pawcare-booking/internal/domain/policy"
	"pawcare-booking/internal/infrastructure/cache"
	"pawcare-booking/internal/infrastructure/database"
	"pawcare-booking/internal/repository"
	"pawcare-booking/internal/service"
	"pawcare-booking/internal/usecase"
	"pawcare-booking/pkg/jwt"
	"pawcare-booking/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Build the change-engine policy up front so a bad fee string fails the
	// boot instead of a booking
	enginePolicy, err := buildPolicy(cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine policy: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, enginePolicy)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// buildPolicy turns the engine config into a policy value. Fee strings are
// parsed strictly; an unparseable fee is a startup error, never a zero.
func buildPolicy(cfg config.EngineConfig) (policy.Policy, error) {
	lastMinuteFee, err := policy.ParsePrice(cfg.LastMinuteFee)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("invalid last-minute fee %q: %w", cfg.LastMinuteFee, err)
	}

	afterHoursFee, err := policy.ParsePrice(cfg.AfterHoursFee)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("invalid after-hours fee %q: %w", cfg.AfterHoursFee, err)
	}

	return policy.Policy{
		BusinessHourStart: cfg.BusinessHourStart,
		BusinessHourEnd:   cfg.BusinessHourEnd,
		MinNotice:         cfg.MinNotice,
		MinShift:          cfg.MinShift,
		LastMinuteWindow:  cfg.LastMinuteWindow,
		LastMinuteFee:     lastMinuteFee,
		AfterHoursFee:     afterHoursFee,
		SlotGranularity:   cfg.SlotGranularity,
		QueuePositionWait: cfg.QueuePositionWait,
	}, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, enginePolicy policy.Policy) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	sitterProfileRepo := repository.NewSitterProfileRepository()
	clientProfileRepo := repository.NewClientProfileRepository()
	bookingRepo := repository.NewBookingRepository()
	waitlistRepo := repository.NewWaitlistRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	availabilityService := service.NewAvailabilityService(db, log, bookingRepo, enginePolicy)
	slotLockService := service.NewSlotLockService(redisClient, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, sitterProfileRepo, clientProfileRepo, jwtService, redisClient)
	waitlistUsecase := usecase.NewWaitlistUsecase(db, log, enginePolicy, waitlistRepo, bookingRepo, userRepo, auditService)
	bookingChangeUsecase := usecase.NewBookingChangeUsecase(db, log, enginePolicy, bookingRepo, availabilityService, slotLockService, auditService, waitlistUsecase)
	availabilityUsecase := usecase.NewSitterAvailabilityUsecase(db, log, sitterProfileRepo, availabilityService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	bookingHandler := handler.NewBookingHandler(bookingChangeUsecase, customValidator)
	waitlistHandler := handler.NewWaitlistHandler(waitlistUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, bookingHandler, waitlistHandler, availabilityHandler, auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
