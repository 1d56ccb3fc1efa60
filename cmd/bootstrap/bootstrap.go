package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-portal/config"
	deliveryHttp "clinic-portal/internal/delivery/http"
	"clinic-portal/internal/delivery/http/handler"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/infrastructure/cache"
	"clinic-portal/internal/infrastructure/database"
	"clinic-portal/internal/repository"
	"clinic-portal/internal/service"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/validator"

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

	// Exposed for the management commands.
	AuthUsecase   usecase.AuthUsecase
	DoctorUsecase usecase.DoctorUsecase
}

// LoadConfig sets up logging and reads the configuration. Commands that do
// not need the full application stop here.
func LoadConfig() (*config.Config, error) {
	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.App.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Info("Configuration loaded successfully")

	return cfg, nil
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg}

	if cfg.App.AutoMigrate {
		if err := Migrate(cfg, func(m *database.Migrator) error { return m.Up() }); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		logrus.Info("Migrations applied successfully")
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.initialize()

	return app, nil
}

// Migrate opens the embedded migrations, runs fn and closes the migrator.
func Migrate(cfg *config.Config, fn func(m *database.Migrator) error) error {
	migrator, err := database.NewMigrator(cfg.DB)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(migrator)
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initialize wires repositories, services, usecases and the HTTP server.
func (app *App) initialize() {
	cfg, db := app.Config, app.DB
	log := logrus.StandardLogger()

	// The clinic's calendar day decides what "today" and "in the past" mean.
	location := cfg.App.Location()
	now := func() time.Time { return time.Now().In(location) }

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator(now)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	serviceRepo := repository.NewServiceRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	testimonialRepo := repository.NewTestimonialRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	sessionStore := service.NewRedisSessionStore(app.RedisClient, log, cfg.Session.TTL)

	// Initialize usecases
	homeUsecase := usecase.NewHomeUsecase(db, log, serviceRepo, doctorRepo, testimonialRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, patientRepo, auditService, now)
	testimonialUsecase := usecase.NewTestimonialUsecase(db, log, testimonialRepo, doctorRepo, auditService)
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, doctorRepo, sessionStore, auditService, jwtService)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, doctorRepo, appointmentRepo)
	medicalRecordUsecase := usecase.NewMedicalRecordUsecase(db, log, medicalRecordRepo, appointmentRepo, serviceRepo, auditService, now)
	serviceUsecase := usecase.NewServiceUsecase(db, log, serviceRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, sessionStore, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	app.AuthUsecase = authUsecase
	app.DoctorUsecase = doctorUsecase

	// Initialize handlers
	homeHandler := handler.NewHomeHandler(homeUsecase)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	testimonialHandler := handler.NewTestimonialHandler(testimonialUsecase, customValidator)
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, cfg.Session)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	medicalRecordHandler := handler.NewMedicalRecordHandler(medicalRecordUsecase, customValidator)
	serviceHandler := handler.NewServiceHandler(serviceUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionStore, cfg.Session.CookieName, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		homeHandler,
		appointmentHandler,
		testimonialHandler,
		authHandler,
		dashboardHandler,
		medicalRecordHandler,
		serviceHandler,
		doctorHandler,
		patientHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s, timezone: %s", app.Config.App.Env, app.Config.App.Timezone)
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
