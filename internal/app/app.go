package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/cache"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/database"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/routes"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/storage"
	"jobportal_backend/internal/validator"
	"jobportal_backend/internal/workers"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// multipartOverhead - запас на поля формы и границы multipart сверх upload.max_size
const multipartOverhead = 1 << 20

// Deps - внешние зависимости. Незаданные поля создаются из конфига.
type Deps struct {
	Storage     storage.Storage
	EmailSender email.Sender
	Cache       *cache.Cache
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(database.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	homeCache, err := cache.New(ctx, cfg.Cache.TTL)
	if err != nil {
		logger.Fatal("Failed to initialize cache", "error", err)
	}
	defer homeCache.Close()

	ginRouter, serviceContainer := SetupRouter(cfg, gormDB, Deps{Cache: homeCache})

	jobWorker := workers.NewJobWorker(gormDB, repositories.NewJobRepository(), repositories.NewRefreshTokenRepository(), cfg.Worker.Interval)
	jobWorker.OnDeactivated(serviceContainer.BrowseService.InvalidateHome)
	jobWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
}

// SetupRouter собирает сервисы, хэндлеры и gin.Engine
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, deps Deps) (*gin.Engine, *services.ServiceContainer) {
	if deps.Storage == nil {
		storageInstance, err := storage.NewStorage(storage.Config{
			Type:       cfg.Storage.Type,
			BasePath:   cfg.Storage.BasePath,
			BaseURL:    cfg.Storage.BaseURL,
			Bucket:     cfg.Storage.Bucket,
			Region:     cfg.Storage.Region,
			AccessKey:  cfg.Storage.AccessKey,
			SecretKey:  cfg.Storage.SecretKey,
			Endpoint:   cfg.Storage.Endpoint,
			PublicRead: cfg.Storage.PublicRead,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", "error", err)
		}
		deps.Storage = storageInstance
		logger.Info("Storage initialized", "type", cfg.Storage.Type)
	}

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, deps)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer, deps.Storage)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Маршруты
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, serviceContainer
}

func initializeServices(cfg *config.Config, deps Deps) *services.ServiceContainer {
	notifier := initializeNotifier(cfg, deps.EmailSender)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	profileRepo := repositories.NewProfileRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	savedJobRepo := repositories.NewSavedJobRepository()

	// --- Инициализация сервисов ---
	uploadService := services.NewUploadService(deps.Storage, &services.UploadConfig{
		MaxFileSize: cfg.Upload.MaxSize,
		AllowedTypes: map[services.UploadKind][]string{
			services.UploadKindResume: cfg.Upload.AllowedResumeTypes,
			services.UploadKindLogo:   cfg.Upload.AllowedLogoTypes,
		},
	})
	authService := services.NewAuthService(userRepo, profileRepo, refreshTokenRepo, tokens, notifier,
		time.Duration(cfg.JWT.RefreshTTL)*time.Hour)
	profileService := services.NewProfileService(profileRepo, uploadService)
	dashboardService := services.NewDashboardService(profileService, jobRepo, applicationRepo, savedJobRepo)
	browseService := services.NewBrowseService(jobRepo, profileRepo, deps.Cache)
	jobService := services.NewJobService(profileService, jobRepo, applicationRepo, savedJobRepo)
	jobService.OnChange(browseService.InvalidateHome)
	applicationService := services.NewApplicationService(profileService, applicationRepo, jobRepo, notifier)
	savedJobService := services.NewSavedJobService(profileService, savedJobRepo, jobRepo)

	return &services.ServiceContainer{
		AuthService:        authService,
		ProfileService:     profileService,
		DashboardService:   dashboardService,
		JobService:         jobService,
		ApplicationService: applicationService,
		SavedJobService:    savedJobService,
		BrowseService:      browseService,
		UploadService:      uploadService,
		Tokens:             tokens,
	}
}

// initializeNotifier - SMTP, если email.enabled, иначе письма только логируются
func initializeNotifier(cfg *config.Config, sender email.Sender) *email.Notifier {
	if sender == nil {
		if cfg.Email.Enabled {
			smtp, err := email.NewGomailSender(email.Config{
				Host:      cfg.Email.SMTPHost,
				Port:      cfg.Email.SMTPPort,
				Username:  cfg.Email.SMTPUsername,
				Password:  cfg.Email.SMTPPassword,
				FromEmail: cfg.Email.FromEmail,
				FromName:  cfg.Email.FromName,
			})
			if err != nil {
				logger.Fatal("Failed to initialize SMTP sender", "error", err)
			}
			sender = smtp
		} else {
			logger.Warn("Email sending disabled, using mock sender")
			sender = email.NewMockSender()
		}
	}

	templates, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to parse email templates", "error", err)
	}
	return email.NewNotifier(sender, templates, cfg.Email.SiteURL)
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, cfg.Upload.MaxSize+multipartOverhead)
	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, services.AuthService, services.Tokens, limiter),
		CompanyHandler: handlers.NewCompanyHandler(baseHandler, services.Tokens,
			services.ProfileService, services.DashboardService, services.JobService, services.ApplicationService),
		SeekerHandler: handlers.NewSeekerHandler(baseHandler, services.Tokens,
			services.ProfileService, services.DashboardService, services.ApplicationService, services.SavedJobService),
		BrowseHandler: handlers.NewBrowseHandler(baseHandler, services.BrowseService),
		FileHandler:   handlers.NewFileHandler(baseHandler, storageInstance),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxSize + multipartOverhead
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
