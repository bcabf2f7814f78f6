package app

import (
	"fmt"

	"casos_backend/database"
	"casos_backend/internal/auth"
	"casos_backend/internal/config"
	"casos_backend/internal/email"
	"casos_backend/internal/handlers"
	"casos_backend/internal/logger"
	"casos_backend/internal/middleware"
	"casos_backend/internal/routes"
	"casos_backend/internal/services"
	"casos_backend/internal/storage"
	"casos_backend/internal/validator"
	"casos_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate schema", "error", err)
		}
	}

	ginRouter, err := SetupRouter(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to build router", "error", err)
	}

	address := cfg.Address()
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает сервисы, хэндлеры и маршруты поверх готового пула
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, error) {
	apperrors.SetDebug(!cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     "local",
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokens: %w", err)
	}

	// 1. Сервисы
	serviceContainer := initializeServices(cfg, tokens, storageInstance)

	// 2. Хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer)

	// 3. Gin
	ginRouter := initializeGinRouter(gormDB)

	// 4. Маршруты
	routes.RegisterRoutes(ginRouter, appHandlers,
		middleware.AuthMiddleware(serviceContainer.AuthService),
		routes.StaticConfig{URLPrefix: cfg.Storage.BaseURL, Dir: cfg.Storage.BasePath},
	)

	return ginRouter, nil
}

func initializeServices(cfg *config.Config, tokens *auth.TokenManager, storageInstance storage.Storage) *services.ServiceContainer {
	return services.NewServiceContainer(services.Dependencies{
		Tokens:        tokens,
		Storage:       storageInstance,
		EmailProvider: newEmailProvider(cfg),
		Upload: services.UploadConfig{
			MaxFileSize: cfg.Upload.MaxSize,
			MaxFiles:    cfg.Upload.MaxFiles,
		},
	})
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host is not set, emails will only be logged")
		return &LogEmailProvider{}
	}

	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, services.AuthService),
		CatalogHandler:     handlers.NewCatalogHandler(baseHandler, services.CatalogService),
		CasoHandler:        handlers.NewCasoHandler(baseHandler, services.CasoService),
		SeguimientoHandler: handlers.NewSeguimientoHandler(baseHandler, services.SeguimientoService),
		AdjuntoHandler: handlers.NewAdjuntoHandler(baseHandler, services.AdjuntoService, handlers.UploadLimits{
			MaxFileSize: cfg.Upload.MaxSize,
			MaxFiles:    cfg.Upload.MaxFiles,
		}),
		EmailHandler: handlers.NewEmailHandler(baseHandler, services.EmailService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
