package app

import (
	"fmt"
	"time"

	"gigconnect/internal/auth"
	"gigconnect/internal/config"
	"gigconnect/internal/handlers"
	"gigconnect/internal/logger"
	"gigconnect/internal/middleware"
	"gigconnect/internal/models"
	"gigconnect/internal/repositories"
	"gigconnect/internal/routes"
	"gigconnect/internal/services"
	"gigconnect/internal/storage"
	"gigconnect/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Run wires the whole application together and blocks serving HTTP.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	log := logger.GetLogger()

	auth.Init(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	log.Info("Database connection established")

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("Database migration completed")

	// Expired refresh tokens accumulate between restarts; sweep them
	// once on boot.
	if err := repositories.NewUserRepository().CleanExpiredRefreshTokens(db); err != nil {
		log.Warn("Failed to clean expired refresh tokens", "error", err)
	}

	router, err := SetupRouter(db, cfg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting server", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter builds the gin engine with all middleware, services and
// routes attached. The test harness calls this directly with its own
// database handle.
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	serviceContainer := initializeServices(store, cfg)
	appHandlers := initializeHandlers(serviceContainer, store)

	router := initializeGinRouter(db, cfg)
	routes.RegisterRoutes(router, appHandlers)

	return router, nil
}

func initializeServices(store storage.Storage, cfg *config.Config) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	gigRepo := repositories.NewGigRepository()

	limits := services.UploadLimits{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	}

	return &services.ServiceContainer{
		AuthService:    services.NewAuthService(userRepo, profileRepo),
		GigService:     services.NewGigService(gigRepo),
		ProfileService: services.NewProfileService(profileRepo, store, limits),
	}
}

func initializeHandlers(sc *services.ServiceContainer, store storage.Storage) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		Auth:    handlers.NewAuthHandler(base, sc.AuthService),
		Gig:     handlers.NewGigHandler(base, sc.GigService),
		Profile: handlers.NewProfileHandler(base, sc.ProfileService),
		File:    handlers.NewFileHandler(base, store),
	}
}

func initializeGinRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	return router
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.Server.Env != "production" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	return gorm.Open(postgres.Open(cfg.Database.DSN), gormConfig)
}

// AutoMigrate creates or updates the schema. The test harness calls it
// against its own database.
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4 backs the primary key defaults.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Gig{},
		&models.RefreshToken{},
	)
}
