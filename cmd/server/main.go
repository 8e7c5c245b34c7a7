package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/MhiretKiros/TTMS-sub002/internal/config"
	"github.com/MhiretKiros/TTMS-sub002/internal/handlers"
	"github.com/MhiretKiros/TTMS-sub002/internal/middleware"
	"github.com/MhiretKiros/TTMS-sub002/internal/repositories/mongodb"
	"github.com/MhiretKiros/TTMS-sub002/internal/services"
	"github.com/MhiretKiros/TTMS-sub002/pkg/cache"
	"github.com/MhiretKiros/TTMS-sub002/pkg/database"
	"github.com/MhiretKiros/TTMS-sub002/pkg/geocode"
	"github.com/MhiretKiros/TTMS-sub002/pkg/logger"
	"github.com/MhiretKiros/TTMS-sub002/pkg/storage"
	"github.com/MhiretKiros/TTMS-sub002/routes"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.App.LogLevel),
		Format:  "json",
		Output:  "stdout",
		AppName: cfg.App.Name,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect to MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	// Run migrations
	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.WithError(err).Fatal("Failed to run migrations")
	}

	// Connect to Redis. The cache is optional; repositories fall back to
	// Mongo-only reads when it is unavailable.
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	// Select storage provider
	storageProvider, err := newStorageProvider(cfg)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage provider")
	}

	// Select geocode provider
	geocoder, err := newGeocodeProvider(cfg)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize geocode provider")
	}

	// Repositories
	var repoCache mongodb.CacheService
	if redisCache != nil {
		repoCache = redisCache
	}
	userRepo := mongodb.NewUserRepository(db.Database)
	maintenanceRepo := mongodb.NewMaintenanceRepository(db.Database, repoCache)
	fuelRepo := mongodb.NewFuelRepository(db.Database, repoCache)
	inspectionRepo := mongodb.NewInspectionRepository(db.Database)
	carRepo := mongodb.NewCarRepository(db.Database, repoCache)
	employeeRepo := mongodb.NewEmployeeRepository(db.Database)
	routeRepo := mongodb.NewRouteRepository(db.Database)

	// Services
	authService := services.NewAuthService(userRepo, cfg, appLogger)
	maintenanceService := services.NewMaintenanceService(db, maintenanceRepo, carRepo, storageProvider, appLogger)
	fuelService := services.NewFuelService(fuelRepo, carRepo, appLogger)
	inspectionService := services.NewInspectionService(inspectionRepo, carRepo, appLogger)
	fleetService := services.NewFleetService(carRepo, employeeRepo, routeRepo, geocoder, redisCache, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	fuelHandler := handlers.NewFuelHandler(fuelService)
	inspectionHandler := handlers.NewInspectionHandler(inspectionService)
	fleetHandler := handlers.NewFleetHandler(fleetService, employeeRepo, routeRepo)

	// Router
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	jwtSecret := cfg.JWT.Secret

	api := router.Group("/api")
	auth := router.Group("/auth")
	{
		routes.SetupAuthRoutes(router.Group(""), jwtSecret, authHandler)
		routes.SetupMaintenanceRoutes(api, jwtSecret, maintenanceHandler)
		routes.SetupFuelRoutes(api, jwtSecret, fuelHandler)
		routes.SetupInspectionRoutes(api, auth, jwtSecret, inspectionHandler)
		routes.SetupFleetRoutes(api, auth, jwtSecret, fleetHandler)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbState := "up"
		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			dbState = "down"
		}
		c.JSON(status, gin.H{
			"status":   "healthy",
			"version":  cfg.App.Version,
			"database": dbState,
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
	appLogger.Info("Server stopped")
}

func newStorageProvider(cfg *config.Config) (storage.StorageProvider, error) {
	switch cfg.Storage.Provider {
	case "aws_s3":
		return storage.NewAWSS3Storage(cfg.Storage.AWS.Region, cfg.Storage.AWS.Bucket, cfg.Storage.AWS.CDNDomain)
	default:
		return storage.NewLocalStorage(cfg.Storage.Local.BasePath, cfg.Storage.Local.BaseURL)
	}
}

func newGeocodeProvider(cfg *config.Config) (geocode.Provider, error) {
	switch cfg.Geocode.Provider {
	case "google":
		return geocode.NewGoogleProvider(cfg.Geocode.GoogleAPIKey)
	default:
		return geocode.NewNominatimProvider(cfg.Geocode.UserAgent), nil
	}
}
