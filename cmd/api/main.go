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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/lovweb/transcript-studio/pkg/validator"

	"github.com/lovweb/transcript-studio/internal/adapter/handler"
	"github.com/lovweb/transcript-studio/internal/adapter/repository"
	"github.com/lovweb/transcript-studio/internal/infrastructure/cache"
	"github.com/lovweb/transcript-studio/internal/infrastructure/database"
	"github.com/lovweb/transcript-studio/internal/infrastructure/storage"
	"github.com/lovweb/transcript-studio/internal/usecase/auth"
	"github.com/lovweb/transcript-studio/internal/usecase/consolidator"
	"github.com/lovweb/transcript-studio/internal/usecase/transcript"
	"github.com/lovweb/transcript-studio/pkg/config"
	"github.com/lovweb/transcript-studio/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running schema migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping automatic migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	utteranceRepo := repository.NewUtteranceRepository(db)

	// Object storage is optional; uploads still work without retained
	// originals.
	var objectStore transcript.ObjectStore
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		objectStore = minioClient
	} else {
		log.Println("🗄️  Object storage disabled; original files will not be retained")
	}

	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	log.Println("🔐 Initializing services...")
	authService := auth.NewService(userRepo, redisClient, jwtManager)
	transcriptService := transcript.NewService(transcriptRepo, utteranceRepo, objectStore, logger)
	consolidatorService := consolidator.NewService(utteranceRepo, logger)

	log.Println("🚀 Initializing handlers...")
	authHandler := handler.NewAuthHandler(authService, logger)
	transcriptHandler := handler.NewTranscriptHandler(transcriptService, cfg.Server.MaxUploadBytes, logger)
	utteranceHandler := handler.NewUtteranceHandler(consolidatorService, logger)

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, authService, authHandler, transcriptHandler, utteranceHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
