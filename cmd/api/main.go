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

	pkgvalidator "github.com/campaign-scribe/campaign-scribe/pkg/validator"

	"github.com/campaign-scribe/campaign-scribe/internal/adapter/handler"
	"github.com/campaign-scribe/campaign-scribe/internal/adapter/repository"
	"github.com/campaign-scribe/campaign-scribe/internal/infrastructure/cache"
	"github.com/campaign-scribe/campaign-scribe/internal/infrastructure/database"
	"github.com/campaign-scribe/campaign-scribe/internal/infrastructure/storage"
	campaignuse "github.com/campaign-scribe/campaign-scribe/internal/usecase/campaign"
	sessionuse "github.com/campaign-scribe/campaign-scribe/internal/usecase/session"
	summaryuse "github.com/campaign-scribe/campaign-scribe/internal/usecase/summary"
	transcriptionuse "github.com/campaign-scribe/campaign-scribe/internal/usecase/transcription"
	pkgai "github.com/campaign-scribe/campaign-scribe/pkg/ai"
	"github.com/campaign-scribe/campaign-scribe/pkg/asr"
	"github.com/campaign-scribe/campaign-scribe/pkg/config"
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

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// Uploads can be large session recordings
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Server.MaxUploadBytes>>20)))

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisStore, err := cache.NewRedisStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisStore.Close()

	// Initialize MinIO
	log.Println("📦 Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	campaignRepo := repository.NewCampaignRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	characterRepo := repository.NewCharacterRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	recordingRepo := repository.NewRecordingRepository(db)
	transcriptionRepo := repository.NewTranscriptionRepository(db)
	speakerRepo := repository.NewSpeakerRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	// Initialize external clients
	log.Println("🤖 Initializing ASR and LLM clients...")
	deepgramClient := asr.NewDeepgramClient(&cfg.Deepgram)
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)

	// Initialize services
	log.Println("✨ Initializing services...")
	campaignService := campaignuse.NewService(campaignRepo, playerRepo, characterRepo)
	sessionService := sessionuse.NewService(
		campaignRepo,
		sessionRepo,
		recordingRepo,
		speakerRepo,
		playerRepo,
		characterRepo,
		redisStore,
		cfg.Redis.SpeakerCacheTTL,
		logger,
	)
	transcriptionService := transcriptionuse.NewService(
		sessionRepo,
		recordingRepo,
		transcriptionRepo,
		minioClient,
		deepgramClient,
		logger,
	)
	summaryService := summaryuse.NewService(
		sessionRepo,
		recordingRepo,
		transcriptionRepo,
		summaryRepo,
		geminiClient,
		cfg.Gemini.Model,
		logger,
	)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	campaignHandler := handler.NewCampaign(campaignService, logger)
	sessionHandler := handler.NewSession(sessionService, summaryService, logger)
	recordingHandler := handler.NewRecording(transcriptionService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, campaignHandler, sessionHandler, recordingHandler)
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
