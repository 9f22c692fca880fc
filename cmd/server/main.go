package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftai/coach-app/internal/ai"
	"liftai/coach-app/internal/api"
	"liftai/coach-app/internal/config"
	"liftai/coach-app/internal/repository/mongo"
	"liftai/coach-app/internal/service"
	"liftai/coach-app/internal/storage"
	"liftai/coach-app/internal/webhook"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// @title LiftAI Coach API
// @version 1.0
// @description API for AI-generated powerlifting and diet plans with RPE feedback.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger.Info().Msg("starting coach server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load config")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to MongoDB")
	}
	defer func() {
		logger.Info().Msg("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info().Str("database", cfg.Database.Name).Msg("database connection established")

	// --- Ensure Indexes ---
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		logger.Info().Msg("index creation process completed")
	}()

	// --- Transcript Archive (optional) ---
	var archive storage.TranscriptArchive
	if cfg.S3.BucketName != "" {
		archive, err = storage.NewS3Archive(cfg.S3, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize transcript archive")
		}
	} else {
		logger.Info().Msg("no transcript bucket configured, archiving disabled")
	}

	// --- Webhook Verifier ---
	verifier, err := webhook.NewVerifier(cfg.Webhook.SigningSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid webhook signing secret")
	}

	// --- AI Client ---
	generator := ai.NewGeminiClient(cfg.Gemini, logger)

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(dbClient, appDB)

	// --- Services ---
	generationService := service.NewGenerationService(planRepo, generator, archive, logger)
	feedbackService := service.NewFeedbackService(planRepo, logger)
	planService := service.NewPlanService(planRepo, logger)
	userService := service.NewUserService(userRepo, logger)

	// --- Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, verifier, generationService, feedbackService, planService, userService, logger)

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		// Generation makes two sequential model calls; the write timeout has
		// to outlast both plus validation and persistence.
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info().Str("address", cfg.Server.Address).Msg("server starting")

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen and serve error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exiting")
}
