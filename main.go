package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	appLogger "github.com/FACorreiaa/go-estate-assistant/app/logger"
	"github.com/FACorreiaa/go-estate-assistant/app/tracer"
	"github.com/FACorreiaa/go-estate-assistant/config"
	"github.com/FACorreiaa/go-estate-assistant/internal/api/chat"
	generativeAI "github.com/FACorreiaa/go-estate-assistant/internal/api/generative_ai"
	"github.com/FACorreiaa/go-estate-assistant/internal/api/googlemaps"
	"github.com/FACorreiaa/go-estate-assistant/internal/api/location"
	"github.com/FACorreiaa/go-estate-assistant/internal/api/property"
	appRouter "github.com/FACorreiaa/go-estate-assistant/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := tracer.InitTracingAndMetrics(cfg.Server.MetricsPort, logger); err != nil {
		logger.Error("Failed to initialize tracing and metrics", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Dependency Injection ---
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.LLM.Model)
	if err != nil {
		logger.Error("Failed to create AI client", slog.Any("error", err))
		os.Exit(1)
	}
	// One queue per process: it guards the shared completion rate limit.
	completionQueue := generativeAI.NewCompletionQueue(aiClient, logger, generativeAI.QueueConfig{
		MaxAttempts:    cfg.LLM.MaxAttempts,
		InitialBackoff: cfg.LLM.InitialBackoff,
	})

	mapsClient := googlemaps.NewClient(os.Getenv("GOOGLE_MAPS_API_KEY"), logger)
	resolver := location.NewResolver(completionQueue, logger)

	chatService := chat.NewServiceImpl(resolver, mapsClient, cfg.Maps.RadiusMeters, cfg.Maps.MaxResults, logger)
	chatHandler := chat.NewHandler(chatService, logger)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	propertyService := property.NewServiceImpl(mapsClient, cfg.Maps.RadiusMeters, cfg.Maps.MaxResults, rng, logger)
	propertyHandler := property.NewHandler(propertyService, logger)

	// --- Router Setup ---
	mainRouter := appRouter.SetupRouter(&appRouter.Config{
		ChatHandler:     chatHandler,
		PropertyHandler: propertyHandler,
	})

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	// --- HTTP Server ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
