// @title Curriculum Forge API
// @version 1.0
// @description Turns course documents into curriculum modules and quizzes.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"curriculum-forge/internal/adapter"
	"curriculum-forge/internal/adapter/llm"
	"curriculum-forge/internal/cache"
	"curriculum-forge/internal/chunker"
	"curriculum-forge/internal/config"
	"curriculum-forge/internal/document"
	"curriculum-forge/internal/domain"
	"curriculum-forge/internal/handler"
	"curriculum-forge/internal/logger"
	"curriculum-forge/internal/middleware"
	"curriculum-forge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()
	if cfg.File != "" {
		appLogger.Info("Using config file", zap.String("path", cfg.File))
	}

	ctx := context.Background()

	// Response cache is optional
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Redis response cache enabled", zap.Duration("ttl", cfg.Redis.ResponseTTL))
	} else {
		appLogger.Warn("Redis cache is not configured. Running without response cache.")
	}

	model, closeModel, err := llm.New(ctx, cfg.LLM, cacheAdapter, cfg.Redis.ResponseTTL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create language model", zap.Error(err))
	}
	defer closeModel()
	appLogger.Info("Language model initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	// Initialize services
	c := chunker.New(cfg.Ingest.MaxTokens)
	parser := document.NewParser(cfg.Ingest.TempDir, appLogger)
	moduleExtractor := service.NewModuleExtractor(model, appLogger)
	quizExtractor := service.NewQuizExtractor(model, c, appLogger)
	ingestionService := service.NewIngestionService(parser, c, moduleExtractor, quizExtractor, cfg.Ingest, appLogger)
	adaptiveService := service.NewAdaptiveQuizService(quizExtractor, appLogger)

	// Initialize handlers
	documentHandler := handler.NewDocumentHandler(ingestionService, cacheAdapter)
	quizHandler := handler.NewQuizHandler(ingestionService, adaptiveService)
	validationMiddleware := middleware.NewValidationMiddleware(cfg.Ingest.NumParts)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))

	handler.RegisterRoutes(app.Group("/api"), documentHandler, quizHandler, validationMiddleware)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
