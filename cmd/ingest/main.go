package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"curriculum-forge/internal/adapter"
	"curriculum-forge/internal/adapter/llm"
	"curriculum-forge/internal/cache"
	"curriculum-forge/internal/chunker"
	"curriculum-forge/internal/config"
	"curriculum-forge/internal/document"
	"curriculum-forge/internal/domain"
	"curriculum-forge/internal/logger"
	"curriculum-forge/internal/service"

	"go.uber.org/zap"
)

type output struct {
	*domain.IngestionResult
	FailedChunks int                 `json:"failed_chunks"`
	Quizzes      []domain.ModuleQuiz `json:"quizzes,omitempty"`
}

func main() {
	file := flag.String("file", "", "document to ingest (.pdf, .docx, .doc, .txt, .md)")
	parts := flag.Int("parts", 0, "number of parts processed independently (default from config)")
	quizzes := flag.Bool("quizzes", false, "also generate a quiz per module")
	instruction := flag.String("instruction", "", "extra instruction appended to quiz prompts")
	out := flag.String("out", "", "write JSON here instead of stdout")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		// Logger is not up yet
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Stdout carries the JSON result
	cfg.Logger.Output = "stderr"
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()
	if cfg.File != "" {
		log.Info("Using config file", zap.String("path", cfg.File))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize Redis client", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}

	model, closeModel, err := llm.New(ctx, cfg.LLM, cacheAdapter, cfg.Redis.ResponseTTL, log)
	if err != nil {
		log.Fatal("Failed to create language model", zap.Error(err))
	}
	defer closeModel()

	c := chunker.New(cfg.Ingest.MaxTokens)
	quizExtractor := service.NewQuizExtractor(model, c, log)
	ingestion := service.NewIngestionService(
		document.NewParser(cfg.Ingest.TempDir, log),
		c,
		service.NewModuleExtractor(model, log),
		quizExtractor,
		cfg.Ingest,
		log,
	)

	numParts := *parts
	if numParts <= 0 {
		numParts = cfg.Ingest.NumParts
	}

	log.Info("Ingestion starting", zap.String("file", *file), zap.Int("parts", numParts))
	result, err := ingestion.Process(ctx, *file, numParts)
	if err != nil {
		log.Fatal("Ingestion failed", zap.String("file", *file), zap.Error(err))
	}

	res := output{IngestionResult: result, FailedChunks: result.FailedChunks()}
	if *quizzes && len(result.Modules) > 0 {
		res.Quizzes = ingestion.GenerateQuizzes(ctx, result.Modules, *instruction)
	}

	if err := writeJSON(*out, res); err != nil {
		log.Fatal("Failed to write output", zap.Error(err))
	}

	log.Info("Ingestion completed",
		zap.String("run_id", result.RunID),
		zap.Int("modules", len(result.Modules)),
		zap.Int("failed_chunks", res.FailedChunks),
		zap.Int("quizzes", len(res.Quizzes)))
}

func writeJSON(path string, v any) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
