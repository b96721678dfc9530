package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"guest-response-agent/config"
	_ "guest-response-agent/docs" // Swagger docs
	"guest-response-agent/internal/guardrail"
	"guest-response-agent/internal/httpserver"
	inquiryHTTP "guest-response-agent/internal/inquiry/delivery/http"
	postgreRepo "guest-response-agent/internal/inquiry/repository/postgre"
	qdrantRepo "guest-response-agent/internal/inquiry/repository/qdrant"
	"guest-response-agent/internal/inquiry/repository/rediscache"
	"guest-response-agent/internal/inquiry/usecase"
	"guest-response-agent/internal/middleware"
	"guest-response-agent/pkg/embedding"
	"guest-response-agent/pkg/llmprovider"
	"guest-response-agent/pkg/log"
	"guest-response-agent/pkg/qdrant"
)

// @title       Guest Response Agent API
// @description AI-assisted guest inquiry responses for short-term rentals with PII and topic guardrails, template retrieval and tiered generation.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Guest Response Agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Qdrant URL: %s", cfg.Qdrant.URL)

	// 3. LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}

	retryDelay, _ := time.ParseDuration(cfg.LLM.RetryDelay)
	maxTotalTimeout, _ := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotalTimeout,
	}, logger)
	logger.Infof(ctx, "LLM providers initialized: %d", len(providers))

	// 4. Template retrieval: embeddings + Qdrant
	embedClient, err := embedding.New(embedding.Config{
		APIKey:  cfg.Embedding.APIKey,
		Model:   cfg.Embedding.Model,
		BaseURL: cfg.Embedding.BaseURL,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize embedding client: ", err)
		return
	}

	qdrantClient := qdrant.NewClient(cfg.Qdrant.URL)
	templateRepo := qdrantRepo.New(qdrantClient, embedClient, qdrantRepo.Config{
		Collection: cfg.Qdrant.CollectionName,
		CacheSize:  cfg.Agent.EmbeddingCacheSize,
		CacheTTL:   time.Duration(cfg.Agent.EmbeddingCacheTTLSeconds) * time.Second,
	}, logger)

	// 5. Property and reservation records: Postgres behind a Redis cache
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		logger.Error(ctx, "Failed to open Postgres: ", err)
		return
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Error(ctx, "Failed to ping Postgres: ", err)
		return
	}

	recordRepo := postgreRepo.New(db, logger)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnf(ctx, "Redis not available, serving records uncached: %v", err)
	} else {
		recordRepo = rediscache.New(recordRepo, rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second, logger)
	}

	// 6. Guardrails
	piiGuard := guardrail.NewPII()
	topicGuard := guardrail.NewTopic(llm, logger, cfg.Guardrail.FailOpen)

	// 7. Inquiry UseCase
	inquiryUC := usecase.New(piiGuard, topicGuard, templateRepo, recordRepo, llm, usecase.Config{
		RetrievalTopK:                cfg.Agent.RetrievalTopK,
		RetrievalSimilarityThreshold: cfg.Agent.RetrievalSimilarityThreshold,
		DirectSubstitutionEnabled:    cfg.Agent.DirectSubstitutionEnabled,
		DirectSubstitutionThreshold:  cfg.Agent.DirectSubstitutionThreshold,
		Temperature:                  cfg.Agent.Temperature,
		MaxTokens:                    cfg.Agent.MaxTokens,
	}, logger)

	// 8. HTTP delivery
	inquiryHandler := inquiryHTTP.New(logger, inquiryUC)
	mw := middleware.New(logger, cfg.API)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		InquiryHandler: inquiryHandler,
		Middleware:     mw,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
