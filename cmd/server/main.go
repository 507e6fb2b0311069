package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/corpagent/adgm-compliance-api/internal/advisor"
	"github.com/corpagent/adgm-compliance-api/internal/config"
	"github.com/corpagent/adgm-compliance-api/internal/db"
	"github.com/corpagent/adgm-compliance-api/internal/repository"
	"github.com/corpagent/adgm-compliance-api/internal/router"
	"github.com/corpagent/adgm-compliance-api/internal/rules"
	"github.com/corpagent/adgm-compliance-api/internal/services"
	"github.com/corpagent/adgm-compliance-api/internal/storage"
	"github.com/corpagent/adgm-compliance-api/internal/utils"
)

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)

	// Static rule table, immutable after this point
	table, err := rules.Load(cfg.RulesFile)
	if err != nil {
		logger.Fatal("Failed to load rule table", "error", err)
	}

	database, err := db.NewSQLiteDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer database.Close()

	if err := db.RunMigrations(cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	store, err := storage.NewS3Storage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize S3 storage", "error", err)
	}

	// The advisory LLM is optional; without a key the advisor answers
	// from the knowledge base and the deterministic fallback only.
	var llm advisor.LLMClient
	if cfg.OpenAIAPIKey != "" {
		llm = advisor.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		logger.Info("Advisory LLM enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("No OPENAI_API_KEY configured; advisory runs in fallback-only mode")
	}
	adv := advisor.New(table, llm, cfg.AdvisorTimeout, logger)

	docRepo := repository.NewRepository(database)
	docService := services.NewService(docRepo, store, table, adv, logger)

	handler := router.NewRouter(docService, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
