package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-talent-sift-backend/config"
	_ "go-talent-sift-backend/docs" // Important for Swagger
	v1 "go-talent-sift-backend/internal/delivery/http/v1"
	"go-talent-sift-backend/internal/domain"
	"go-talent-sift-backend/internal/gateway/workflowexe"
	"go-talent-sift-backend/internal/repository/memory"
	"go-talent-sift-backend/internal/repository/redisstore"
	"go-talent-sift-backend/internal/usecase"
	"go-talent-sift-backend/pkg/email"
	"go-talent-sift-backend/pkg/logger"
	"go-talent-sift-backend/pkg/redis"
	"go-talent-sift-backend/pkg/sheets"
)

// @title           Talent Sift Screening API
// @version         1.0
// @description     Resume screening backend: job submissions, AI ranking exchange and candidate filtering.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting talent sift backend", "port", cfg.Port)

	// 3. Setup Stores (Redis, in-memory fallback for local runs)
	var (
		ledger domain.CreditLedger
		store  domain.RankingStore
		guard  domain.SubmissionGuard
	)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable - falling back to in-memory stores (state will not survive restarts)", "error", err)
		ledger = memory.NewCreditLedger()
		store = memory.NewRankingStore()
		guard = memory.NewSubmissionGuard()
	} else {
		client := redis.Client()
		ledger = redisstore.NewCreditLedger(client)
		store = redisstore.NewRankingStore(client)
		guard = redisstore.NewSubmissionGuard(client)
		defer redis.Close()
	}

	// 4. Setup Ranking Workflow Client
	rankingClient := workflowexe.NewClient(cfg.RankingEndpoint, time.Duration(cfg.RankingTimeoutSeconds)*time.Second)

	// 5. Setup Notification Collaborators
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - shortlist notifications will be unavailable")
	}

	var auditLog domain.SubmissionLogger
	sheetsLogger, err := sheets.NewLogger(context.Background(), cfg)
	if err != nil {
		logger.Log.Warn("Google Sheets logger failed to initialize - submission log disabled", "error", err)
	} else if sheetsLogger == nil {
		logger.Log.Warn("Google Sheets credentials not configured - submission log disabled")
	} else {
		auditLog = sheetsLogger
	}

	// 6. Setup UseCases
	validationUC := usecase.NewValidationUsecase(cfg.AllowedEmailDomains)
	submissionUC := usecase.NewSubmissionUsecase(ledger, store, guard, rankingClient, validationUC, auditLog, usecase.SubmissionConfig{
		WorkflowID:        cfg.RankingWorkflowID,
		PrivilegedDomain:  cfg.PrivilegedDomain(),
		PrivilegedCredits: cfg.PrivilegedDomainCredits,
		DefaultCredits:    cfg.DefaultDomainCredits,
	})
	rankingUC := usecase.NewRankingUsecase(store, rankingClient, cfg.RankingWorkflowID)
	shortlistUC := usecase.NewShortlistUsecase(emailService)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		SubmissionUC: submissionUC,
		RankingUC:    rankingUC,
		ValidationUC: validationUC,
		ShortlistUC:  shortlistUC,
		Config:       cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
