package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hexaparts/procurement-api/internal/config"
	"github.com/hexaparts/procurement-api/internal/database"
	"github.com/hexaparts/procurement-api/internal/extraction"
	"github.com/hexaparts/procurement-api/internal/http/handler"
	"github.com/hexaparts/procurement-api/internal/http/middleware"
	"github.com/hexaparts/procurement-api/internal/http/router"
	"github.com/hexaparts/procurement-api/internal/jobs"
	"github.com/hexaparts/procurement-api/internal/logger"
	"github.com/hexaparts/procurement-api/internal/messaging"
	"github.com/hexaparts/procurement-api/internal/repository"
	"github.com/hexaparts/procurement-api/internal/service"
	"go.uber.org/zap"
)

// @title Hexaparts Procurement API
// @version 1.0
// @description WhatsApp-driven parts procurement: RFQ fan-out, quote collection, and purchase order approval

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for dashboard and procurement operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize repositories
	orgRepo := repository.NewOrganizationRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize messaging transport and extraction
	transport := messaging.NewTwilioTransport(&cfg.WhatsApp, log)
	extractor := extraction.NewAnthropicExtractor(&cfg.Extraction, log)

	// Initialize services
	routingService := service.NewRoutingService(partyRepo, supplierRepo, inquiryRepo, extractor, log)
	procurementService := service.NewProcurementService(
		orgRepo,
		partyRepo,
		supplierRepo,
		requestRepo,
		inquiryRepo,
		quoteRepo,
		orderRepo,
		messageRepo,
		routingService,
		transport,
		extractor,
		log,
	)
	comparisonService := service.NewComparisonService(requestRepo, inquiryRepo, supplierRepo, log)
	supplierService := service.NewSupplierService(orgRepo, supplierRepo, inquiryRepo, log)
	dashboardService := service.NewDashboardService(requestRepo, inquiryRepo, quoteRepo, orderRepo, supplierRepo, messageRepo, log)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	webhookHandler := handler.NewWebhookHandler(procurementService, log)
	requestHandler := handler.NewRequestHandler(procurementService, comparisonService, dashboardService, log)
	supplierHandler := handler.NewSupplierHandler(supplierService, log)
	orderHandler := handler.NewOrderHandler(dashboardService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		rateLimiter,
		webhookHandler,
		requestHandler,
		supplierHandler,
		orderHandler,
		dashboardHandler,
	)

	// Start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.FollowupEnabled {
		scheduler = jobs.NewScheduler(log)
		followupJob := jobs.NewFollowupJob(procurementService, log, cfg.Jobs.NoResponseAfter())
		if err := scheduler.AddJob(jobs.FollowupJobName, cfg.Jobs.FollowupCron, followupJob.Run); err != nil {
			log.Error("Failed to register followup job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with followup job",
				zap.String("cron_expr", cfg.Jobs.FollowupCron),
				zap.Duration("no_response_after", cfg.Jobs.NoResponseAfter()),
			)
		}
	} else {
		log.Info("Inquiry followup job disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
