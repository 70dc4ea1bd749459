package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hexaparts/procurement-api/internal/config"
	"github.com/hexaparts/procurement-api/internal/database"
	"github.com/hexaparts/procurement-api/internal/http/handler"
	"github.com/hexaparts/procurement-api/internal/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	rateLimiter      *middleware.RateLimiter
	webhookHandler   *handler.WebhookHandler
	requestHandler   *handler.RequestHandler
	supplierHandler  *handler.SupplierHandler
	orderHandler     *handler.OrderHandler
	dashboardHandler *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	webhookHandler *handler.WebhookHandler,
	requestHandler *handler.RequestHandler,
	supplierHandler *handler.SupplierHandler,
	orderHandler *handler.OrderHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		rateLimiter:      rateLimiter,
		webhookHandler:   webhookHandler,
		requestHandler:   requestHandler,
		supplierHandler:  supplierHandler,
		orderHandler:     orderHandler,
		dashboardHandler: dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Webhook routes stay outside the API key gate. Twilio posts callbacks
	// without our key, so these endpoints accept unauthenticated traffic
	// behind the rate limiter and dedupe on the message SID.
	// TODO: validate X-Twilio-Signature once the public callback URL is
	// pinned in config.
	r.Group(func(r chi.Router) {
		r.Use(rt.rateLimiter.LimitWebhook)
		r.Post("/webhook/whatsapp", rt.webhookHandler.Inbound)
		r.Post("/webhook/whatsapp/status", rt.webhookHandler.Status)
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.rateLimiter.LimitByIP)
		r.Use(middleware.APIKey(&rt.cfg.ApiKey, rt.logger))

		// Parts requests
		r.Route("/requests", func(r chi.Router) {
			r.Get("/", rt.requestHandler.List)
			r.Post("/", rt.requestHandler.Create)
			r.Get("/{id}/quotes", rt.requestHandler.Quotes)
			r.Post("/{id}/approve", rt.requestHandler.Approve)
		})

		// Suppliers
		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", rt.supplierHandler.List)
			r.Post("/", rt.supplierHandler.Create)
			r.Get("/{id}", rt.supplierHandler.Get)
			r.Put("/{id}", rt.supplierHandler.Update)
			r.Delete("/{id}", rt.supplierHandler.Delete)
		})

		// Purchase orders
		r.Get("/orders", rt.orderHandler.List)

		// Dashboard & message log
		r.Get("/dashboard/metrics", rt.dashboardHandler.Metrics)
		r.Get("/messages", rt.dashboardHandler.Messages)
	})

	return r
}
