package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ledgerly/ledgerly/internal/adapter/http/handler"
	"github.com/ledgerly/ledgerly/internal/adapter/http/middleware"
	"github.com/ledgerly/ledgerly/internal/infrastructure/auth"
	"github.com/ledgerly/ledgerly/internal/infrastructure/metrics"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	FamilyHandler      *handler.FamilyHandler
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	TransferHandler    *handler.TransferHandler
	CategoryHandler    *handler.CategoryHandler
	MerchantHandler    *handler.MerchantHandler
	TagHandler         *handler.TagHandler
	BudgetHandler      *handler.BudgetHandler
	HealthHandler      *handler.HealthHandler

	JWTManager       *auth.JWTManager
	AuthEnabled      bool
	Logging          *middleware.LoggingMiddleware
	Metrics          *metrics.Metrics
	RateLimiter      *middleware.RateLimiter
	IdempotencyStore usecase.IdempotencyStore
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	} else {
		r.Use(chimiddleware.Logger)
	}
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints stay outside authentication
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled && cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager, cfg.Metrics))
		} else {
			r.Use(middleware.DevFamilyMiddleware)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Families
		r.Route("/families", func(r chi.Router) {
			r.Post("/", cfg.FamilyHandler.Create)
			r.Get("/{id}", cfg.FamilyHandler.Get)
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Post("/{id}/archive", cfg.AccountHandler.Archive)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Put("/{id}/category", cfg.TransactionHandler.SetCategory)
			r.Get("/{id}/match", cfg.TransactionHandler.SuggestMatch)
			r.Post("/{id}/match", cfg.TransactionHandler.Match)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/", cfg.TransferHandler.List)
			r.Get("/{id}", cfg.TransferHandler.Get)
			r.Post("/{id}/confirm", cfg.TransferHandler.Confirm)
			r.Post("/{id}/reject", cfg.TransferHandler.Reject)
			r.Put("/{id}/category", cfg.TransferHandler.UpdateCategory)
			r.Delete("/{id}", cfg.TransferHandler.Delete)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.CategoryHandler.Create)
			r.Get("/", cfg.CategoryHandler.List)
			r.Get("/{id}", cfg.CategoryHandler.Get)
			r.Put("/{id}", cfg.CategoryHandler.Update)
			r.Delete("/{id}", cfg.CategoryHandler.Delete)
		})

		// Merchants
		r.Route("/merchants", func(r chi.Router) {
			r.Post("/", cfg.MerchantHandler.Create)
			r.Get("/", cfg.MerchantHandler.List)
			r.Get("/{id}", cfg.MerchantHandler.Get)
			r.Put("/{id}", cfg.MerchantHandler.Update)
			r.Delete("/{id}", cfg.MerchantHandler.Delete)
		})

		// Tags
		r.Route("/tags", func(r chi.Router) {
			r.Post("/", cfg.TagHandler.Create)
			r.Get("/", cfg.TagHandler.List)
			r.Get("/{id}", cfg.TagHandler.Get)
			r.Put("/{id}", cfg.TagHandler.Update)
			r.Delete("/{id}", cfg.TagHandler.Delete)
		})

		// Budgets
		r.Route("/budgets", func(r chi.Router) {
			r.Put("/", cfg.BudgetHandler.Upsert)
			r.Get("/", cfg.BudgetHandler.List)
			r.Get("/{id}", cfg.BudgetHandler.Get)
			r.Get("/{id}/categories", cfg.BudgetHandler.ListCategories)
			r.Put("/{id}/categories", cfg.BudgetHandler.SetCategory)
		})
	})

	return r
}
