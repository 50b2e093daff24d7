package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/finfolio/internal/adapter/http/handler"
	"github.com/iho/finfolio/internal/adapter/http/middleware"
	"github.com/iho/finfolio/internal/infrastructure/auth"
	"github.com/iho/finfolio/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler        *handler.UserHandler
	AccountHandler     *handler.AccountHandler
	AssetHandler       *handler.AssetHandler
	CategoryHandler    *handler.CategoryHandler
	PriceHandler       *handler.PriceHandler
	TransactionHandler *handler.TransactionHandler
	PortfolioHandler   *handler.PortfolioHandler
	HoldingsHandler    *handler.HoldingsHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	JWTManager         *auth.JWTManager
	RateLimiter        *middleware.RateLimiter
	AuthEnabled        bool
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Registration and login stay outside token auth.
		r.Post("/users", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)

		r.Group(func(r chi.Router) {
			if cfg.AuthEnabled && cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			}

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Get("/me", cfg.UserHandler.Me)

			// Accounts
			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Create)
				r.Get("/", cfg.AccountHandler.List)
				r.Get("/balances", cfg.HoldingsHandler.Balances)
				r.Put("/{id}", cfg.AccountHandler.Update)
				r.Delete("/{id}", cfg.AccountHandler.Delete)
			})

			// Asset registry
			r.Route("/assets", func(r chi.Router) {
				r.Post("/", cfg.AssetHandler.Create)
				r.Get("/", cfg.AssetHandler.List)
			})

			// Categories
			r.Route("/categories", func(r chi.Router) {
				r.Post("/", cfg.CategoryHandler.Create)
				r.Get("/", cfg.CategoryHandler.List)
				r.Post("/seed", cfg.CategoryHandler.Seed)
			})

			// Price log
			r.Route("/prices", func(r chi.Router) {
				r.Post("/", cfg.PriceHandler.Set)
				r.Get("/latest", cfg.PriceHandler.Latest)
			})

			// Transaction log
			r.Route("/transactions", func(r chi.Router) {
				r.Post("/expense", cfg.TransactionHandler.Expense)
				r.Post("/trade", cfg.TransactionHandler.Trade)
				r.Post("/income", cfg.TransactionHandler.Income)
			})
			r.Get("/expenses", cfg.TransactionHandler.ListExpenses)
			r.Get("/expenses/totals", cfg.TransactionHandler.DailyTotals)

			// Derived holdings views
			r.Get("/holdings", cfg.HoldingsHandler.List)

			// Portfolios and rebalancing
			r.Route("/portfolios", func(r chi.Router) {
				r.Post("/", cfg.PortfolioHandler.Create)
				r.Get("/", cfg.PortfolioHandler.List)
				r.Get("/{id}", cfg.PortfolioHandler.Get)
				r.Put("/{id}/allocations", cfg.PortfolioHandler.SetAllocations)
				r.Get("/{id}/rebalance", cfg.PortfolioHandler.Rebalance)
			})
		})
	})

	return r
}
