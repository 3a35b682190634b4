package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gestionbanque/bankcore/internal/adapter/http/handler"
	"github.com/gestionbanque/bankcore/internal/adapter/http/middleware"
	"github.com/gestionbanque/bankcore/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransferHandler    *handler.TransferHandler
	TransactionHandler *handler.TransactionHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates the HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/accounts", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotency.Wrap)
		}

		r.Post("/", cfg.AccountHandler.Create)
		r.Get("/", cfg.AccountHandler.List)
		r.Get("/{id}", cfg.AccountHandler.Get)
		r.Delete("/{id}", cfg.AccountHandler.Delete)
		r.Get("/{id}/balance", cfg.AccountHandler.GetBalance)
		r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
		r.Get("/{id}/verify", cfg.TransactionHandler.Verify)
		r.Post("/{id}/transfer", cfg.TransferHandler.Create)
	})

	r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)

	return r
}
