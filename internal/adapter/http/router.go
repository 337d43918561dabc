package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/metalledger/internal/adapter/http/handler"
	"github.com/iho/metalledger/internal/adapter/http/middleware"
	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	Logger           zerolog.Logger
	AccountHandler   *handler.AccountHandler
	PostingHandler   *handler.PostingHandler
	ClaimHandler     *handler.ClaimHandler
	MetalHandler     *handler.MetalHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter

	// TokenVerifier enables bearer auth. Without it the tenant comes from
	// the X-Organization-ID header.
	TokenVerifier  middleware.TokenVerifier
	IdempotencyTTL time.Duration
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TokenVerifier != nil {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
		} else {
			r.Use(middleware.HeaderTenant)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		operator := middleware.RequireRole(domain.RoleOperator)
		admin := middleware.RequireRole(domain.RoleAdmin)

		// Chart of accounts
		r.Route("/ledger-accounts", func(r chi.Router) {
			r.With(admin).Post("/", cfg.AccountHandler.CreateLedgerAccount)
			r.Get("/", cfg.AccountHandler.ListLedgerAccounts)
			r.Get("/{id}", cfg.AccountHandler.GetLedgerAccount)
		})

		// Running accounts
		r.Route("/running-accounts", func(r chi.Router) {
			r.With(operator).Post("/", cfg.AccountHandler.CreateRunningAccount)
			r.Get("/", cfg.AccountHandler.ListRunningAccounts)
			r.Get("/{id}", cfg.AccountHandler.GetRunningAccount)
			r.With(admin).Put("/{id}/active", cfg.AccountHandler.SetRunningAccountActive)
			r.Get("/{id}/postings", cfg.PostingHandler.ListByRunningAccount)
			r.Get("/{id}/reconciliation", cfg.LedgerHandler.Reconcile)
		})

		// Postings
		r.Route("/postings", func(r chi.Router) {
			r.With(operator).Post("/", cfg.PostingHandler.Create)
			r.With(operator).Post("/transfer", cfg.PostingHandler.Transfer)
			r.Get("/{id}", cfg.PostingHandler.Get)
			r.With(operator).Post("/{id}/reverse", cfg.PostingHandler.Reverse)
		})

		// Receivables and payables
		r.Route("/claims", func(r chi.Router) {
			r.With(operator).Post("/", cfg.ClaimHandler.Create)
			r.Get("/{id}", cfg.ClaimHandler.Get)
			r.Get("/{id}/outstanding", cfg.ClaimHandler.Outstanding)
			r.With(operator).Post("/{id}/links", cfg.ClaimHandler.Settle)
			r.With(operator).Delete("/{id}/links/{postingID}", cfg.ClaimHandler.Unsettle)
		})

		// Metal credits
		r.Route("/credits", func(r chi.Router) {
			r.With(operator).Post("/", cfg.MetalHandler.CreateCredit)
			r.Get("/{id}", cfg.MetalHandler.GetCredit)
			r.Get("/{id}/usages", cfg.MetalHandler.ListUsages)
			r.With(operator).Post("/{id}/allocations", cfg.MetalHandler.Allocate)
			r.With(operator).Post("/{id}/cash-allocations", cfg.MetalHandler.AllocateWithCash)
			r.With(operator).Post("/{id}/cancel", cfg.MetalHandler.CancelCredit)
		})
		r.Get("/clients/{id}/credits", cfg.MetalHandler.ListClientCredits)

		// Metal lots
		r.Route("/lots", func(r chi.Router) {
			r.With(operator).Post("/", cfg.MetalHandler.ReceiveLot)
			r.Get("/{id}", cfg.MetalHandler.GetLot)
			r.With(operator).Post("/{id}/consume", cfg.MetalHandler.ConsumeLot)
		})
		r.Get("/products/{id}/lots", cfg.MetalHandler.ListAvailableLots)

		// Ledger checks and repair jobs
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
		r.Route("/backfills", func(r chi.Router) {
			r.Use(admin)
			r.Post("/", cfg.LedgerHandler.RunAllBackfills)
			r.Post("/{kind}", cfg.LedgerHandler.RunBackfill)
		})
	})

	return r
}
