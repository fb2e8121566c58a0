package main

import (
	"database/sql"
	"net/http"

	"github.com/josh-kwaku/pos-ledger/api"
	"github.com/josh-kwaku/pos-ledger/internal/config"
	"github.com/josh-kwaku/pos-ledger/internal/domain"
	"github.com/josh-kwaku/pos-ledger/internal/handler"
	"github.com/josh-kwaku/pos-ledger/internal/metrics"
	"github.com/josh-kwaku/pos-ledger/internal/middleware"
	"github.com/josh-kwaku/pos-ledger/internal/repository"
	"github.com/josh-kwaku/pos-ledger/internal/service"
)

type app struct {
	cfg         *config.Config
	idempotency *repository.IdempotencyRepository

	health    *handler.HealthHandler
	docs      *handler.DocsHandler
	auth      *handler.AuthHandler
	customers *handler.CustomerHandler
	events    *handler.EventHandler
	ledger    *handler.LedgerHandler
}

func newApp(db *sql.DB, cfg *config.Config) *app {
	users := repository.NewUserRepository(db)
	customers := repository.NewCustomerRepository(db)
	sales := repository.NewSaleRepository(db)
	debts := repository.NewDebtRepository(db)
	payments := repository.NewPaymentRepository(db)

	return &app{
		cfg:         cfg,
		idempotency: repository.NewIdempotencyRepository(db),
		health:      handler.NewHealthHandler(db, version),
		docs:        handler.NewDocsHandler(api.OpenAPI, version),
		auth:        handler.NewAuthHandler(users, cfg.JWTSecret, cfg.JWTExpiry),
		customers:   handler.NewCustomerHandler(service.NewCustomerService(customers)),
		events:      handler.NewEventHandler(service.NewEventService(customers, sales, debts, payments)),
		ledger:      handler.NewLedgerHandler(service.NewLedgerService(customers, sales, debts, payments, cfg.CurrencySymbol)),
	}
}

// routes builds the full handler. Metrics sits directly around the mux so it
// sees the matched pattern.
func (a *app) routes() http.Handler {
	authed := middleware.Auth(a.cfg.JWTSecret)
	idem := middleware.Idempotency(a.idempotency, a.cfg.IdempotencyTTL)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	protect := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, authed)
	}
	write := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, authed, idem)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", a.health.Liveness)
	mux.HandleFunc("GET /health/ready", a.health.Readiness)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /docs", a.docs.UI)
	mux.HandleFunc("GET /docs/openapi.yaml", a.docs.Spec)

	mux.HandleFunc("POST /api/v1/auth/login", a.auth.Login)

	mux.Handle("GET /api/v1/customers", protect(a.customers.List))
	mux.Handle("POST /api/v1/customers", write(a.customers.Create))
	mux.Handle("GET /api/v1/customers/{id}", protect(a.customers.Get))
	mux.Handle("PUT /api/v1/customers/{id}", protect(a.customers.Update))
	mux.Handle("DELETE /api/v1/customers/{id}", middleware.Chain(http.HandlerFunc(a.customers.Delete), authed, adminOnly))

	mux.Handle("GET /api/v1/customers/{id}/balance", protect(a.ledger.Balance))
	mux.Handle("GET /api/v1/customers/{id}/ledger", protect(a.ledger.Ledger))
	mux.Handle("GET /api/v1/customers/{id}/statement", protect(a.ledger.Statement))
	mux.Handle("GET /api/v1/balances", protect(a.ledger.Balances))

	mux.Handle("POST /api/v1/sales", write(a.events.CreateSale))
	mux.Handle("POST /api/v1/debts", write(a.events.CreateDebt))
	mux.Handle("POST /api/v1/payments", write(a.events.CreatePayment))

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.Tracing,
		middleware.Logging,
		metrics.Middleware,
	)
}
