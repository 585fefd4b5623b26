package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"subpix/internal/config"
	"subpix/internal/middleware"
	"subpix/internal/services"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	License  services.LicenseService
	Billing  services.BillingService
	Charges  services.ChargeService
	Gate     *middleware.LicenseGate
	Security config.SecurityConfig
	Logger   *slog.Logger
	Version  string
}

// NewRouter assembles the full middleware chain and route tree.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.SecurityHeaders)
	if deps.Security.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(deps.Security.RateLimit.RPS, deps.Security.RateLimit.Burst, deps.Logger)
		r.Use(rl.Handler)
	}

	health := NewHealthHandler(deps.Version)
	r.Get("/healthz", health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(deps.Gate.Handler)

		r.Mount("/license", NewLicenseHandler(deps.License, deps.Logger).Routes())
		r.Mount("/charges", NewChargeHandler(deps.Charges, deps.Billing, deps.Logger).Routes())

		billing := NewBillingHandler(deps.Billing, deps.Logger)
		r.Mount("/clients", billing.ClientRoutes())
		r.Mount("/plans", billing.PlanRoutes())
		r.Mount("/payments", billing.PaymentRoutes())
		r.Mount("/payables", billing.PayableRoutes())

		dashboard := NewDashboardHandler(deps.Billing, deps.Logger)
		r.Get("/dashboard", dashboard.Summary)
		r.Get("/reports/payments.xlsx", dashboard.PaymentsReport)
	})

	return r
}
