// Package app wires configuration, storage, services and the HTTP server
// into a runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"subpix/internal/billing"
	"subpix/internal/config"
	"subpix/internal/infrastructure"
	"subpix/internal/license"
	"subpix/internal/middleware"
	"subpix/internal/services"
	"subpix/internal/storage"
	transport "subpix/internal/transport/http"
)

// Version is set at build time.
var Version = "dev"

// Application is the assembled service.
type Application struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// New loads configuration from configPath and builds the application.
func New(configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port),
	)

	catalogs, err := config.LoadCatalogs(cfg.Paths.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load key catalogs: %w", err)
	}

	store, err := storage.Open(cfg.Paths.DataFile, logger)
	if err != nil {
		return nil, fmt.Errorf("open data store: %w", err)
	}

	ctx := context.Background()
	manager, err := license.NewManager(ctx, license.NewEngine(catalogs), store, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize license manager: %w", err)
	}

	billingStore, err := billing.NewStore(ctx, store, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize billing store: %w", err)
	}

	router := transport.NewRouter(transport.RouterDeps{
		License:  services.NewLicenseService(manager, logger),
		Billing:  services.NewBillingService(billingStore, logger),
		Charges:  services.NewChargeService(cfg.Merchant, logger),
		Gate:     middleware.NewLicenseGate(manager, logger, "/api/license", "/healthz", "/metrics"),
		Security: cfg.Security,
		Logger:   logger,
		Version:  Version,
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}, nil
}

// Run serves HTTP until the context is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down",
			slog.Duration("timeout", a.cfg.Server.ShutdownTimeout),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("application stopped")
	return nil
}
