package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadboard_backend/internal/businesstime"
	apphttp "leadboard_backend/internal/http"
	"leadboard_backend/internal/http/router"
	"leadboard_backend/internal/ledger"
	"leadboard_backend/internal/leads"
	"leadboard_backend/platform/clock"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/logger"
	"leadboard_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// A broken business calendar must never serve traffic.
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server",
		"env", cfg.Env,
		"addr", cfg.HTTPAddr,
		"timezone", cfg.BusinessTimezone,
		"start_hour", cfg.BusinessStartHour,
		"end_hour", cfg.BusinessEndHour,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	clk := clock.System{}
	store := ledger.NewFileStore(cfg, log)
	cal := businesstime.NewCalendar(cfg)
	calc := businesstime.NewCalculator(cal, clk)
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule := leads.NewModule(store, calc, clk, val)

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Modules: []apphttp.Module{leadsModule},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.ListenAndServe()
	}()
	log.Info("server listening", "addr", cfg.HTTPAddr)

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			panic("server stopped: " + err.Error())
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	}

	log.Info("server stopped")
}
