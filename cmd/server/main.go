package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	httpapi "gamehub/internal/api/http"
	"gamehub/internal/api/tcp"
	"gamehub/internal/config"
	"gamehub/internal/jobs"
	"gamehub/internal/logger"
	"gamehub/internal/repository/memory"
	"gamehub/internal/scheduler"
	"gamehub/internal/security"
	"gamehub/internal/service"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (empty for built-in defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GameHub server...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "auth_enabled", cfg.AuthEnabled())
	logger.Info("Rental configuration", "loan_days", cfg.Rental.LoanDays, "late_fee_per_day", cfg.Rental.FeePerDay)

	// The ledger lives for exactly as long as the process; nothing persists.
	store := memory.NewStore()
	hub := service.NewHub(store.Users, store.Games, store.Rentals, cfg.Rental.LoanDays, cfg.Rental.FeePerDay)

	var auth *security.Authenticator
	if cfg.AuthEnabled() {
		tokenManager := security.NewTokenManager(
			cfg.Auth.Secret,
			time.Duration(cfg.Auth.SessionTokenExpiry)*time.Minute,
		)
		auth = security.NewAuthenticator(cfg.Auth.Credentials, tokenManager)
		logger.Info("Authentication gate enabled", "users", len(cfg.Auth.Credentials))
	}

	dispatcher := tcp.NewDispatcher(hub, hub, hub, hub)
	server := tcp.NewServer(
		cfg.GetServerAddress(),
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
		auth,
		dispatcher,
	)
	if err := server.Listen(); err != nil {
		logger.Error("Failed to start command server", "error", err)
		log.Fatalf("Failed to start command server: %v", err)
	}

	var webServer *http.Server
	if cfg.Web.Enabled {
		router := mux.NewRouter()
		httpapi.NewDashboardHandler(hub, hub).Register(router)
		webServer = &http.Server{
			Addr:    cfg.GetWebAddress(),
			Handler: router,
		}
		go func() {
			logger.Info("Dashboard listening", "addr", cfg.GetWebAddress())
			if err := webServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Dashboard server failed", "error", err)
			}
		}()
	}

	jobRunner := jobs.NewJobRunner(cfg, hub)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logger.Error("Command server failed", "error", err)
		}
	}

	sched.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if webServer != nil {
		_ = webServer.Shutdown(shutdownCtx)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Command server shutdown incomplete", "error", err)
	}
	logger.Info("GameHub server stopped")
}
