package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invoice-wallet-engine/config"
	httpHandler "invoice-wallet-engine/internal/adapter/http/handler"
	"invoice-wallet-engine/internal/adapter/rail"
	pgStorage "invoice-wallet-engine/internal/adapter/storage/postgres"
	redisStorage "invoice-wallet-engine/internal/adapter/storage/redis"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/internal/service"
	"invoice-wallet-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Invoice Wallet Engine")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	issuanceRepo := pgStorage.NewIssuanceRepo(pool)
	reserveRepo := pgStorage.NewReserveRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	issuanceCache := redisStorage.NewIssuanceCache(rdb)

	// Build rail providers from config
	rails, specs := rail.BuildProviders(cfg.Providers)
	railList := make([]ports.RailProvider, 0, len(rails))
	for _, r := range rails {
		railList = append(railList, r)
	}
	log.Info().Int("providers", len(railList)).Msg("rail providers registered")

	// Initialize core services
	monitor := service.NewHealthMonitor(railList, cfg.Health.Interval, cfg.Health.ProbeTimeout, cfg.Health.StaleCycles, log)
	selector := service.NewProviderSelector(specs)
	walletSvc := service.NewWalletService(walletRepo, log)
	reserveSvc := service.NewReserveService(reserveRepo, log)
	issuanceSvc := service.NewIssuanceService(
		walletSvc,
		selector,
		monitor,
		rails,
		issuanceRepo,
		reserveSvc,
		transactor,
		issuanceCache,
		cfg.Issuance.MaxAttempts,
		cfg.Issuance.MintTimeout,
		cfg.Issuance.IdempotencyTTL,
		log,
	)

	// Start the probe loop
	monitor.Start(ctx)

	// Start background reconciliation
	reconciler := service.NewReconciler(walletRepo, reserveSvc, log)
	if cfg.Sweeper.Enabled {
		if err := reconciler.Start(cfg.Sweeper.Schedule); err != nil {
			log.Fatal().Err(err).Msg("Failed to start reconciler")
		}
		defer reconciler.Stop()
	}

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		IssuanceSvc:    issuanceSvc,
		WalletSvc:      walletSvc,
		ReserveSvc:     reserveSvc,
		Monitor:        monitor,
		IssuanceRepo:   issuanceRepo,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
