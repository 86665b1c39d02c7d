package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	httpapi "surfboard-marketplace-backend/internal/api/http"
	"surfboard-marketplace-backend/internal/config"
	"surfboard-marketplace-backend/internal/db"
	"surfboard-marketplace-backend/internal/logger"
	"surfboard-marketplace-backend/internal/repository/postgres"
	"surfboard-marketplace-backend/internal/security"
	"surfboard-marketplace-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Surfboard Marketplace Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	if err := run(cfg); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped. Goodbye!")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	conn, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return err
	}
	defer conn.Close()
	conn.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout())
	err = conn.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("Failed to ping database", "error", err)
		return err
	}
	logger.Info("Database connection established")

	if err := db.Migrate(ctx, conn); err != nil {
		return err
	}

	// Initialize Repositories
	store := postgres.NewStore(conn, cfg.QueryTimeout())

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL(), cfg.JWT.Issuer)

	// Initialize Services
	authSvc := service.NewAuthService(store.Users, tokenManager)
	surfboardSvc := service.NewSurfboardService(store, store.Surfboards)
	rentalSvc := service.NewRentalService(store, store.Rentals, store.Transactions)
	storageSvc := service.NewStorageService(store, store.Repositories)
	partnerSvc := service.NewPartnerService(store.Partners)

	authLimiter := httpapi.NewRateLimiter(cfg.RateLimit.AuthRequestsPerMinute, cfg.RateLimit.AuthBurst)
	authLimiter.StartCleanup(ctx, time.Minute)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:           authSvc,
		Surfboards:     surfboardSvc,
		Rentals:        rentalSvc,
		Storage:        storageSvc,
		Partners:       partnerSvc,
		Tokens:         tokenManager,
		DB:             store,
		AuthLimiter:    authLimiter,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		SecureCookies:  cfg.Server.SecureCookies,
	})

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
