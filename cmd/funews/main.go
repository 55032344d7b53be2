// Package main is the entry point for the FUNews API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"funews/internal/auth"
	"funews/internal/cache"
	"funews/internal/config"
	"funews/internal/database"
	"funews/internal/handlers"
	"funews/internal/middleware"
	"funews/internal/router"
	"funews/internal/service"
	"funews/internal/session"
	"funews/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Text output in development, JSON everywhere else.
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	db, err := database.Connect(cfg.DSN(), database.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the first admin account (no-op if one already exists).
	if cfg.IsDev() {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := database.Seed(seedCtx, db)
		cancel()
		if err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Valkey holds revoked token ids until they expire.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()
	revocations := session.NewStore(valkeyClient)

	issuer := auth.NewIssuer(auth.TokenOptions{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTExpiration,
	})

	uow := store.NewUnitOfWork(db)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	defer loginLimiter.Stop()

	r := router.New(router.Deps{
		Tokens:       issuer,
		Revocations:  revocations,
		LoginLimiter: loginLimiter,
		DB:           db,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		Auth:         handlers.NewAuth(service.NewAuthService(uow, issuer, revocations)),
		Accounts:     handlers.NewAccounts(service.NewAccountService(uow)),
		Categories:   handlers.NewCategories(service.NewCategoryService(uow)),
		Tags:         handlers.NewTags(service.NewTagService(uow)),
		NewsArticles: handlers.NewNewsArticles(service.NewNewsArticleService(uow)),
		Reports:      handlers.NewReports(service.NewReportService(uow)),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
