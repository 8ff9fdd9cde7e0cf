package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookscan/internal/catalog"
	"bookscan/internal/config"
	"bookscan/internal/device"
	"bookscan/internal/export"
	"bookscan/internal/feedback"
	"bookscan/internal/httpx"
	"bookscan/internal/library"
	"bookscan/internal/lookup"
	"bookscan/internal/platform/logger"
	"bookscan/internal/platform/metrics"
	"bookscan/internal/profile"
	"bookscan/internal/stats"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logger.Must(logger.Config{Level: "error"}).Fatal("load config", logger.Error(err))
	}

	log := logger.Must(logger.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	defer func() { _ = log.Sync() }()

	dbPool := mustOpenDB(log, cfg.DBDSN)
	defer dbPool.Close()

	m := metrics.New(nil)
	resolver := catalog.NewDefaultResolver(cfg.Catalog, log.With(logger.String("component", "catalog"))).WithObserver(m)

	deviceService := device.NewService(device.NewPostgresRepo(dbPool, cfg.DBTimeout), cfg.JWTSecret, cfg.TokenTTL)
	profileService := profile.NewService(profile.NewPostgresRepo(dbPool, cfg.DBTimeout))
	libraryService := library.NewService(library.NewPostgresRepo(dbPool, cfg.DBTimeout))
	feedbackService := feedback.NewService(feedback.NewPostgresRepo(dbPool, cfg.DBTimeout))

	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Close()

	router := newRouter(routerDeps{
		handlers: handlers{
			device:   device.NewHTTPHandler(deviceService, log),
			lookup:   lookup.NewHTTPHandler(lookup.NewService(resolver), profileService, log),
			library:  library.NewHTTPHandler(libraryService, profileService, log),
			profile:  profile.NewHTTPHandler(profileService, log),
			stats:    stats.NewHTTPHandler(libraryService, profileService, log),
			export:   export.NewHTTPHandler(libraryService, log),
			feedback: feedback.NewHTTPHandler(feedbackService, log),
		},
		log:          log,
		metrics:      m,
		auth:         httpx.AuthMiddleware(cfg.JWTSecret, deviceService),
		rateLimit:    limiter.Middleware,
		ready:        dbPool.Ping,
		corsOrigins:  cfg.CORSAllowedOrigins,
		maxBodyBytes: cfg.MaxBodyBytes,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Catalog.Timeout*2 + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server",
			logger.String("addr", cfg.Addr),
			logger.Strings("catalog_sources", resolver.Sources()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", logger.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Error(err))
	}
}

func mustOpenDB(log logger.Logger, dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal("cannot create db pool", logger.Error(err))
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatal("cannot ping database", logger.String("dsn", redactDSN(dsn)), logger.Error(err))
	}
	log.Info("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
