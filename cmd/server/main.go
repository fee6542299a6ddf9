package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/opryshko/vitryna/internal"
	"github.com/opryshko/vitryna/internal/handler/admin"
	"github.com/opryshko/vitryna/internal/handler/storefront"
	"github.com/opryshko/vitryna/internal/middleware"
	"github.com/opryshko/vitryna/internal/preset"
	"github.com/opryshko/vitryna/internal/router"
	"github.com/opryshko/vitryna/internal/service"
	"github.com/opryshko/vitryna/internal/telemetry"
	"github.com/opryshko/vitryna/internal/upstream"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry error tracking
	sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Enabled:     cfg.Sentry.Enabled,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		SampleRate:  cfg.Sentry.SampleRate,
		Debug:       cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

	// ==========================================================================
	// Initialize preset storage
	// ==========================================================================

	var presetStore preset.Store
	if cfg.Preset.DatabaseURL != "" {
		// Initialize database/sql connection for migrations
		logger.Info("Connecting to preset database...")
		sqlDB, err := sql.Open("pgx", cfg.Preset.DatabaseURL)
		if err != nil {
			return fmt.Errorf("preset database connection failed: %w", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("preset database ping failed: %w", err)
		}

		// Run migrations
		logger.Info("Running database migrations...")
		if err := internal.RunMigrations(sqlDB); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		// Initialize pgx connection pool for application queries
		pool, err := pgxpool.New(ctx, cfg.Preset.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()

		logger.Info("Preset database connection established")
		presetStore = preset.NewPostgresStore(pool)
	} else {
		logger.Info("No preset database configured, presets are kept in memory")
		presetStore = preset.NewMemoryStore()
	}

	// ==========================================================================
	// Initialize upstream client and catalog service
	// ==========================================================================

	upstreamClient := upstream.NewHTTPClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logger)
	logger.Info("Upstream client initialized", "base_url", cfg.Upstream.BaseURL)

	pipelineMetrics := telemetry.NewPipelineMetrics("vitryna")

	catalogService := service.NewCatalogService(
		upstreamClient,
		presetStore,
		logger,
		pipelineMetrics,
		cfg.Catalog.PageSize,
	)
	logger.Info("Catalog service initialized", "page_size", cfg.Catalog.PageSize)

	// ==========================================================================
	// Initialize handlers
	// ==========================================================================

	catalogHandler := storefront.NewCatalogHandler(catalogService, logger)
	categoriesHandler := storefront.NewCategoriesHandler(catalogService, logger)
	productEditHandler := admin.NewProductEditHandler(catalogService, logger)
	presetsHandler := admin.NewPresetsHandler(catalogService, logger)

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("vitryna")

	// Configure security headers
	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		// Relax CSP in development for easier debugging
		securityConfig.ContentSecurityPolicy = ""
		securityConfig.HSTSMaxAge = 0 // Disable HSTS in development
	}

	// Configure rate limiting
	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer rateLimiter.Stop()

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		telemetry.SentryMiddleware(),
		middleware.SecurityHeaders(securityConfig),
		rateLimiter.Middleware,
		router.Logger(logger),
		middleware.WithRequestLogger(logger),
		router.CORS(cfg.CORS.AllowedOrigins),
	)

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Storefront API
	r.Get("/api/catalog", catalogHandler.ServeHTTP)
	r.Get("/api/categories", categoriesHandler.ServeHTTP)

	// Admin API
	r.Get("/api/admin/products/{id}", productEditHandler.ServeHTTP)
	r.Get("/api/admin/presets", presetsHandler.List)
	r.Get("/api/admin/presets/{name}", presetsHandler.Get)
	r.Put("/api/admin/presets/{name}", presetsHandler.Save)

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting catalog server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
