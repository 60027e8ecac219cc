package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/storefront/internal"
	"github.com/dukerupert/storefront/internal/billing"
	"github.com/dukerupert/storefront/internal/cache"
	"github.com/dukerupert/storefront/internal/cookie"
	"github.com/dukerupert/storefront/internal/events"
	"github.com/dukerupert/storefront/internal/handler/api"
	"github.com/dukerupert/storefront/internal/handler/webhook"
	"github.com/dukerupert/storefront/internal/middleware"
	"github.com/dukerupert/storefront/internal/repository"
	"github.com/dukerupert/storefront/internal/router"
	"github.com/dukerupert/storefront/internal/routes"
	"github.com/dukerupert/storefront/internal/service"
	"github.com/dukerupert/storefront/internal/telemetry"
	"github.com/dukerupert/storefront/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "storefront"

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer flushSentry()

	// Migrations run over database/sql with the pgx driver
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if version, err := internal.MigrationVersion(sqlDB); err == nil {
		logger.Info("Database migrations completed", "version", version)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := repository.NewStore(pool)

	var invalidator service.CacheInvalidator = cache.NoopInvalidator{}
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		invalidator = cache.NewRedisInvalidator(rdb, logger)
		logger.Info("Dashboard cache invalidation enabled", "addr", cfg.Redis.Addr)
	} else {
		logger.Warn("REDIS_ADDR not set, dashboard cache invalidation disabled")
	}

	var publisher service.EventPublisher
	if cfg.NATS.URL != "" {
		nc, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, logger)
		if err != nil {
			return err
		}
		defer nc.Close()
		publisher = nc
		logger.Info("Cart event publishing enabled", "subject_prefix", cfg.NATS.SubjectPrefix)
	}

	stripeConfig := billing.StripeConfig{
		APIKey:         cfg.Stripe.SecretKey,
		WebhookSecret:  cfg.Stripe.WebhookSecret,
		MaxRetries:     3,
		TimeoutSeconds: 30,
		Transport:      &telemetry.HTTPTransport{},
	}
	gateway, err := billing.NewStripeGateway(stripeConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize Stripe gateway: %w", err)
	}
	logger.Info("Stripe gateway initialized", "test_mode", stripeConfig.IsTestMode())

	telemetry.InitBusinessMetrics(metricsNamespace)

	// Services
	eventLog := service.NewCartEventLog(store, publisher, logger)
	cartService := service.NewCartService(store, eventLog, logger)
	mergeService := service.NewMergeService(store, logger)
	checkoutService := service.NewCheckoutService(store, gateway, eventLog, service.CheckoutConfig{
		Currency:            cfg.Stripe.Currency,
		AllowedCountries:    cfg.Stripe.AllowedCountries,
		SuccessURL:          cfg.ClientURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:           cfg.ClientURL + "/cancel",
		PlaceholderImageURL: cfg.Stripe.PlaceholderImageURL,
	}, logger)
	fulfillmentService := service.NewFulfillmentService(store, gateway, eventLog, invalidator, logger)

	if cfg.Reports.Enabled {
		reportWorker := worker.NewAbandonmentWorker(eventLog, worker.Config{
			Interval: cfg.Reports.Interval,
			Window:   cfg.Reports.Window,
		}, logger)
		go func() {
			if err := reportWorker.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("abandonment worker stopped", "error", err)
			}
		}()
	}

	// HTTP
	cookies := cookie.NewConfig(cfg.Auth.SessionCookieName, cfg.Auth.CookieDomain, cfg.SecureCookies())
	verifier := middleware.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	metrics := middleware.NewMetrics(metricsNamespace, prometheus.DefaultRegisterer)
	checkoutLimiter := middleware.NewRateLimiter(middleware.CheckoutRateLimiterConfig())
	defer checkoutLimiter.Stop()

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.SecurityHeaders(middleware.APISecurityHeadersConfig(cfg.IsProduction())),
		router.Logger(logger),
	)

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		Identity: middleware.Identity(verifier, cookies),
		RequestContext: []router.Middleware{
			middleware.WithRequestLogger(logger),
			telemetry.SentryContextMiddleware(middleware.AccountLabel),
		},
		CartHandler:      api.NewCartHandler(cartService, mergeService, cookies),
		CheckoutHandler:  api.NewCheckoutHandler(checkoutService),
		AnalyticsHandler: api.NewAnalyticsHandler(eventLog),
		CheckoutLimiter:  checkoutLimiter.Middleware,
	})
	routes.RegisterWebhookRoutes(r, routes.WebhookDeps{
		StripeHandler: webhook.NewStripeHandler(fulfillmentService, logger).HandleWebhook,
	})
	routes.RegisterOpsRoutes(r, routes.OpsDeps{
		Health:  healthHandler(pool),
		Metrics: metrics.Handler(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router.CORS(cfg.CORSOrigins)(r),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// healthHandler reports 503 when the database is unreachable.
func healthHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
