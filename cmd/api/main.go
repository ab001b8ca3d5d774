package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/vendo-storefront/api/controllers"
	"github.com/angelmondragon/vendo-storefront/api/routes"
	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	"github.com/angelmondragon/vendo-storefront/internal/cron"
	"github.com/angelmondragon/vendo-storefront/internal/customization"
	"github.com/angelmondragon/vendo-storefront/internal/session"
	"github.com/angelmondragon/vendo-storefront/pkg/config"
	"github.com/angelmondragon/vendo-storefront/pkg/db"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
	"github.com/angelmondragon/vendo-storefront/pkg/metrics"
	"github.com/angelmondragon/vendo-storefront/pkg/migrate"
	"github.com/angelmondragon/vendo-storefront/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []io.Closer
	defer func() {
		var closeErr error
		for i := len(closers) - 1; i >= 0; i-- {
			closeErr = multierr.Append(closeErr, closers[i].Close())
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error releasing resources", closeErr)
		}
	}()

	readiness := map[string]controllers.Pinger{}

	var dbClient *db.Client
	if !cfg.Catalog.UsesSeed() {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		requireResource(ctx, logg, "database", err)
		closers = append(closers, dbClient)
		readiness["db"] = dbClient

		err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
		requireResource(ctx, logg, "dev migrations", err)
	}

	var redisClient *redis.Client
	if cfg.Session.UsesRedis() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		closers = append(closers, redisClient)
		readiness["redis"] = redisClient
	}

	var loader catalog.Loader = catalog.NewSeedLoader(cfg.Catalog.SeedPath)
	if dbClient != nil {
		loader = catalog.NewRepository(dbClient.DB())
	}
	provider, err := catalog.NewProvider(loader, logg)
	requireResource(ctx, logg, "catalog provider", err)
	_, err = provider.Refresh(ctx)
	requireResource(ctx, logg, "catalog", err)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sweepers := map[string]session.Sweeper{}
	var (
		sessions           cart.Sessions
		customizationStore session.Store[customization.Snapshot]
	)
	if cfg.Session.UsesRedis() {
		sessions, err = cart.NewRedisSessions(redisClient, cfg.Session.TTL)
		requireResource(ctx, logg, "cart sessions", err)
		customizationStore, err = customization.NewRedisStore(redisClient, cfg.Session.TTL)
		requireResource(ctx, logg, "customization sessions", err)
	} else {
		var cartSweeper session.Sweeper
		sessions, cartSweeper = cart.NewMemorySessions(cfg.Session.TTL)
		memoryStore := customization.NewMemoryStore(cfg.Session.TTL)
		customizationStore = memoryStore
		sweepers["carts"] = cartSweeper
		sweepers["customizations"] = memoryStore
	}

	carts, err := cart.NewService(cart.ServiceParams{
		Sessions: sessions,
		Catalog:  provider,
		Logger:   logg,
		Metrics:  metrics.NewCartMetrics(reg),
	})
	requireResource(ctx, logg, "cart service", err)

	customizations, err := customization.NewRegistry(customization.RegistryParams{
		Store:   customizationStore,
		Catalog: provider,
		Cart:    carts,
		Logger:  logg,
	})
	requireResource(ctx, logg, "customization registry", err)

	jobs, err := buildCron(cfg, logg, reg, provider, sweepers)
	requireResource(ctx, logg, "cron service", err)
	go func() {
		if err := jobs.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "cron loop stopped unexpectedly", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx = logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"instance":     id,
		"sessionStore": cfg.Session.Store,
		"seeded":       cfg.Catalog.UsesSeed(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(routes.Params{
			Config:         cfg,
			Logger:         logg,
			Catalog:        provider,
			Carts:          carts,
			Customizations: customizations,
			HTTPMetrics:    metrics.NewHTTPMetrics(reg),
			MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			Readiness:      readiness,
		}),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			stop()
			return
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "graceful shutdown failed", err)
		return
	}
	logg.Info(shutdownCtx, "api server shut down gracefully")
}

// buildCron schedules jobs that act on this replica's memory, so the lock is per process.
func buildCron(cfg *config.Config, logg *logger.Logger, reg prometheus.Registerer, provider *catalog.Provider, sweepers map[string]session.Sweeper) (*cron.Service, error) {
	registry := cron.NewRegistry()
	if !cfg.Catalog.UsesSeed() {
		refresh, err := cron.NewCatalogRefreshJob(cron.CatalogRefreshJobParams{Logger: logg, Provider: provider})
		if err != nil {
			return nil, err
		}
		if err := registry.Register(refresh); err != nil {
			return nil, err
		}
	}
	if len(sweepers) > 0 {
		sweep, err := cron.NewSessionSweepJob(cron.SessionSweepJobParams{Logger: logg, Sweepers: sweepers})
		if err != nil {
			return nil, err
		}
		if err := registry.Register(sweep); err != nil {
			return nil, err
		}
	}

	return cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     cron.NewLocalLock(),
		Metrics:  metrics.NewCronJobMetrics(reg),
		Interval: cfg.Catalog.RefreshInterval,
	})
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
