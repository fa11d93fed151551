package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	filedocstore "github.com/himtrails/trip-proxy-api/internal/adapters/file/docstore"
	fileplacesrepo "github.com/himtrails/trip-proxy-api/internal/adapters/file/placesrepo"
	"github.com/himtrails/trip-proxy-api/internal/adapters/httpapi"
	memcache "github.com/himtrails/trip-proxy-api/internal/adapters/memory/itinerarycache"
	plannerclient "github.com/himtrails/trip-proxy-api/internal/adapters/planner/httpclient"
	postgres "github.com/himtrails/trip-proxy-api/internal/adapters/postgres"
	pgdocstore "github.com/himtrails/trip-proxy-api/internal/adapters/postgres/docstore"
	"github.com/himtrails/trip-proxy-api/internal/app/catalog"
	"github.com/himtrails/trip-proxy-api/internal/app/fallback"
	"github.com/himtrails/trip-proxy-api/internal/app/itinerary"
	platformclock "github.com/himtrails/trip-proxy-api/internal/platform/clock"
	"github.com/himtrails/trip-proxy-api/internal/platform/config"
	docstoreport "github.com/himtrails/trip-proxy-api/internal/ports/out/docstore"
)

func main() {
	// Local dev convenience; a missing .env is not an error.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	var (
		store   docstoreport.Store
		cleanup func()
	)
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			logger.Error("invalid postgres config", "err", err)
			os.Exit(1)
		}
		cleanup = pool.Close
		store = pgdocstore.NewStore(pool)
	default:
		store = filedocstore.NewStore(cfg.FallbackPath)
	}
	if cleanup != nil {
		defer cleanup()
	}

	fallbackProvider := fallback.NewProvider(store, logger)
	fallbackProvider.Load(context.Background())

	clk := platformclock.NewSystemClock()
	cache := memcache.NewCache(clk)
	planner := plannerclient.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout, logger)

	itinerarySvc := itinerary.NewService(cache, planner, fallbackProvider, cfg.CacheTTL, itinerary.Policy{
		ServeFreshOnSuccess: cfg.ServeFreshOnSuccess,
		CacheOnSuccess:      cfg.CacheOnSuccess,
		CoalesceRequests:    cfg.CoalesceRequests,
	}, logger)

	catalogSvc := catalog.NewService(fileplacesrepo.NewRepo(cfg.PlacesPath), fallbackProvider)

	api := httpapi.NewServer(itinerarySvc, fallbackProvider, catalogSvc, logger)
	handler := httpapi.NewRouter(api)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("trip proxy listening", "port", cfg.Port, "upstream", cfg.UpstreamURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
