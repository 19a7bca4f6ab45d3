package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"house31/internal/adapters/cache"
	"house31/internal/adapters/facebook"
	"house31/internal/adapters/store"
	"house31/internal/adapters/taxonomy"
	"house31/internal/adapters/web"
	"house31/internal/config"
	"house31/internal/metrics"
	"house31/internal/pipeline"
	"house31/internal/usecases"
	"house31/pkg/log"
	"house31/pkg/log/transporters"
)

func main() {
	if err := run(); err != nil {
		log.GlobalError("server exited", "error", err)
		log.Default().Close()
		os.Exit(1)
	}
	log.Default().Close()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log)
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := taxonomy.Load(cfg.Sync.TaxonomyPath)
	if err != nil {
		return err
	}

	backend, err := store.Open(ctx, store.Options{
		Backend:         cfg.Storage.Backend,
		Dir:             cfg.Storage.Dir,
		MongoURI:        cfg.Storage.MongoURI,
		MongoDatabase:   cfg.Storage.MongoDatabase,
		MongoCollection: cfg.Storage.MongoCollection,
	})
	if err != nil {
		return err
	}
	defer backend.Close()

	if bs, ok := backend.(*store.BadgerStore); ok {
		go bs.RunGC(ctx, 10*time.Minute)
	}

	var snapshots usecases.SnapshotStore = backend
	if cfg.Storage.CacheTTL > 0 {
		c := cache.NewMemoryCache(backend, cfg.Storage.CacheTTL)
		defer c.Close()
		snapshots = c
	}

	// Initialize adapters
	graph := facebook.NewClient(facebook.Config{
		BaseURL:     cfg.Facebook.BaseURL,
		Version:     cfg.Facebook.Version,
		PageID:      cfg.Facebook.PageID,
		AccessToken: cfg.Facebook.AccessToken,
		Limit:       cfg.Facebook.Limit,
		Timeout:     cfg.Facebook.Timeout,
	}, metrics.BreakerStateChanged)
	if !graph.Configured() {
		log.GlobalWarn("facebook credentials not configured, cron sync will fail")
	}

	// Initialize use cases
	categorizer := pipeline.NewCategorizer(table)
	normalizer := pipeline.NewNormalizer(categorizer)
	syncUC := usecases.NewSyncPostsUseCase(normalizer, snapshots, usecases.WithMetrics(metrics.Recorder{}))
	cronUC := usecases.NewCronSyncUseCase(graph, syncUC)
	statusUC := usecases.NewGetStatusUseCase(snapshots)
	trendingUC := usecases.NewGetTrendingUseCase(snapshots)

	scheduler := usecases.NewScheduler(cronUC, cfg.Sync.Interval)
	if scheduler.Enabled() {
		go func() {
			if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.GlobalError("scheduler stopped", "error", err)
			}
		}()
	}

	// Initialize web
	handlers := web.NewHandlers(syncUC, cronUC, statusUC, trendingUC)
	rateLimiter := web.NewRateLimiter(cfg.Server.RateLimit, time.Minute)
	defer rateLimiter.Close()

	app := web.NewApp("House31")
	web.SetupRoutes(app, handlers, rateLimiter, cfg.Sync.CronSecret)
	if cfg.Sync.CronSecret == "" {
		log.GlobalWarn("cron secret not set, cron endpoint rejects all requests")
	}

	errCh := make(chan error, 1)
	go func() {
		log.GlobalInfo("starting house31",
			"addr", cfg.Server.Addr(),
			"storage", cfg.Storage.Backend,
			"categories", categorizer.Taxonomy().Categories(),
			"sync_interval", cfg.Sync.Interval,
		)
		errCh <- app.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.GlobalInfo("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

func newLogger(cfg config.LogConfig) *log.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.Info
	}

	var t log.Transporter = transporters.NewJSON()
	if cfg.Format == "text" {
		t = transporters.NewConsole()
	}
	return log.New(level, t).With("service", "house31")
}
