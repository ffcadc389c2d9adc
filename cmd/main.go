package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/ufcradar/internal/adapters/http/api"
	"github.com/okian/ufcradar/internal/adapters/http/site"
	"github.com/okian/ufcradar/internal/adapters/http/swagger"
	"github.com/okian/ufcradar/internal/adapters/repository"
	"github.com/okian/ufcradar/internal/adapters/watch"
	service "github.com/okian/ufcradar/internal/app"
	"github.com/okian/ufcradar/internal/config"
	"github.com/okian/ufcradar/pkg/logger"
	"github.com/okian/ufcradar/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load config", logger.Error(err))
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	cache := repository.NewCache(newSources(cfg), repository.WithLogger(logger.Named("repository")))
	if missing := cache.Sources().Missing(); len(missing) > 0 {
		loggerInstance.Warn(ctx, "data sources missing; radar queries will fail until they appear",
			logger.String("data_dir", cfg.DataDir),
			logger.Any("missing", missing),
		)
	}

	svc := newService(cfg, cache)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Watch the data directory so refreshed exports are picked up without a restart.
	if cfg.WatchData {
		w, err := startWatcher(ctx, cfg, cache, svc)
		if err != nil {
			loggerInstance.Warn(ctx, "data watcher disabled", logger.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := w.Shutdown(shutdownCtx); err != nil {
					loggerInstance.Warn(ctx, "data watcher shutdown failed", logger.Error(err))
				}
			}()
		}
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// newSources resolves the configured CSV exports against the data dir.
func newSources(cfg *config.Config) repository.Sources {
	return repository.Sources{
		Events:   cfg.Path(cfg.EventsFile),
		Results:  cfg.Path(cfg.ResultsFile),
		Stats:    cfg.Path(cfg.StatsFile),
		Fighters: cfg.Path(cfg.FightersFile),
	}
}

func newService(cfg *config.Config, store service.Store) *service.Service {
	return service.New(store,
		service.WithLogger(logger.Named("service")),
		service.WithDefaultWindow(cfg.DefaultWindow),
		service.WithMaxWindow(cfg.MaxWindow),
		service.WithWarmCache(cfg.WarmCache),
	)
}

// newMux registers the API, docs and chart routes.
func newMux(ctx context.Context, svc *service.Service) *http.ServeMux {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc, api.WithLogger(logger.Named("api")))
	apiServer.Register(ctx, mux)
	return mux
}

func startWatcher(ctx context.Context, cfg *config.Config, cache *repository.Cache, svc *service.Service) (*watch.Watcher, error) {
	src := cache.Sources()
	paths := []string{src.Events, src.Results, src.Stats}
	if src.Fighters != "" {
		paths = append(paths, src.Fighters)
	}
	w, err := watch.New(paths, svc,
		watch.WithDebounce(cfg.WatchDebounce()),
		watch.WithLogger(logger.Named("watch")),
	)
	if err != nil {
		return nil, err
	}
	go w.Run(ctx)
	return w, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
