package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/talentdesk/internal/adapters/http/api"
	"github.com/okian/talentdesk/internal/adapters/http/site"
	"github.com/okian/talentdesk/internal/adapters/http/swagger"
	app "github.com/okian/talentdesk/internal/app"
	"github.com/okian/talentdesk/internal/config"
	"github.com/okian/talentdesk/internal/domain/locale"
	"github.com/okian/talentdesk/pkg/logger"
	"github.com/okian/talentdesk/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		return
	}

	if cfg.LogFormat != string(logger.FormatText) {
		if err := logger.Init(logger.WithFormat(logger.Format(cfg.LogFormat))); err != nil {
			log.Error(ctx, "failed to switch log format", logger.Error(err))
			return
		}
		log = logger.Get()
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := newService(cfg, log)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(cfg, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

func newService(cfg *config.Config, log logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(log),
		app.WithWorkerCount(cfg.NotifyWorkers),
		app.WithQueueSize(cfg.NotifyQueueSize),
		app.WithNotifyRate(cfg.NotifyRatePerSec, cfg.NotifyBurst),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithWizardSessionsMax(cfg.WizardSessionsMax),
		app.WithSimilarLimit(cfg.SimilarLimit),
		app.WithTopMaxLimit(cfg.TopCandidatesMaxLimit),
		app.WithSimulatedLatency(
			time.Duration(cfg.SimulatedLatencyMinMS)*time.Millisecond,
			time.Duration(cfg.SimulatedLatencyMaxMS)*time.Millisecond),
		app.WithSaveNotice(time.Duration(cfg.SaveNoticeMS)*time.Millisecond),
	)
}

// newMux wires the API, the docs and the careers preview onto one mux.
func newMux(cfg *config.Config, svc *app.Service, log logger.Logger) *http.ServeMux {
	fallback, ok := locale.Lookup(cfg.DefaultLocale)
	if !ok {
		fallback = locale.English
	}

	mux := http.NewServeMux()
	swagger.Register(mux)
	site.Register(mux, svc, fallback)
	api.NewServer(svc, api.WithDefaultLocale(fallback), api.WithLogger(log)).Register(mux)
	return mux
}

func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
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

func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats refreshes the queue and candidate gauges.
			_ = svc.GetStats()
		}
	}
}

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
