package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/football-data/internal/app"
	"github.com/riskibarqy/football-data/internal/config"
	"github.com/riskibarqy/football-data/internal/observability"
	"github.com/riskibarqy/football-data/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	scheduler, err := startSyncScheduler(cfg, application, logger)
	if err != nil {
		logger.Error("start sync scheduler", "error", err)
		os.Exit(1)
	}

	srv := application.HTTPServer()
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error("scheduler shutdown failed", "error", err)
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
		logger.Error("pprof shutdown failed", "error", err)
	}
	if err := application.Close(); err != nil {
		logger.Error("close app", "error", err)
	}
	if err := stopPyroscope(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := shutdownUptrace(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}

	logger.Info("http server stopped")
}

// startSyncScheduler runs the daily refresh at the configured local
// wall-clock time. Disabled installs no jobs and returns nil.
func startSyncScheduler(cfg config.Config, application *app.Application, logger *logging.Logger) (gocron.Scheduler, error) {
	if !cfg.SyncEnabled {
		logger.Info("daily sync disabled", "reason", "SYNC_ENABLED=false")
		return nil, nil
	}

	at, err := time.Parse("15:04", cfg.SyncDailyAt)
	if err != nil {
		return nil, err
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(at.Hour()), uint(at.Minute()), 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
			defer cancel()

			run, err := application.Updates().UpdateAll(ctx)
			if err != nil {
				logger.Error("scheduled sync failed", "error", err)
				return
			}
			logger.Info("scheduled sync finished",
				"day", run.Day,
				"api_calls", run.APICalls,
				"created", run.Sync.Created,
				"updated", run.Sync.Updated,
				"skipped", run.Sync.Skipped,
				"swept", run.Swept.Total(),
			)
		}),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	logger.Info("daily sync scheduled", "at", cfg.SyncDailyAt)
	return scheduler, nil
}
