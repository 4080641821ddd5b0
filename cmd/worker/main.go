package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"bilingual-quotes/internal/config"
	"bilingual-quotes/internal/handler/http/respond"
	pgRepo "bilingual-quotes/internal/infra/adapter/persistence/postgres"
	"bilingual-quotes/internal/infra/db"
	workerPkg "bilingual-quotes/internal/infra/worker"
	"bilingual-quotes/internal/observability/logging"
	"bilingual-quotes/internal/usecase/stats"
)

// The API process owns migrations. The worker only waits for them.
func waitForMigrations(ctx context.Context, logger *slog.Logger, database *sql.DB) error {
	const probe = "SELECT 1 FROM quotes LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.ExecContext(ctx, probe); err == nil {
			return nil
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
	return errors.New("migrations did not complete in time")
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("stats_cron_schedule", cfg.StatsCronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("refresh_timeout", cfg.RefreshTimeout),
		slog.Int("metrics_port", cfg.MetricsPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	server := workerPkg.NewServer(fmt.Sprintf(":%d", cfg.MetricsPort), database, logger)
	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker server failed", slog.Any("error", err))
		}
	}()

	if err := waitForMigrations(ctx, logger, database); err != nil {
		logger.Error("database schema unavailable", slog.Any("error", err))
		os.Exit(1)
	}

	refresher := stats.NewRefresher(pgRepo.NewQuoteRepo(database), database)
	runRefreshJob(ctx, logger, refresher, cfg)

	c := startCron(ctx, logger, refresher, cfg)
	server.SetReady(true)

	<-ctx.Done()
	logger.Info("shutdown signal received")
	server.SetReady(false)

	// Stop waits for a running refresh to return.
	<-c.Stop().Done()
	<-serverDone
	logger.Info("worker stopped")
}

// startCron schedules the stats refresh in the configured timezone.
func startCron(ctx context.Context, logger *slog.Logger, refresher *stats.Refresher, cfg *config.WorkerConfig) *cron.Cron {
	c := cron.New(cron.WithLocation(cfg.Location()))

	_, err := c.AddFunc(cfg.StatsCronSchedule, func() {
		runRefreshJob(ctx, logger, refresher, cfg)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	logger.Info("worker started",
		slog.String("schedule", cfg.StatsCronSchedule),
		slog.String("timezone", cfg.Timezone))
	return c
}

// runRefreshJob executes a single stats refresh bounded by RefreshTimeout.
func runRefreshJob(parent context.Context, logger *slog.Logger, refresher *stats.Refresher, cfg *config.WorkerConfig) {
	ctx, cancel := context.WithTimeout(parent, cfg.RefreshTimeout)
	defer cancel()

	if _, err := refresher.Refresh(logging.WithLogger(ctx, logger)); err != nil {
		logger.Error("stats refresh failed", slog.String("error", respond.SanitizeError(err)))
	}
}
