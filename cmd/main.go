package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"customer-directory/internal/api"
	"customer-directory/internal/batch"
	"customer-directory/internal/config"
	"customer-directory/internal/domain/customer"
	"customer-directory/internal/event"
	"customer-directory/internal/infrastructure/database/postgres"
	"customer-directory/internal/infrastructure/logging"
	"customer-directory/internal/infrastructure/storage/memory"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
)

const statsJobTimeout = 30 * time.Second

// @title Customer Directory API
// @version 1.0
// @description Read-mostly customer directory held in memory, with filtered listing, lookup by id, per-city counts and guarded inserts.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
func main() {
	cfg, logger := initializeApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := initializeStore(ctx, cfg, logger)

	publisher, closePublisher := initializePublisher(cfg, logger)
	defer closePublisher()

	customerService := customer.NewCustomerService(store, publisher, logger)
	statsJob := batch.NewStoreStatsJob(customerService, logger)

	cronScheduler := startBatchJobs(cfg, logger, statsJob)
	router := api.SetupRouter(ctx, customerService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	logger.Info("Application starting...", "data_source", cfg.Data.Source, "port", cfg.Server.Port)

	return cfg, logger
}

// initializeStore seeds the store before the server starts. A failed seed is
// logged and the service starts with an empty directory.
func initializeStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) *memory.Store {
	store := memory.NewStore(logger)

	src, release, err := newSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open customer data source, starting with an empty store", "source", cfg.Data.Source, "error", err)
		return store
	}
	defer release()

	if err := store.Seed(ctx, src); err != nil {
		logger.Error("Failed to load customer data, starting with an empty store", "source", src.Name(), "error", err)
		return store
	}

	n, _ := store.Len(ctx)
	logger.Info("Customer data loaded", "source", src.Name(), "count", n)
	return store
}

func newSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (customer.Source, func(), error) {
	switch cfg.Data.Source {
	case "", config.SourceFile:
		return memory.NewFileSource(cfg.Data.File), func() {}, nil
	case config.SourcePostgres:
		logger.Info("Initializing database connection pool...")
		dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		release := func() {
			logger.Info("Closing database connection pool...")
			dbPool.Close()
		}
		return postgres.NewCustomerSource(dbPool, logger), release, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

func initializePublisher(cfg *config.Config, logger *slog.Logger) (event.EventPublisher, func()) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, customer events will not be published")
		return event.NewNoopPublisher(logger), func() {}
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, customer events will not be published", "error", err)
		return event.NewNoopPublisher(logger), func() {}
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher, customer events will not be published", "error", err)
		conn.Close()
		return event.NewNoopPublisher(logger), func() {}
	}

	return publisher, func() {
		logger.Info("Closing RabbitMQ publisher...")
		if err := publisher.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			logger.Warn("Failed to close RabbitMQ connection", "error", err)
		}
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, statsJob *batch.StoreStatsJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.StatsSchedule
	if scheduleSpec == "" {
		scheduleSpec = "@every 1m"
		logger.Warn("Store statistics schedule not configured, using default", "schedule", scheduleSpec)
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), statsJobTimeout)
		defer cancel()

		if _, runErr := statsJob.Run(ctx); runErr != nil {
			logger.Error("Store statistics job finished with error", "job_name", "StoreStats", slog.Any("error", runErr))
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule store statistics job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled store statistics job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
