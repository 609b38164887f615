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

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	_ "lending-engine/docs"

	"lending-engine/internal/api"
	"lending-engine/internal/batch"
	"lending-engine/internal/config"
	"lending-engine/internal/domain/billing"
	"lending-engine/internal/domain/job"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/event"
	"lending-engine/internal/infrastructure/database/postgres"
	"lending-engine/internal/infrastructure/lock"
	"lending-engine/internal/infrastructure/logging"
	"lending-engine/internal/pkg/clock"
)

// @title Lending Engine API
// @version 1.0
// @description This is the API documentation for the Lending Engine service.
// @termsOfService http://lending-engine.com/terms/

// @contact.name API Support
// @contact.url http://lending-engine.com/support
// @contact.email support@lending-engine.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)
	rabbitMQConn := setupRabbitMQ(cfg, logger)
	redisClient := initializeRedisClient(cfg, logger)

	deps, systemDateClock, tracker := initializeServices(cfg, rabbitMQConn, redisClient, dbPool, logger)

	cronScheduler := startBatchJobs(cfg, logger, tracker, systemDateClock)
	router := api.SetupRouter(deps, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeServices(cfg *config.Config, rabbitConn *amqp.Connection, redisClient *redis.Client,
	dbPool *pgxpool.Pool, logger *slog.Logger) (api.Dependencies, *clock.SystemDateClock, job.ExecutionTracker) {
	logger.Info("Initializing application components...")

	loanRepo := postgres.NewLoanRepository(dbPool, logger)
	billingRepo := postgres.NewBillingRepository(dbPool, logger)
	jobRepo := postgres.NewJobRepository(dbPool, logger)
	systemDateRepo := postgres.NewSystemDateRepository(dbPool, logger)

	systemDateClock := clock.NewSystemDateClock(systemDateRepo, logger)

	var publisher event.Publisher = event.NoopPublisher{}
	if rabbitConn != nil {
		p, err := event.NewRabbitMQEventPublisher(rabbitConn, cfg.RabbitMQ.ExchangeName, logger)
		if err != nil {
			logger.Error("Failed to initialize event publisher, continuing without events", "error", err)
		} else {
			publisher = p
		}
	}

	var sweepLock job.SweepLock
	if redisClient != nil {
		sweepLock = lock.NewRedisSweepLock(redisClient, logger)
	}

	loanService := loan.NewLoanService(loanRepo, systemDateClock, publisher, logger)
	paymentService := loan.NewPaymentService(loanRepo, systemDateClock, publisher, logger)
	sweepEngine := billing.NewSweepEngine(billingRepo, systemDateClock, logger)
	tracker := job.NewExecutionTracker(jobRepo, sweepEngine, systemDateClock, sweepLock, publisher, logger)

	deps := api.Dependencies{
		LoanService:     loanService,
		PaymentService:  paymentService,
		BillingRepo:     billingRepo,
		Tracker:         tracker,
		SystemDateClock: systemDateClock,
	}
	return deps, systemDateClock, tracker
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

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection, redisClient *redis.Client,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	closeRabbitMQConnection(rabbitConn, logger)
	closeRedisClient(redisClient, logger)
	shutdownHTTPServer(srv, serverErrors, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn != nil && !rabbitConn.IsClosed() {
		logger.Info("Closing RabbitMQ connection...")
		if err := rabbitConn.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
		} else {
			logger.Info("RabbitMQ connection closed.")
		}
	} else if rabbitConn == nil {
		logger.Info("RabbitMQ connection was not established, skipping close.")
	} else {
		logger.Info("RabbitMQ connection already closed, skipping close.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server shutdown initiated.")
		}
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
}

func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis is disabled via configuration, sweep locking will be skipped.")
		return nil
	}

	logger.Info("Initializing Redis client...")
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if status := rdb.Ping(ctx); status.Err() != nil {
		logger.Error("Failed to connect to Redis, continuing without sweep locking", "error", status.Err(), "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		return nil
	}

	logger.Info("Redis client connected successfully.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient != nil {
		logger.Info("Closing Redis client connection...")
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close Redis client connection gracefully", "error", err)
		} else {
			logger.Info("Redis client connection closed.")
		}
	} else {
		logger.Info("Redis client was not initialized, skipping close.")
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, tracker job.ExecutionTracker, systemDateClock *clock.SystemDateClock) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	billingJob := batch.NewBillingSweepJob(tracker, logger)
	dateJob := batch.NewSystemDateAdvanceJob(systemDateClock, logger)

	billingSchedule := cfg.Batch.BillingSchedule
	if billingSchedule == "" {
		billingSchedule = "0 1 * * *"
		logger.Warn("Batch billing schedule not configured, using default", "schedule", billingSchedule)
	}
	billingTimeout := cfg.Batch.BillingTimeout
	if billingTimeout <= 0 {
		billingTimeout = 1 * time.Hour
	}

	jobID, err := c.AddJob(billingSchedule, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "BillingSweep")
		jobLogger.Info("Cron triggered: Running billing sweep job.")

		ctx, cancel := context.WithTimeout(context.Background(), billingTimeout)
		defer cancel()

		if runErr := billingJob.Run(ctx); runErr != nil {
			jobLogger.Error("Billing sweep job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Billing sweep job finished successfully.")
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule billing sweep job", "schedule", billingSchedule, slog.Any("error", err))
	} else {
		logger.Info("Scheduled billing sweep job", "schedule", billingSchedule, "job_id", jobID)
	}

	dateSchedule := cfg.Batch.SystemDateSchedule
	if dateSchedule == "" {
		dateSchedule = "0 0 * * *"
	}
	dateJobID, err := c.AddJob(dateSchedule, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		if runErr := dateJob.Run(ctx); runErr != nil {
			logger.Error("System date advance job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule system date advance job", "schedule", dateSchedule, slog.Any("error", err))
	} else {
		logger.Info("Scheduled system date advance job", "schedule", dateSchedule, "job_id", dateJobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	retryCount := 5
	for i := 1; i <= retryCount; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", retryCount),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i*2) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", retryCount, err)
}

func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) *amqp.Connection {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ is disabled via configuration, events will not be published.")
		return nil
	}

	rabbitMQURI := fmt.Sprintf("amqp://%s:%d", cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	if cfg.RabbitMQ.Username != "" && cfg.RabbitMQ.Password != "" {
		rabbitMQURI = fmt.Sprintf("amqp://%s:%s@%s:%d", cfg.RabbitMQ.Username, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	}

	conn, err := connectRabbitMQ(rabbitMQURI, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, continuing without events", "error", err)
		return nil
	}
	return conn
}
