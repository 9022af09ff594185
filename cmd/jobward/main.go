package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/config"
	httpdelivery "github.com/jobward/jobward/internal/delivery/http"
	"github.com/jobward/jobward/internal/job"
	"github.com/jobward/jobward/internal/jobs"
	"github.com/jobward/jobward/internal/lock"
	"github.com/jobward/jobward/internal/publisher"
	"github.com/jobward/jobward/internal/repository/postgres"
	redisrepo "github.com/jobward/jobward/internal/repository/redis"
	"github.com/jobward/jobward/internal/runner"
	"github.com/jobward/jobward/internal/scheduler"
	"github.com/jobward/jobward/internal/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting jobward")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to PostgreSQL
	dbPool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()
	if err := dbPool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping PostgreSQL", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL")

	// Connect to Redis
	redisOpts, err := goredis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Fatal("Invalid Redis URL", zap.Error(err))
	}
	redisClient := goredis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	// Execution event publisher (optional)
	var events publisher.Publisher = publisher.Nop{}
	if cfg.RabbitMQ.URL != "" {
		events, err = publisher.NewRabbitMQPublisher(cfg.RabbitMQ.URL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize RabbitMQ publisher", zap.Error(err))
		}
		defer events.Close()
		logger.Info("Connected to RabbitMQ")
	}

	// Storage and lock
	ledger := postgres.NewPostgresExecutionLedger(dbPool)
	lockStore := redisrepo.NewRedisLockStore(redisClient)
	guard := lock.NewGuard(lockStore, logger)

	// Job registry
	registry := job.NewRegistry()
	retention := jobs.NewRetentionJob(ledger, time.Duration(cfg.Jobs.RetentionDays)*24*time.Hour, logger)
	if err := registry.Register(&job.Definition{
		Name:     "execution-retention",
		Runnable: retention,
		Schedule: cfg.Jobs.RetentionSchedule,
		LockTTL:  5 * time.Minute,
	}); err != nil {
		logger.Fatal("Failed to register retention job", zap.Error(err))
	}

	// Use cases
	exec := runner.New(logger)
	runUC := usecase.NewRunJobUsecase(registry, ledger, exec, events, logger)
	getUC := usecase.NewGetExecutionUsecase(ledger, logger)
	listUC := usecase.NewListExecutionsUsecase(ledger, logger)

	// Scheduler: every replica fires the same schedule; the lock guard
	// keeps each tick on a single instance.
	sched := scheduler.New(guard, runUC, cfg.Jobs.DefaultLockTTL, logger)
	for _, def := range registry.List() {
		if err := sched.Add(def); err != nil {
			logger.Fatal("Failed to schedule job", zap.String("job", def.Name), zap.Error(err))
		}
	}
	if cfg.Jobs.SchedulerEnabled {
		sched.Start()
		defer sched.Stop()
	}

	// HTTP server
	healthChecks := map[string]httpdelivery.HealthCheck{
		"postgres": func(ctx context.Context) error { return dbPool.Ping(ctx) },
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}
	router := httpdelivery.NewRouter(runUC, getUC, listUC, registry, healthChecks, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
			cancel()
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("Stopped")
}
