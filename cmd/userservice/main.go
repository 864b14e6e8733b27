package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/William9701/user-service/config"
	"github.com/William9701/user-service/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	cfgPtr := &cfg

	logStartupInfo(ctx, logger, cfgPtr)

	if err = bootstrap.ValidateServiceConfig(cfgPtr); err != nil {
		return err
	}

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	redisClient, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	if err = bootstrap.RunMigrations(ctx, db, cfg.Postgres, logger); err != nil {
		return err
	}

	queue, err := bootstrap.ConnectQueue(cfg.Queue, logger)
	if err != nil {
		if cfg.IsMailerEnabled() {
			return err
		}
		// HTTP-only deployments keep serving without a broker; registration
		// simply skips the welcome enqueue.
		logger.WarnContext(ctx, "message queue unavailable, welcome notifications disabled", "error", err)
		queue = nil
	}
	defer func() {
		if cerr := queue.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close queue failed", "error", cerr)
		}
	}()

	deps := bootstrap.ServiceDeps{
		Config:      cfgPtr,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	}
	if queue != nil {
		deps.Queue = queue.Channel
	}

	services, err := bootstrap.BuildServices(deps)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Metrics.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics sink failed", "error", cerr)
		}
	}()

	orchestration := bootstrap.ServiceOrchestrationConfig{
		Config:   cfgPtr,
		Services: services,
		Logger:   logger,
	}
	if queue != nil {
		orchestration.Queue = queue.Channel
	}
	return bootstrap.RunServicesWithShutdown(&orchestration)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting user service",
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"services", cfg.Services,
	)
}
