package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/William9701/user-service/config"
	amqpadapter "github.com/William9701/user-service/internal/adapters/amqp"
	"github.com/William9701/user-service/internal/adapters/mailer"
	"github.com/William9701/user-service/internal/adapters/mailworker"
	redisadapter "github.com/William9701/user-service/internal/adapters/redis"
	"github.com/William9701/user-service/internal/data"
	"github.com/William9701/user-service/internal/notify"
	"github.com/William9701/user-service/internal/observability/statsd"
	"github.com/William9701/user-service/internal/password"
	"github.com/William9701/user-service/internal/service"
	"github.com/William9701/user-service/internal/token"
)

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Queue       amqpadapter.Channel
	Logger      *slog.Logger
}

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth    *service.AuthService
	Metrics *statsd.Client
}

// BuildServices wires repositories, adapters, and the auth service.
func BuildServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := buildMetrics(logger, deps.Config.Observability.Metrics)

	issuer, err := token.NewIssuer(deps.Config.Auth.JWTSecret, deps.Config.Auth.TokenTTL)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build token issuer: %w", err)
	}

	opts := service.AuthServiceOptions{
		Users:      data.NewUserRepo(deps.DB),
		Sessions:   redisadapter.NewSessionStore(deps.RedisClient),
		Tokens:     issuer,
		Passwords:  password.NewHasher(deps.Config.Auth.BcryptCost),
		SessionTTL: deps.Config.Auth.SessionTTL,
		Logger:     logger,
		Metrics:    metrics,
	}

	// The publisher is optional: a missing broker degrades registration to
	// "no welcome mail", it never blocks the HTTP service.
	if deps.Queue != nil {
		publisher, pubErr := amqpadapter.NewPublisher(deps.Queue, deps.Config.Queue.Name)
		if pubErr != nil {
			return ServiceContainer{}, fmt.Errorf("build welcome publisher: %w", pubErr)
		}
		opts.Welcome = publisher
	}

	return ServiceContainer{
		Auth:    service.NewAuthService(opts),
		Metrics: metrics,
	}, nil
}

func buildMetrics(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}

// ServiceOrchestrationConfig groups everything needed to run the enabled
// services until shutdown.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Queue    amqpadapter.Channel
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and blocks until a
// shutdown signal arrives or a service fails. SIGINT/SIGTERM trigger a
// graceful stop: the HTTP server drains and the mail worker finishes its
// in-flight message.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if enabled[config.ServiceModeHTTP] {
		server := StartHTTPServer(&HTTPServerConfig{
			Config:   cfg.Config,
			Services: cfg.Services,
			Logger:   logger,
		})
		g.Go(func() error {
			<-ctx.Done()
			return ShutdownHTTPServer(server, logger)
		})
	}

	if enabled[config.ServiceModeMailer] {
		runner, runnerErr := buildMailWorker(cfg, logger)
		if runnerErr != nil {
			stop()
			if waitErr := g.Wait(); waitErr != nil {
				runnerErr = errors.Join(runnerErr, waitErr)
			}
			return fmt.Errorf("build mail worker: %w", runnerErr)
		}
		g.Go(func() error {
			return runner.Run(ctx)
		})
	}

	logger.Info("services started", "services", cfg.Config.Services)
	return g.Wait()
}

func buildMailWorker(cfg *ServiceOrchestrationConfig, logger *slog.Logger) (*mailworker.Runner, error) {
	if cfg.Queue == nil {
		return nil, errors.New("queue connection is required for the mailer service")
	}

	consumer, err := amqpadapter.NewConsumer(cfg.Queue, cfg.Config.Queue.Name, cfg.Config.Mailer.Prefetch)
	if err != nil {
		return nil, err
	}

	sender, err := mailer.NewSMTPSender(cfg.Config.SMTP)
	if err != nil {
		return nil, err
	}

	return mailworker.NewRunner(mailworker.RunnerOptions{
		Source: consumer,
		Sender: sender,
		Policy: notify.RetryPolicy{
			MaxAttempts: cfg.Config.Queue.MaxAttempts,
			Backoff:     cfg.Config.Queue.RetryBackoff,
		},
		Concurrency: cfg.Config.Mailer.Concurrency,
		Logger:      logger,
		Metrics:     cfg.Services.Metrics,
	})
}
