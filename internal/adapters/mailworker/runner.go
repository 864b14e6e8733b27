// Package mailworker runs the welcome mail consumer loop.
package mailworker

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/William9701/user-service/internal/notify"
	"github.com/William9701/user-service/internal/observability/statsd"
	"github.com/William9701/user-service/internal/ports"
)

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Source      notify.DeliverySource
	Sender      ports.WelcomeSender
	Policy      notify.RetryPolicy
	Concurrency int
	Logger      *slog.Logger
	Metrics     statsd.Sink
}

// Runner consumes welcome jobs and drives each one through the retry
// policy, translating the outcome into an ack or a requeue.
type Runner struct {
	source      notify.DeliverySource
	sender      ports.WelcomeSender
	policy      notify.RetryPolicy
	concurrency int
	logger      *slog.Logger
	metrics     statsd.Sink
}

// NewRunner creates a mail worker runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Source == nil {
		return nil, errors.New("delivery source is required")
	}
	if opts.Sender == nil {
		return nil, errors.New("welcome sender is required")
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{
		source:      opts.Source,
		sender:      opts.Sender,
		policy:      opts.Policy,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}, nil
}

// Run consumes deliveries until the context is cancelled or the source
// closes. Cancellation is a clean shutdown, not an error.
func (r *Runner) Run(ctx context.Context) error {
	deliveries, err := r.source.Deliveries(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("mail worker started",
		"concurrency", r.concurrency,
		"max_attempts", r.policy.MaxAttempts,
	)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < r.concurrency; i++ {
		g.Go(func() error {
			for msg := range deliveries {
				r.handle(ctx, msg)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	r.logger.Info("mail worker stopped")
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

// handle processes a single delivery. Malformed payloads are acked so they
// never cycle through the queue again; send failures burn the bounded
// in-cycle attempts, then the message goes back to the broker once.
func (r *Runner) handle(ctx context.Context, msg notify.Delivery) {
	job, err := notify.DecodeJob(msg.Body())
	if err != nil {
		r.logger.Warn("dropping malformed welcome job", "error", err)
		r.count("mailer.job.poison")
		if ackErr := msg.Ack(); ackErr != nil {
			r.logger.Error("ack failed for malformed job", "error", ackErr)
		}
		return
	}

	result, err := r.policy.Run(ctx, func(ctx context.Context) error {
		return r.sender.Send(ctx, job.Email)
	}, func(attempt int, err error) {
		r.logger.Warn("welcome mail attempt failed",
			"email", job.Email,
			"attempt", attempt,
			"error", err,
		)
	})

	switch result {
	case notify.ResultDelivered:
		r.logger.Info("welcome mail delivered", "email", job.Email)
		r.count("mailer.job.delivered")
		if ackErr := msg.Ack(); ackErr != nil {
			r.logger.Error("ack failed after delivery", "email", job.Email, "error", ackErr)
		}
	default:
		r.logger.Error("welcome mail attempts exhausted, requeueing",
			"email", job.Email,
			"attempts", r.policy.MaxAttempts,
			"error", err,
		)
		r.count("mailer.job.exhausted")
		if nackErr := msg.NackRequeue(); nackErr != nil {
			r.logger.Error("nack failed", "email", job.Email, "error", nackErr)
		}
	}
}

func (r *Runner) count(name string) {
	if r.metrics == nil {
		return
	}
	r.metrics.Count(name, 1, nil)
}
