package notify

import (
	"context"
	"time"
)

// Result is the outcome of running a delivery operation under a RetryPolicy.
type Result int

const (
	// ResultDelivered means an attempt succeeded.
	ResultDelivered Result = iota
	// ResultFailed means an attempt failed but attempts remain. It is only
	// observed through OnFailure callbacks, never returned by Run.
	ResultFailed
	// ResultExhausted means every attempt failed.
	ResultExhausted
)

// String returns the result name for logging.
func (r Result) String() string {
	switch r {
	case ResultDelivered:
		return "delivered"
	case ResultFailed:
		return "failed"
	case ResultExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// RetryPolicy bounds delivery attempts for a single message handling cycle.
// Retries are sequential and blocking within that cycle; the policy is
// transport-agnostic and leaves ack/nack decisions to the caller.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// Backoff is the pause between consecutive attempts.
	Backoff time.Duration
}

// OnFailure is invoked after each failed attempt with the 1-based attempt
// number and the attempt's error.
type OnFailure func(attempt int, err error)

// Run executes op until it succeeds or attempts are exhausted. It returns
// ResultDelivered or ResultExhausted, with the last attempt error in the
// exhausted case. Context cancellation cuts the cycle short and counts as
// exhaustion.
func (p RetryPolicy) Run(ctx context.Context, op func(context.Context) error, onFailure OnFailure) (Result, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return ResultExhausted, err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return ResultDelivered, nil
		}
		if onFailure != nil {
			onFailure(attempt, lastErr)
		}

		if attempt < attempts && p.Backoff > 0 {
			select {
			case <-ctx.Done():
				return ResultExhausted, ctx.Err()
			case <-time.After(p.Backoff):
			}
		}
	}
	return ResultExhausted, lastErr
}
