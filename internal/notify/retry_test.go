package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicy_FirstAttemptSucceeds(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}

	calls := 0
	result, err := policy.Run(context.Background(), func(context.Context) error {
		calls++
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, ResultDelivered, result)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_FailTwiceThenSucceed(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}

	calls := 0
	var failures []int
	result, err := policy.Run(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("smtp unavailable")
		}
		return nil
	}, func(attempt int, _ error) {
		failures = append(failures, attempt)
	})

	require.NoError(t, err)
	assert.Equal(t, ResultDelivered, result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, failures)
}

func TestRetryPolicy_Exhausted(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}

	sentinel := errors.New("smtp unavailable")
	calls := 0
	result, err := policy.Run(context.Background(), func(context.Context) error {
		calls++
		return sentinel
	}, nil)

	assert.Equal(t, ResultExhausted, result)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, sentinel)
}

func TestRetryPolicy_ZeroAttemptsDefaultsToOne(t *testing.T) {
	policy := RetryPolicy{}

	calls := 0
	result, _ := policy.Run(context.Background(), func(context.Context) error {
		calls++
		return errors.New("boom")
	}, nil)

	assert.Equal(t, ResultExhausted, result)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_CanceledContext(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	result, err := policy.Run(ctx, func(context.Context) error {
		calls++
		return nil
	}, nil)

	assert.Equal(t, ResultExhausted, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "delivered", ResultDelivered.String())
	assert.Equal(t, "failed", ResultFailed.String())
	assert.Equal(t, "exhausted", ResultExhausted.String())
}

func TestJobRoundTrip(t *testing.T) {
	data, err := EncodeJob(Job{Email: "user@example.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"user@example.com"}`, string(data))

	job, err := DecodeJob(data)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", job.Email)
}

func TestDecodeJob_Poison(t *testing.T) {
	_, err := DecodeJob([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeJob([]byte(`{"email":""}`))
	assert.Error(t, err)

	_, err = DecodeJob([]byte(`{}`))
	assert.Error(t, err)
}
