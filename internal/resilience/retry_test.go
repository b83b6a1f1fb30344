package resilience

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoVal_SucceedsFirstTry(t *testing.T) {
	t.Parallel()

	calls := 0
	val, err := DoVal(context.Background(), RetryConfig{MaxAttempts: 3}, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 1, calls)
}

func TestDoVal_RetriesTransient(t *testing.T) {
	t.Parallel()

	calls := 0
	val, err := DoVal(context.Background(), RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		JitterFraction: 0,
	}, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, NewTransientError(errors.New("overloaded"), http.StatusServiceUnavailable)
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 3, calls)
}

func TestDoVal_StopsOnPermanentError(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := DoVal(context.Background(), RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
	}, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("bad request")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoVal_DefaultSingleAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := DoVal(context.Background(), RetryConfig{}, func(ctx context.Context) (int, error) {
		calls++
		return 0, NewTransientError(errors.New("rate limit"), http.StatusTooManyRequests)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "MaxAttempts defaults to 1 (no retries)")
}

func TestDoVal_ContextCancelStopsRetries(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := DoVal(ctx, RetryConfig{
		MaxAttempts:    5,
		InitialBackoff: 10 * time.Millisecond,
	}, func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, NewTransientError(errors.New("timeout"), 0)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoVal_OnRetryCalled(t *testing.T) {
	t.Parallel()

	var attempts []int
	_, _ = DoVal(context.Background(), RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		OnRetry:        func(attempt int, err error) { attempts = append(attempts, attempt) },
	}, func(ctx context.Context) (int, error) {
		return 0, NewTransientError(errors.New("overloaded"), 503)
	})
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(errors.New("invalid api key")))
	assert.True(t, IsTransient(NewTransientError(errors.New("503"), 503)))
	assert.True(t, IsTransient(errors.New("read tcp: connection reset by peer")))
	assert.True(t, IsTransient(errors.New("anthropic: rate limit exceeded")))
	assert.True(t, IsTransient(errors.New("upstream overloaded, try again")))

	// Wrapped transient errors are still recognized.
	wrapped := errors.Join(errors.New("outer"), NewTransientError(errors.New("inner"), 429))
	assert.True(t, IsTransient(wrapped))
}

func TestIsTransientHTTPStatus(t *testing.T) {
	t.Parallel()

	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), "code %d", code)
	}
	for _, code := range []int{200, 201, 400, 401, 403, 404, 422} {
		assert.False(t, IsTransientHTTPStatus(code), "code %d", code)
	}
}

func TestComputeBackoff_CapsAtMax(t *testing.T) {
	t.Parallel()

	cfg := applyDefaults(RetryConfig{
		InitialBackoff: time.Second,
		MaxBackoff:     2 * time.Second,
		Multiplier:     10,
		JitterFraction: 0,
	})
	assert.Equal(t, 2*time.Second, computeBackoff(5, cfg))
}
