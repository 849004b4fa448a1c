// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "vendormatch-workers/internal/common/errors"
	"vendormatch-workers/internal/common/logger"
)

func newRetryClient(t *testing.T) *Client {
	t.Helper()
	return &Client{
		retry: RetryConfig{
			MaxRetries:   2,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
			Multiplier:   2.0,
		},
		logger: logger.NewTestLogger(t).WithFields(map[string]interface{}{"component": "camunda_client"}),
	}
}

func TestExecuteWithRetryRecovers(t *testing.T) {
	client := newRetryClient(t)

	attempts := 0
	err := client.ExecuteWithRetry(context.Background(), "topology", func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("rpc error: code = Unavailable desc = connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetryNonRetryableStops(t *testing.T) {
	client := newRetryClient(t)

	attempts := 0
	err := client.ExecuteWithRetry(context.Background(), "topology", func(ctx context.Context) error {
		attempts++
		return errors.New("rpc error: code = InvalidArgument desc = bad request")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Contains(t, err.Error(), "EXTERNAL_SERVICE_ERROR")
}

func TestExecuteWithRetryExhausted(t *testing.T) {
	client := newRetryClient(t)

	attempts := 0
	err := client.ExecuteWithRetry(context.Background(), "topology", func(ctx context.Context) error {
		attempts++
		return errors.New("rpc error: code = Unavailable desc = transport is closing")
	})
	require.Error(t, err)
	assert.Equal(t, 3, attempts)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Contains(t, stdErr.Details, "exhausted 2 retries")
}

func TestExecuteWithRetryContextCancelled(t *testing.T) {
	client := newRetryClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.ExecuteWithRetry(ctx, "topology", func(ctx context.Context) error {
		return errors.New("unavailable")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEOUT_ERROR")
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"unavailable", errors.New("rpc error: code = Unavailable"), true},
		{"deadline", errors.New("context deadline exceeded"), true},
		{"resource exhausted", errors.New("resource exhausted"), true},
		{"invalid argument", errors.New("rpc error: code = InvalidArgument"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableZeebeError(tt.err))
		})
	}
}
