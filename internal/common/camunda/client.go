// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"vendormatch-workers/internal/common/errors"
	"vendormatch-workers/internal/common/logger"
)

// ClientConfig holds connection settings for the Zeebe gateway.
type ClientConfig struct {
	GatewayAddress string
	PlaintextConn  bool
	KeepAlive      time.Duration
}

// RetryConfig controls backoff behaviour for retryable gateway calls.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}
}

// Client wraps the Zeebe client with retry handling and error mapping.
type Client struct {
	zbClient zbc.Client
	config   ClientConfig
	retry    RetryConfig
	logger   logger.Logger
}

func NewClient(cfg ClientConfig, retry RetryConfig, log logger.Logger) (*Client, error) {
	zbClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.PlaintextConn,
		KeepAlive:              cfg.KeepAlive,
	})
	if err != nil {
		return nil, errors.NewExternalServiceError("camunda", err)
	}

	return &Client{
		zbClient: zbClient,
		config:   cfg,
		retry:    retry,
		logger:   log.WithFields(map[string]interface{}{"component": "camunda_client"}),
	}, nil
}

// Zeebe returns the underlying client for job worker registration.
func (c *Client) Zeebe() zbc.Client {
	return c.zbClient
}

// ExecuteWithRetry runs fn with exponential backoff on retryable gateway
// errors. Non-retryable errors return immediately.
func (c *Client) ExecuteWithRetry(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	delay := c.retry.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying Camunda operation", map[string]interface{}{
				"operation": operation,
				"attempt":   attempt,
				"delay":     delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return errors.NewTimeoutError(operation, ctx.Err())
			}
			delay = time.Duration(float64(delay) * c.retry.Multiplier)
			if delay > c.retry.MaxDelay {
				delay = c.retry.MaxDelay
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !isRetryableZeebeError(lastErr) {
			return mapZeebeError(operation, lastErr)
		}
	}

	return mapZeebeError(operation, fmt.Errorf("exhausted %d retries: %w", c.retry.MaxRetries, lastErr))
}

// HealthCheck verifies gateway connectivity via the topology endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.zbClient.NewTopologyCommand().Send(ctx)
	if err != nil {
		return errors.NewExternalServiceError("camunda", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.zbClient.Close()
}

func isRetryableZeebeError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"unavailable",
		"deadline exceeded",
		"resource exhausted",
		"connection refused",
		"transport is closing",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func mapZeebeError(operation string, err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadline exceeded"):
		return errors.NewTimeoutError(operation, err)
	case strings.Contains(msg, "not found"):
		return errors.NewResourceNotFoundError("camunda", operation)
	default:
		return errors.NewExternalServiceError("camunda", err)
	}
}
