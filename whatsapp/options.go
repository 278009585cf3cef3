package whatsapp

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client used for requests.
// If this is not provided, a default http.Client with a 30 second timeout is used.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithBaseURL overrides the default bridge base URL (http://localhost:3000).
// A trailing slash is stripped.
func WithBaseURL(url string) Option {
	return func(client *Client) {
		client.baseURL = url
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
// By default, this is 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of retries for transient failures.
// By default, the client will retry up to 3 times.
func WithMaxRetries(retries int) Option {
	return func(client *Client) {
		client.maxRetries = retries
	}
}

// WithBackoffBase sets the base duration for exponential backoff during retries.
// By default, this is 500 milliseconds.
func WithBackoffBase(base time.Duration) Option {
	return func(client *Client) {
		client.backoffBase = base
	}
}

// WithBackoffMax sets the maximum duration for exponential backoff during retries.
// By default, this is 30 seconds.
func WithBackoffMax(max time.Duration) Option {
	return func(client *Client) {
		client.backoffMax = max
	}
}

// WithBackoffMultiplier sets the growth factor applied between retry attempts.
// By default, this is 2.0.
func WithBackoffMultiplier(multiplier float64) Option {
	return func(client *Client) {
		client.backoffMultiplier = multiplier
	}
}

// WithRetryPolicy replaces the default retry policy entirely. When set, the
// WithMaxRetries / WithBackoff* options are ignored.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(client *Client) {
		client.retryPolicy = policy
	}
}

// WithRateLimiting enables or disables client-side rate limiting.
// This is primarily used for testing and benchmarking.
func WithRateLimiting(enabled bool) Option {
	return func(client *Client) {
		client.rateLimiter.SetAutoLimiting(enabled)
	}
}

// WithLogger attaches a structured logger. The client emits debug-level
// records for retries; a nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithMetrics attaches a Prometheus metrics collector. A nil collector
// disables instrumentation.
func WithMetrics(metrics *MetricsCollector) Option {
	return func(client *Client) {
		client.metrics = metrics
	}
}
