package whatsapp

import (
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RetryPolicy decides whether a failed attempt should be retried and how
// long to wait before the next one. resp may be nil when err is non-nil.
type RetryPolicy interface {
	ShouldRetry(resp *http.Response, err error, attempt int) (time.Duration, bool)
}

// DefaultRetryPolicy retries transient failures (network errors, timeouts,
// 429 and 5xx responses) with exponential backoff and full jitter. A
// Retry-After header on 429/503 responses takes precedence over the
// computed backoff.
type DefaultRetryPolicy struct {
	MaxRetries  int
	BackoffBase time.Duration
	BackoffMax  time.Duration
	Multiplier  float64
}

// ShouldRetry implements the RetryPolicy interface.
func (p *DefaultRetryPolicy) ShouldRetry(resp *http.Response, err error, attempt int) (time.Duration, bool) {
	if attempt >= p.MaxRetries {
		return 0, false
	}

	if err != nil {
		// Network errors and timeouts are retryable; context cancellation
		// is handled by the caller before the policy is consulted.
		return calculateBackoff(attempt, p.BackoffBase, p.BackoffMax, p.Multiplier), true
	}

	if resp == nil {
		return 0, false
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		if delay := parseRetryAfter(resp.Header.Get("Retry-After")); delay > 0 {
			return delay, true
		}
		return calculateBackoff(attempt, p.BackoffBase, p.BackoffMax, p.Multiplier), true
	}

	return 0, false
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds format and HTTP-date format.
// Delays are capped at 1 hour.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if seconds > 0 {
			delay := time.Duration(seconds) * time.Second
			if delay > time.Hour {
				delay = time.Hour
			}
			return delay
		}
		return 0
	}

	if t, err := http.ParseTime(value); err == nil {
		delay := time.Until(t)
		if delay > 0 && delay <= time.Hour {
			return delay
		}
	}

	return 0
}

// calculateBackoff computes the duration to wait before the next retry
// attempt using exponential backoff with full jitter to avoid thundering
// herd.
func calculateBackoff(attempt int, base, max time.Duration, multiplier float64) time.Duration {
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	if max <= 0 {
		max = 30 * time.Second
	}
	if multiplier <= 1 {
		multiplier = 2.0
	}

	// Prevent overflow on pathological attempt counts.
	if attempt > 30 {
		attempt = 30
	}

	// Exponential backoff: base * multiplier^attempt
	backoff := float64(base) * math.Pow(multiplier, float64(attempt))

	// Cap at maximum backoff
	if backoff > float64(max) || backoff < 0 {
		backoff = float64(max)
	}

	// Apply full jitter
	// jitter = rand_between(0, backoff)
	jitter := rand.Float64() * backoff

	return time.Duration(jitter)
}
