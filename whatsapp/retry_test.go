package whatsapp

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func newPolicy() *DefaultRetryPolicy {
	return &DefaultRetryPolicy{
		MaxRetries:  3,
		BackoffBase: 100 * time.Millisecond,
		BackoffMax:  1 * time.Second,
		Multiplier:  2.0,
	}
}

func respWithStatus(status int) *http.Response {
	return &http.Response{StatusCode: status, Header: http.Header{}}
}

func TestDefaultRetryPolicy_ShouldRetry(t *testing.T) {
	tests := []struct {
		name    string
		resp    *http.Response
		err     error
		attempt int
		want    bool
	}{
		{"network error", nil, fmt.Errorf("connection refused"), 0, true},
		{"429", respWithStatus(429), nil, 0, true},
		{"500", respWithStatus(500), nil, 0, true},
		{"503", respWithStatus(503), nil, 1, true},
		{"200", respWithStatus(200), nil, 0, false},
		{"400", respWithStatus(400), nil, 0, false},
		{"404", respWithStatus(404), nil, 0, false},
		{"attempts exhausted", respWithStatus(500), nil, 3, false},
		{"nil response without error", nil, nil, 0, false},
	}

	policy := newPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delay, got := policy.ShouldRetry(tt.resp, tt.err, tt.attempt)
			if got != tt.want {
				t.Errorf("ShouldRetry() = %v, want %v", got, tt.want)
			}
			if got && delay < 0 {
				t.Errorf("expected non-negative delay, got %v", delay)
			}
		})
	}
}

func TestDefaultRetryPolicy_HonorsRetryAfter(t *testing.T) {
	policy := newPolicy()

	resp := respWithStatus(429)
	resp.Header.Set("Retry-After", "2")

	delay, retry := policy.ShouldRetry(resp, nil, 0)
	if !retry {
		t.Fatal("expected retry on 429")
	}
	if delay != 2*time.Second {
		t.Errorf("expected Retry-After to win over backoff, got %v", delay)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"empty", "", 0},
		{"seconds", "5", 5 * time.Second},
		{"seconds with whitespace", " 10 ", 10 * time.Second},
		{"zero seconds", "0", 0},
		{"negative seconds", "-3", 0},
		{"capped at one hour", "7200", time.Hour},
		{"garbage", "not-a-duration", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRetryAfter(tt.value); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseRetryAfter_HTTPDate(t *testing.T) {
	future := time.Now().Add(30 * time.Second).UTC().Format(http.TimeFormat)

	got := parseRetryAfter(future)
	if got <= 0 || got > 30*time.Second {
		t.Errorf("expected delay in (0, 30s], got %v", got)
	}

	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(past); got != 0 {
		t.Errorf("expected 0 for past date, got %v", got)
	}
}

func TestCalculateBackoff_StaysWithinBounds(t *testing.T) {
	base := 100 * time.Millisecond
	max := 1 * time.Second

	for attempt := 0; attempt < 20; attempt++ {
		got := calculateBackoff(attempt, base, max, 2.0)
		if got < 0 {
			t.Errorf("attempt %d: negative backoff %v", attempt, got)
		}
		if got > max {
			t.Errorf("attempt %d: backoff %v exceeds max %v", attempt, got, max)
		}
	}
}

func TestCalculateBackoff_ZeroConfigDefaults(t *testing.T) {
	// Degenerate configuration must not produce a zero-wait hot loop cap.
	got := calculateBackoff(5, 0, 0, 0)
	if got < 0 || got > 30*time.Second {
		t.Errorf("expected defaulted backoff within (0, 30s], got %v", got)
	}
}

func TestCalculateBackoff_GrowthTrend(t *testing.T) {
	base := 10 * time.Millisecond
	max := 10 * time.Second

	// Full jitter makes individual samples random; compare averages over
	// enough samples to observe the exponential trend.
	average := func(attempt int) time.Duration {
		var total time.Duration
		const samples = 500
		for i := 0; i < samples; i++ {
			total += calculateBackoff(attempt, base, max, 2.0)
		}
		return total / samples
	}

	if a0, a4 := average(0), average(4); a4 <= a0 {
		t.Errorf("expected average backoff to grow with attempts: attempt0=%v attempt4=%v", a0, a4)
	}
}
