package whatsapp

import (
	"context"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// rateLimiter encapsulates the local token-bucket rate limiting used to
// avoid hammering the bridge, which proxies a single WhatsApp Web browser
// session and degrades under bursts.
type rateLimiter struct {
	limiter        *rate.Limiter
	isAutoLimiting atomic.Bool
}

// newRateLimiter initializes a rate limiter configured for 10 requests per
// second with a burst of 20, a sensible ceiling for a locally hosted bridge.
func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
	rl.isAutoLimiting.Store(true) // Default to honoring local rate limits
	return rl
}

// Wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) Wait(ctx context.Context) error {
	if !rl.isAutoLimiting.Load() {
		return nil
	}
	return rl.limiter.Wait(ctx)
}

// SetAutoLimiting enables or disables the rate limiter.
func (rl *rateLimiter) SetAutoLimiting(enabled bool) {
	rl.isAutoLimiting.Store(enabled)
}
