package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket shared by every caller of one upstream. The
// exchange APIs throttle bursts from a single session, so callers wait here
// instead of tripping the upstream's block.
type RateLimiter struct {
	mu             sync.Mutex
	tokens         int
	maxTokens      int
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewRateLimiter allows a burst of maxTokens and one more call per refillInterval.
func NewRateLimiter(maxTokens int, refillInterval time.Duration) *RateLimiter {
	if maxTokens < 1 {
		maxTokens = 1
	}
	return &RateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done. A nil limiter never
// blocks.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil || r.refillInterval <= 0 {
		return ctx.Err()
	}
	for {
		r.mu.Lock()
		r.refill(time.Now())
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		wait := r.refillInterval - time.Since(r.lastRefill)
		r.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RateLimiter) refill(now time.Time) {
	gained := int(now.Sub(r.lastRefill) / r.refillInterval)
	if gained <= 0 {
		return
	}
	r.tokens = min(r.tokens+gained, r.maxTokens)
	r.lastRefill = r.lastRefill.Add(time.Duration(gained) * r.refillInterval)
}
