package scrape

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle enforces the mandatory delay between fetches against the source
// site using a token bucket with no bursting. It is safe for concurrent use,
// so parallel workers still respect the site-wide rate.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a Throttle allowing one fetch per interval.
// A non-positive interval disables throttling.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next fetch is allowed.
// Returns an error if the context is canceled before the wait completes.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}
