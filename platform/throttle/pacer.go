// Package throttle provides pacing for outbound calls to upstream services.
// This is part of the platform layer and contains no business logic.
package throttle

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out successive calls to an upstream service. Wait blocks until
// the next call is allowed or the context is cancelled.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer allows one call per interval, built on x/time/rate.
// The first call proceeds immediately.
type IntervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer creates a pacer with the given minimum spacing between calls.
// A non-positive interval disables pacing.
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	if interval <= 0 {
		return &IntervalPacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &IntervalPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call slot is available.
func (p *IntervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NopPacer never waits. Useful in tests.
type NopPacer struct{}

// Wait returns immediately.
func (NopPacer) Wait(context.Context) error { return nil }
