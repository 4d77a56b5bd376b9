package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultMinInterval is the spacing between remote model calls.
const DefaultMinInterval = 1200 * time.Millisecond

// Gate serializes callers so that successive Wait returns are at least
// interval apart. A caller that arrives early blocks while holding the gate,
// so concurrent callers queue behind it.
type Gate struct {
	interval time.Duration

	mu    sync.Mutex
	last  time.Time
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewGate creates a Gate. A non-positive interval never blocks.
func NewGate(interval time.Duration) *Gate {
	return &Gate{interval: interval, now: time.Now, sleep: sleepContext}
}

// Interval returns the configured minimum spacing.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

// Wait blocks until the interval since the previous call has elapsed.
// It returns the context error if ctx ends first; the slot is not consumed then.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.interval > 0 && !g.last.IsZero() {
		if wait := g.interval - g.now().Sub(g.last); wait > 0 {
			if err := g.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	g.last = g.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
