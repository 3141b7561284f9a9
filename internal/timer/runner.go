package timer

import (
	"context"
	"time"
)

// Runner is the periodic tick source for an Engine. It keeps a ticker only
// while the engine is running, so Pause stops further ticks until Start.
type Runner struct {
	engine   *Engine
	interval time.Duration
}

// NewRunner creates a runner ticking every interval (one second when
// interval is not positive).
func NewRunner(engine *Engine, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{engine: engine, interval: interval}
}

// Run drives the engine until ctx is cancelled. Ticks are delivered from a
// single goroutine, one at a time.
func (r *Runner) Run(ctx context.Context) error {
	var (
		ticker *time.Ticker
		tickC  <-chan time.Time
	)
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
	}
	syncTicker := func() {
		running := r.engine.Running()
		switch {
		case running && ticker == nil:
			ticker = time.NewTicker(r.interval)
			tickC = ticker.C
		case !running:
			stop()
		}
	}
	defer stop()

	syncTicker()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.engine.changes():
			syncTicker()
		case now := <-tickC:
			r.engine.Tick(now)
		}
	}
}
