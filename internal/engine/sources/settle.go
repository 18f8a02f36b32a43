package sources

import (
	"context"
	"time"
)

const defaultSettleInterval = 250 * time.Millisecond

// Settle runs trigger, then polls ready every interval until it reports
// true or maxWait elapses. If the page has not settled by then, trigger
// runs once more and ready is polled for another maxWait. Settle never
// waits longer than 2*maxWait and reports whether ready became true.
// A nil trigger only polls. When trigger fails nothing was set in motion,
// so that attempt ends after a single ready check.
func Settle(ctx context.Context, maxWait, interval time.Duration, trigger func(context.Context) error, ready func(context.Context) bool) bool {
	if interval <= 0 {
		interval = defaultSettleInterval
	}
	for attempt := 0; attempt < 2; attempt++ {
		if trigger != nil {
			if err := trigger(ctx); err != nil {
				if ready(ctx) {
					return true
				}
				continue
			}
		}
		if poll(ctx, maxWait, interval, ready) {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
	}
	return false
}

// poll checks ready until it succeeds, maxWait passes, or ctx ends.
func poll(ctx context.Context, maxWait, interval time.Duration, ready func(context.Context) bool) bool {
	deadline := time.NewTimer(maxWait)
	defer deadline.Stop()
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		if ready(ctx) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return ready(ctx)
		case <-tick.C:
		}
	}
}
