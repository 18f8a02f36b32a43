package engine

import (
	"context"

	"golang.org/x/time/rate"
)

// fetchLimiter paces outbound upstream requests. nil = unlimited.
var fetchLimiter *rate.Limiter

func initLimiter(rps float64) {
	if rps <= 0 {
		fetchLimiter = nil
		return
	}
	fetchLimiter = rate.NewLimiter(rate.Limit(rps), 2)
}

// WaitFetchSlot blocks until the next upstream request may be sent.
func WaitFetchSlot(ctx context.Context) error {
	if fetchLimiter == nil {
		return nil
	}
	return fetchLimiter.Wait(ctx)
}
