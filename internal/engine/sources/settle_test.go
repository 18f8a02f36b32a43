package sources

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettleReadyAfterTrigger(t *testing.T) {
	var clicked atomic.Bool
	ok := Settle(context.Background(), time.Second, 5*time.Millisecond,
		func(context.Context) error { clicked.Store(true); return nil },
		func(context.Context) bool { return clicked.Load() })
	assert.True(t, ok)
}

func TestSettleRetriesTriggerOnce(t *testing.T) {
	var triggers atomic.Int32
	ok := Settle(context.Background(), 30*time.Millisecond, 5*time.Millisecond,
		func(context.Context) error { triggers.Add(1); return nil },
		func(context.Context) bool { return triggers.Load() >= 2 })
	assert.True(t, ok)
	assert.Equal(t, int32(2), triggers.Load())
}

func TestSettleIsBounded(t *testing.T) {
	var triggers atomic.Int32
	maxWait := 40 * time.Millisecond
	start := time.Now()
	ok := Settle(context.Background(), maxWait, 5*time.Millisecond,
		func(context.Context) error { triggers.Add(1); return nil },
		func(context.Context) bool { return false })
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Equal(t, int32(2), triggers.Load(), "exactly one retry")
	assert.GreaterOrEqual(t, elapsed, 2*maxWait)
	assert.Less(t, elapsed, 2*maxWait+time.Second)
}

func TestSettleFailedTriggerDoesNotWait(t *testing.T) {
	var checks atomic.Int32
	start := time.Now()
	ok := Settle(context.Background(), time.Hour, time.Millisecond,
		func(context.Context) error { return errors.New("button not found") },
		func(context.Context) bool { checks.Add(1); return false })
	assert.False(t, ok)
	assert.Equal(t, int32(2), checks.Load())
	assert.Less(t, time.Since(start), time.Second)
}

func TestSettleStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	ok := Settle(ctx, time.Hour, 5*time.Millisecond, nil, func(context.Context) bool { return false })
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}
