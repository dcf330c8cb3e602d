package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestTokenBucket(capacity int, rate float64) (*TokenBucket, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	tb := NewTokenBucket(LimiterConfig{Capacity: capacity, Rate: rate})
	tb.now = clock.Now
	return tb, clock
}

func TestTokenBucketCapacity(t *testing.T) {
	tb, _ := newTestTokenBucket(3, 1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.True(t, tb.Allow(ctx, "ip-1"))
	}
	require.False(t, tb.Allow(ctx, "ip-1"))

	// 不同 key 各自計算
	require.True(t, tb.Allow(ctx, "ip-2"))
}

func TestTokenBucketRefill(t *testing.T) {
	tb, clock := newTestTokenBucket(2, 2)
	ctx := context.Background()

	require.True(t, tb.Allow(ctx, "k"))
	require.True(t, tb.Allow(ctx, "k"))
	require.False(t, tb.Allow(ctx, "k"))

	clock.Advance(500 * time.Millisecond)
	require.True(t, tb.Allow(ctx, "k"))
	require.False(t, tb.Allow(ctx, "k"))

	// 不會超過容量
	clock.Advance(time.Hour)
	require.True(t, tb.Allow(ctx, "k"))
	require.True(t, tb.Allow(ctx, "k"))
	require.False(t, tb.Allow(ctx, "k"))
}

func TestTokenBucketConcurrent(t *testing.T) {
	tb, _ := newTestTokenBucket(50, 1)
	ctx := context.Background()

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tb.Allow(ctx, "shared") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(50), allowed.Load())
}

func TestTokenBucketSweep(t *testing.T) {
	tb, clock := newTestTokenBucket(10, 10)
	ctx := context.Background()

	require.True(t, tb.Allow(ctx, "a"))
	require.True(t, tb.Allow(ctx, "b"))
	require.Equal(t, 0, tb.Sweep())

	clock.Advance(2 * time.Second)
	require.Equal(t, 2, tb.Sweep())
}

func TestLimiterConfigNormalize(t *testing.T) {
	cfg := LimiterConfig{}.normalize()
	require.Equal(t, DefaultLimiterConfig(), cfg)
	require.Equal(t, 2*time.Second, cfg.refillTime())
}
