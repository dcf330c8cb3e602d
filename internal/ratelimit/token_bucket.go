package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// TokenBucket 單機版，每個 key 一個 bucket
// 取用時才依經過時間補充 token，不需要背景 goroutine
type TokenBucket struct {
	config  LimiterConfig
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

var _ Limiter = (*TokenBucket)(nil)

func NewTokenBucket(config LimiterConfig) *TokenBucket {
	return &TokenBucket{
		config:  config.normalize(),
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (t *TokenBucket) Allow(ctx context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(t.config.Capacity), lastRefill: now}
		t.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens = math.Min(float64(t.config.Capacity), b.tokens+elapsed*t.config.Rate)
		b.lastRefill = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Sweep 移除已補滿的 bucket，避免 key 無限增長
func (t *TokenBucket) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	idle := t.config.refillTime()
	removed := 0
	for key, b := range t.buckets {
		if now.Sub(b.lastRefill) >= idle {
			delete(t.buckets, key)
			removed++
		}
	}
	return removed
}

// RunSweeper 定期呼叫 Sweep 直到 ctx 結束
func (t *TokenBucket) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Sweep()
		}
	}
}
