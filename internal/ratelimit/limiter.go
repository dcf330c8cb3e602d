package ratelimit

import (
	"context"
	"time"
)

// Limiter 依 key 判斷請求是否放行
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type LimiterConfig struct {
	Capacity int     // bucket 最大 token 數
	Rate     float64 // 每秒補充 token 數
}

func DefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Capacity: 100,
		Rate:     50,
	}
}

// 設定不合法時回到預設值
func (c LimiterConfig) normalize() LimiterConfig {
	def := DefaultLimiterConfig()
	if c.Capacity <= 0 {
		c.Capacity = def.Capacity
	}
	if c.Rate <= 0 {
		c.Rate = def.Rate
	}
	return c
}

// refillTime bucket 從空到滿需要的時間
func (c LimiterConfig) refillTime() time.Duration {
	return time.Duration(float64(c.Capacity) / c.Rate * float64(time.Second))
}
