package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// bucket 狀態存在 redis hash，多個服務實例共用同一個額度
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3]) -- ms
	local ttl = tonumber(ARGV[4])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local currentTokens = tonumber(bucket[1])
	local lastRefill = tonumber(bucket[2])

	-- key 不存在時以滿的 bucket 開始
	if currentTokens == nil then
		currentTokens = capacity
		lastRefill = now
	end

	local elapsedSeconds = (now - lastRefill) / 1000
	if elapsedSeconds > 0 then
		currentTokens = math.min(capacity, currentTokens + elapsedSeconds * rate)
	end

	local allowed = 0
	if currentTokens >= 1 then
		currentTokens = currentTokens - 1
		allowed = 1
	end

	redis.call('HSET', key, 'tokens', tostring(currentTokens), 'last_refill', now)
	redis.call('EXPIRE', key, ttl)
	return allowed
`)

type RedisTokenBucket struct {
	config LimiterConfig
	client redis.Scripter
	ttl    int64
	now    func() time.Time
}

var _ Limiter = (*RedisTokenBucket)(nil)

func NewRedisTokenBucket(client redis.Scripter, config LimiterConfig) *RedisTokenBucket {
	if client == nil {
		panic("NewRedisTokenBucket: redis client cannot be nil")
	}
	config = config.normalize()
	return &RedisTokenBucket{
		config: config,
		client: client,
		ttl:    int64(math.Ceil(config.refillTime().Seconds())) + 1,
		now:    time.Now,
	}
}

func generateRateLimitKey(key string) string {
	return fmt.Sprintf("ratelimit:%s", key)
}

// Allow redis 異常時放行，只記 log
func (r *RedisTokenBucket) Allow(ctx context.Context, key string) bool {
	result, err := tokenBucketScript.Run(
		ctx,
		r.client,
		[]string{generateRateLimitKey(key)},
		r.config.Capacity,
		r.config.Rate,
		r.now().UnixMilli(),
		r.ttl,
	).Int64()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis rate limiter unavailable, request allowed")
		return true
	}
	return result == 1
}
