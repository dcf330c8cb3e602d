package redis_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IIdempotencyRepository 以 SetNX 保證同一把 key 在 ttl 內只會被取得一次
type IIdempotencyRepository interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

const DefaultIdempotencyTTL = 24 * time.Hour

type IdempotencyRepo struct {
	client *redis.Client
}

var _ IIdempotencyRepository = (*IdempotencyRepo)(nil)

func NewIdempotencyRepo(client *redis.Client) *IdempotencyRepo {
	return &IdempotencyRepo{client: client}
}

func generateIdempotencyKey(key string) string {
	return fmt.Sprintf("idempotency:%s", key)
}

func (s *IdempotencyRepo) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	ok, err := s.client.SetNX(ctx, generateIdempotencyKey(key), time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire idempotency key %s: %w", key, err)
	}
	return ok, nil
}

// Release 請求失敗時釋放，讓 client 可以用同一把 key 重試
func (s *IdempotencyRepo) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, generateIdempotencyKey(key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key %s: %w", key, err)
	}
	return nil
}
