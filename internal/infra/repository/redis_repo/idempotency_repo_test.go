package redis_repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIdempotencyRepo(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewIdempotencyRepo(client)
	ctx := context.Background()

	ok, err := repo.Acquire(ctx, "checkout:c-1:k-1", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Acquire(ctx, "checkout:c-1:k-1", time.Hour)
	require.NoError(t, err)
	require.False(t, ok)

	// 不同 key 互不影響
	ok, err = repo.Acquire(ctx, "checkout:c-1:k-2", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, repo.Release(ctx, "checkout:c-1:k-1"))
	ok, err = repo.Acquire(ctx, "checkout:c-1:k-1", 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, DefaultIdempotencyTTL, mr.TTL("idempotency:checkout:c-1:k-1"))

	mr.FastForward(DefaultIdempotencyTTL + time.Second)
	ok, err = repo.Acquire(ctx, "checkout:c-1:k-1", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
}
