package appcontext

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/config"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/producer"
	"github.com/RoyceAzure/lab/kitchenhub/internal/ratelimit"
	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

// 沒有 redis/kafka 時退回 process 內的實作
func TestSetUpWithoutRedisAndKafka(t *testing.T) {
	app := &ApplicationContext{Cf: &config.Config{
		ServiceName:       "kitchenhub",
		Env:               "test",
		RateLimitCapacity: 10,
		RateLimitRate:     5,
		AuthTokenKey:      "12345678901234567890123456789012",
	}}
	ctx := context.Background()

	require.NoError(t, app.setUpLogger(ctx))
	require.NoError(t, app.setUpRedis(ctx))
	require.NoError(t, app.setUpProducer(ctx))
	require.NoError(t, app.setUpTokenMaker(ctx))
	require.NoError(t, app.setUpLimiter(ctx))

	require.Nil(t, app.RedisClient)
	require.Nil(t, app.Idempotency)
	require.IsType(t, producer.NoopOrderProducer{}, app.OrderProducer)
	require.IsType(t, &ratelimit.TokenBucket{}, app.Limiter)
	require.NotNil(t, app.stopSweeper)

	require.NoError(t, app.Shutdown(ctx))
}

func TestSetUpRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	app := &ApplicationContext{Cf: &config.Config{
		RedisAddr:         mr.Addr(),
		RateLimitCapacity: 1,
		RateLimitRate:     1,
	}}
	ctx := context.Background()

	require.NoError(t, app.setUpRedis(ctx))
	require.NoError(t, app.setUpLimiter(ctx))
	require.NotNil(t, app.Idempotency)
	require.IsType(t, &ratelimit.RedisTokenBucket{}, app.Limiter)

	require.True(t, app.Limiter.Allow(ctx, "203.0.113.7"))
	require.False(t, app.Limiter.Allow(ctx, "203.0.113.7"))

	require.NoError(t, app.Shutdown(ctx))
}

func TestSetUpTokenMakerInvalidKey(t *testing.T) {
	app := &ApplicationContext{Cf: &config.Config{AuthTokenKey: "short"}}
	require.Error(t, app.setUpTokenMaker(context.Background()))
}

// broker 只接受連線不回應時，寫 log 不能被卡住
func TestSetUpKafkaLogDoesNotBlock(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	app := &ApplicationContext{Cf: &config.Config{
		ServiceName:     "kitchenhub",
		Env:             "test",
		KafkaBrokers:    ln.Addr().String(),
		KafkaOrderTopic: "orders",
		KafkaLogTopic:   "logs",
	}}
	ctx := context.Background()
	require.NoError(t, app.setUpLogger(ctx))
	require.NoError(t, app.setUpProducer(ctx))
	require.NotNil(t, app.logWriter)

	start := time.Now()
	log.Warn().Str("order_id", "ORD-1").Msg("customer copy not updated")
	app.Logger.Info().Msg("request done")
	require.Less(t, time.Since(start), 200*time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	require.NoError(t, app.Shutdown(shutdownCtx))
}
