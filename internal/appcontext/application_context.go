package appcontext

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/api"
	"github.com/RoyceAzure/lab/kitchenhub/internal/api/handler"
	"github.com/RoyceAzure/lab/kitchenhub/internal/api/router"
	"github.com/RoyceAzure/lab/kitchenhub/internal/auth/token"
	"github.com/RoyceAzure/lab/kitchenhub/internal/config"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/producer"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/redis_client"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/redis_decorator"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/logger"
	"github.com/RoyceAzure/lab/kitchenhub/internal/ratelimit"
	"github.com/RoyceAzure/lab/kitchenhub/internal/service"
	"github.com/RoyceAzure/lab/kitchenhub/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const rateLimitSweepInterval = time.Minute

type ApplicationContext struct {
	Cf     *config.Config
	Logger zerolog.Logger

	DbDao       *db.UnifiedDBImpl
	RedisClient *redis.Client
	CatalogRepo db.ICatalogRepository
	Idempotency redis_repo.IIdempotencyRepository

	OrderKafkaProducer producer.Producer
	LogKafkaProducer   producer.Producer
	OrderProducer      producer.IOrderEventProducer
	EventPublisher     *service.EventPublisher

	TokenMaker token.Maker
	Limiter    ratelimit.Limiter

	AccountService  service.IAccountService
	CatalogService  service.ICatalogService
	CartService     service.ICartService
	CheckoutService service.ICheckoutService
	OrderService    service.IOrderService

	Router *chi.Mux

	tracerShutdown telemetry.ShutdownFunc
	stopSweeper    context.CancelFunc
	logWriter      *logger.KafkaWriter
}

func NewApplicationContext(ctx context.Context, cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}

	err := app.Init(ctx)
	if err != nil {
		// 已建立的連線要釋放
		app.Shutdown(context.Background())
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"logger", app.setUpLogger},
		{"tracer", app.setUpTracer},
		{"database", app.setUpDb},
		{"redis", app.setUpRedis},
		{"kafka producer", app.setUpProducer},
		{"token maker", app.setUpTokenMaker},
		{"rate limiter", app.setUpLimiter},
		{"services", app.setUpServices},
		{"router", app.setUpRouter},
	}

	for _, step := range steps {
		log.Info().Str("step", step.name).Msg("start setup")
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("setup %s: %w", step.name, err)
		}
		log.Info().Str("step", step.name).Msg("finish setup")
	}
	return nil
}

// 先輸出到 stdout，kafka log topic 就緒後再重建一次
func (app *ApplicationContext) setUpLogger(ctx context.Context) error {
	app.Logger = logger.New(app.loggerConfig())
	return nil
}

func (app *ApplicationContext) loggerConfig() logger.Config {
	return logger.Config{
		ServiceName: app.Cf.ServiceName,
		Env:         app.Cf.Env,
		Level:       app.Cf.LogLevel,
		Console:     app.Cf.LogConsole,
	}
}

func (app *ApplicationContext) setUpTracer(ctx context.Context) error {
	shutdown, err := telemetry.InitTracer(ctx, telemetry.Config{
		ServiceName: app.Cf.ServiceName,
		Env:         app.Cf.Env,
		Endpoint:    app.Cf.OtelEndpoint,
	})
	if err != nil {
		return err
	}
	app.tracerShutdown = shutdown
	return nil
}

func (app *ApplicationContext) setUpDb(ctx context.Context) error {
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbDao = db.NewUnifiedDB(conn)

	if app.Cf.DbAutoMigrate {
		if err := app.DbDao.InitMigrate(); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}
	app.CatalogRepo = app.DbDao
	return nil
}

// 沒有設定 redis 時商品直接讀 db，結帳不檢查 Idempotency-Key
func (app *ApplicationContext) setUpRedis(ctx context.Context) error {
	if !app.Cf.RedisEnabled() {
		log.Warn().Msg("REDIS_ADDR not set, product cache and checkout idempotency disabled")
		return nil
	}

	client, err := redis_client.Connect(ctx, app.Cf.RedisAddr,
		redis_client.WithPassword(app.Cf.RedisPassword),
		redis_client.WithDB(app.Cf.RedisDB),
	)
	if err != nil {
		return err
	}

	app.RedisClient = client
	app.CatalogRepo = redis_decorator.NewCacheAsideCatalogRepo(app.DbDao, redis_repo.NewProductCacheRepo(client, app.Cf.ProductCacheTTL))
	app.Idempotency = redis_repo.NewIdempotencyRepo(client)
	return nil
}

func (app *ApplicationContext) setUpProducer(ctx context.Context) error {
	if !app.Cf.KafkaEnabled() {
		log.Warn().Msg("KAFKA_BROKERS not set, order events are not published")
		app.OrderProducer = producer.NoopOrderProducer{}
		app.EventPublisher = service.NewEventPublisher(app.OrderProducer)
		return nil
	}

	orderProducer, err := producer.New(producer.DefaultConfig(app.Cf.Brokers(), app.Cf.KafkaOrderTopic))
	if err != nil {
		return err
	}
	app.OrderKafkaProducer = orderProducer
	app.OrderProducer = producer.NewOrderProducer(orderProducer)
	app.EventPublisher = service.NewEventPublisher(app.OrderProducer)

	if app.Cf.KafkaLogTopic != "" {
		// log producer 自身的錯誤只寫 stderr，不再繞回 kafka
		stderrLogger := logger.NewStderr(app.loggerConfig())
		logCfg := producer.DefaultConfig(app.Cf.Brokers(), app.Cf.KafkaLogTopic)
		logCfg.ErrorLogger = &stderrLogger
		logProducer, err := producer.New(logCfg)
		if err != nil {
			return err
		}
		app.LogKafkaProducer = logProducer
		app.logWriter = logger.NewKafkaWriter(logProducer, logger.WithErrorLogger(stderrLogger))
		app.Logger = logger.New(app.loggerConfig(), app.logWriter)
	}
	return nil
}

func (app *ApplicationContext) setUpTokenMaker(ctx context.Context) error {
	tokenMaker, err := token.NewPasetoMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return err
	}
	app.TokenMaker = tokenMaker
	return nil
}

// 有 redis 時多個實例共用額度，否則每個實例各自計算
func (app *ApplicationContext) setUpLimiter(ctx context.Context) error {
	cfg := ratelimit.LimiterConfig{
		Capacity: app.Cf.RateLimitCapacity,
		Rate:     app.Cf.RateLimitRate,
	}
	if app.RedisClient != nil {
		app.Limiter = ratelimit.NewRedisTokenBucket(app.RedisClient, cfg)
		return nil
	}

	bucket := ratelimit.NewTokenBucket(cfg)
	sweepCtx, cancel := context.WithCancel(context.Background())
	app.stopSweeper = cancel
	go bucket.RunSweeper(sweepCtx, rateLimitSweepInterval)
	app.Limiter = bucket
	return nil
}

func (app *ApplicationContext) setUpServices(ctx context.Context) error {
	app.AccountService = service.NewAccountService(app.DbDao, app.DbDao, app.DbDao, app.TokenMaker, app.Cf.AccessTokenDuration)
	app.CatalogService = service.NewCatalogService(app.CatalogRepo)
	app.CartService = service.NewCartService(app.DbDao, app.CatalogRepo, app.DbDao)
	// 結帳以 db 即時商品決定歸屬，不經快取
	app.CheckoutService = service.NewCheckoutService(app.DbDao, app.DbDao, app.DbDao, app.EventPublisher)
	app.OrderService = service.NewOrderService(app.DbDao, app.EventPublisher)
	return nil
}

func (app *ApplicationContext) setUpRouter(ctx context.Context) error {
	server := api.NewServer(
		handler.NewAccountHandler(app.AccountService),
		handler.NewProductHandler(app.CatalogService),
		handler.NewCartHandler(app.CartService),
		handler.NewCheckoutHandler(app.CheckoutService, app.Idempotency),
		handler.NewOrderHandler(app.OrderService),
	)

	app.Router = router.SetupRouter(router.Dependencies{
		Server:     server,
		TokenMaker: app.TokenMaker,
		Resolver:   app.AccountService,
		Limiter:    app.Limiter,
		Logger:     &app.Logger,

		TrustProxyHeaders: app.Cf.TrustProxyHeaders,
	})
	return nil
}

/*
Shutdown 依建立的相反順序釋放資源
未送出的訂單事件先等待完成，log producer 最後關閉
*/
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Info().Msg("start application shutdown")

	done := make(chan error, 1)
	go func() {
		var errs []error

		if app.EventPublisher != nil {
			log.Info().Msg("waiting for pending order events...")
			app.EventPublisher.Wait()
		}

		if app.stopSweeper != nil {
			app.stopSweeper()
		}

		if app.OrderKafkaProducer != nil {
			if err := app.OrderKafkaProducer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close order producer: %w", err))
			}
		}

		if app.RedisClient != nil {
			if err := app.RedisClient.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close redis: %w", err))
			}
		}

		if app.DbDao != nil {
			if sqlDB, err := app.DbDao.GetDB().DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					errs = append(errs, fmt.Errorf("close database: %w", err))
				}
			}
		}

		if app.tracerShutdown != nil {
			if err := app.tracerShutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
			}
		}

		log.Info().Msg("application shutdown complete")

		if app.logWriter != nil {
			// 之後的 log 只剩 stdout
			app.Logger = logger.New(app.loggerConfig())
			if err := app.logWriter.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close log producer: %w", err))
			}
		}
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
