package producer

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -destination=mock/producer.go -package=mock_producer . Producer

// Producer interface defines the methods that a Kafka producer must implement
type Producer interface {
	// Produce sends messages to Kafka
	Produce(ctx context.Context, msgs []Message) error
	// Close closes the producer
	Close() error
}

// messageWriter 抽出 kafka.Writer 用到的方法，測試時可替換
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaProducer implements the Producer interface
type kafkaProducer struct {
	writer     messageWriter
	cfg        *Config
	closed     atomic.Bool
	retryDelay time.Duration
}

var _ Producer = (*kafkaProducer)(nil)

// New creates a new Kafka producer
func New(cfg *Config) (Producer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		WriteTimeout: cfg.WriteTimeout,
		Async:        false,

		// 重試由 Produce 自己處理
		MaxAttempts: 1,

		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},

		ErrorLogger: errorLogger(cfg),

		Compression: kafka.Snappy,
	}

	return newKafkaProducer(writer, cfg), nil
}

func errorLogger(cfg *Config) kafka.LoggerFunc {
	return func(msg string, args ...interface{}) {
		l := &log.Logger
		if cfg.ErrorLogger != nil {
			l = cfg.ErrorLogger
		}
		l.Error().Str("topic", cfg.Topic).Msgf("kafka producer error: "+msg, args...)
	}
}

func newKafkaProducer(writer messageWriter, cfg *Config) *kafkaProducer {
	return &kafkaProducer{
		writer:     writer,
		cfg:        cfg,
		retryDelay: 200 * time.Millisecond,
	}
}

// Produce implements the Producer interface
// 同步發送消息，會block到所有消息都寫入
func (p *kafkaProducer) Produce(ctx context.Context, msgs []Message) error {
	if p.closed.Load() {
		return NewKafkaError("Produce", p.cfg.Topic, ErrProducerClosed)
	}

	if len(msgs) == 0 {
		return nil
	}

	kafkaMsgs := make([]kafka.Message, len(msgs))
	for i, msg := range msgs {
		kafkaMsgs[i] = msg.ToKafkaMessage()
	}

	var err error
	for attempt := 0; attempt <= p.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return NewKafkaError("Produce", p.cfg.Topic, ctx.Err())
			case <-time.After(p.retryDelay * time.Duration(attempt)):
			}
		}

		if ctx.Err() != nil {
			return NewKafkaError("Produce", p.cfg.Topic, ctx.Err())
		}
		err = p.writer.WriteMessages(ctx, kafkaMsgs...)
		if err == nil {
			return nil
		}

		if !IsTemporary(err) {
			break
		}
	}

	return NewKafkaError("Produce", p.cfg.Topic, err)
}

// Close implements the Producer interface
func (p *kafkaProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
