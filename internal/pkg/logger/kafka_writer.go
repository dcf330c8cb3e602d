package logger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/producer"
	"github.com/rs/zerolog"
)

var ErrWriterClosed = errors.New("kafka log writer is closed")

const (
	defaultLogBufferSize    = 4096
	defaultLogBatchSize     = 100
	defaultLogFlushInterval = 200 * time.Millisecond
	defaultLogTimeout       = 3 * time.Second
)

type KafkaWriterOption func(*KafkaWriter)

func WithBufferSize(n int) KafkaWriterOption {
	return func(kw *KafkaWriter) {
		if n > 0 {
			kw.bufferSize = n
		}
	}
}

func WithBatchSize(n int) KafkaWriterOption {
	return func(kw *KafkaWriter) {
		if n > 0 {
			kw.batchSize = n
		}
	}
}

func WithFlushInterval(d time.Duration) KafkaWriterOption {
	return func(kw *KafkaWriter) {
		if d > 0 {
			kw.flushInterval = d
		}
	}
}

// WithErrorLogger 送出失敗時的記錄目標，不可以是寫回 kafka 的 logger
func WithErrorLogger(l zerolog.Logger) KafkaWriterOption {
	return func(kw *KafkaWriter) {
		kw.errLogger = l
	}
}

/*
KafkaWriter 把 zerolog 的輸出送進 kafka log topic
Write 只放進 buffer 就返回，由背景 goroutine 批次送出
buffer 滿了直接丟棄該筆，不阻塞呼叫端
*/
type KafkaWriter struct {
	p     producer.Producer
	logID atomic.Int64

	bufferSize    int
	batchSize     int
	flushInterval time.Duration
	timeout       time.Duration
	errLogger     zerolog.Logger

	mu         sync.RWMutex
	closed     bool
	receiverCh chan producer.Message
	isStopped  chan struct{}
	dropped    atomic.Int64
}

func NewKafkaWriter(p producer.Producer, opts ...KafkaWriterOption) *KafkaWriter {
	kw := &KafkaWriter{
		p:             p,
		bufferSize:    defaultLogBufferSize,
		batchSize:     defaultLogBatchSize,
		flushInterval: defaultLogFlushInterval,
		timeout:       defaultLogTimeout,
		errLogger:     zerolog.New(os.Stderr).With().Timestamp().Str("component", "kafka_log_writer").Logger(),
	}
	for _, opt := range opts {
		opt(kw)
	}

	kw.receiverCh = make(chan producer.Message, kw.bufferSize)
	kw.isStopped = make(chan struct{})
	go kw.run()
	return kw
}

func (kw *KafkaWriter) Write(p []byte) (n int, err error) {
	if kw == nil || kw.p == nil {
		return 0, fmt.Errorf("kafka log writer is not init")
	}

	kw.mu.RLock()
	defer kw.mu.RUnlock()
	if kw.closed {
		return 0, ErrWriterClosed
	}

	// key 用遞增序號平均分散到各分區
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(kw.logID.Add(1)))

	// zerolog 會重用 buffer，送出前要複製
	value := make([]byte, len(p))
	copy(value, p)

	select {
	case kw.receiverCh <- producer.Message{Key: key, Value: value, Time: time.Now().UTC()}:
	default:
		kw.dropped.Add(1)
	}
	return len(p), nil
}

// Dropped buffer 滿而丟棄的筆數
func (kw *KafkaWriter) Dropped() int64 {
	return kw.dropped.Load()
}

func (kw *KafkaWriter) run() {
	defer close(kw.isStopped)

	ticker := time.NewTicker(kw.flushInterval)
	defer ticker.Stop()

	batch := make([]producer.Message, 0, kw.batchSize)
	for {
		select {
		case msg, ok := <-kw.receiverCh:
			if !ok {
				kw.flush(batch)
				return
			}
			batch = append(batch, msg)
			if len(batch) >= kw.batchSize {
				kw.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				kw.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (kw *KafkaWriter) flush(batch []producer.Message) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), kw.timeout)
	defer cancel()
	if err := kw.p.Produce(ctx, batch); err != nil {
		kw.errLogger.Error().Err(err).Int("count", len(batch)).Msg("ship logs to kafka failed")
	}
}

// Close 停止接收並送出 buffer 內剩餘的 log，之後關閉 producer
func (kw *KafkaWriter) Close() error {
	kw.mu.Lock()
	if kw.closed {
		kw.mu.Unlock()
		return nil
	}
	kw.closed = true
	close(kw.receiverCh)
	kw.mu.Unlock()

	<-kw.isStopped
	if n := kw.dropped.Load(); n > 0 {
		kw.errLogger.Warn().Int64("dropped", n).Msg("log lines dropped while kafka was slow")
	}
	return kw.p.Close()
}
