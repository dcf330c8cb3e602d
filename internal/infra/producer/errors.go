package producer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/segmentio/kafka-go"
)

var (
	ErrInvalidateParameter = errors.New("invalidate parameter")
	// ErrProducerClosed 表示生產者已關閉
	ErrProducerClosed = errors.New("producer is closed")
)

// KafkaError 代表 Kafka 操作錯誤
type KafkaError struct {
	Operation string
	Topic     string
	Err       error
}

func (e *KafkaError) Error() string {
	return fmt.Sprintf("kafka operation %s on topic %s failed: %v", e.Operation, e.Topic, e.Err)
}

func (e *KafkaError) Unwrap() error {
	return e.Err
}

func NewKafkaError(operation, topic string, err error) error {
	return &KafkaError{
		Operation: operation,
		Topic:     topic,
		Err:       err,
	}
}

// IsConnectionError 判斷是否為連線層錯誤
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		var sysErr syscall.Errno
		if errors.As(netErr.Err, &sysErr) {
			switch sysErr {
			case syscall.ECONNREFUSED,
				syscall.ECONNRESET,
				syscall.ECONNABORTED,
				syscall.ENETUNREACH,
				syscall.ENETRESET,
				syscall.ETIMEDOUT:
				return true
			}
		}
		return netErr.Timeout()
	}
	return false
}

// IsTemporary 可以重試的錯誤
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}

	var tempErr interface{ Temporary() bool }
	if errors.As(err, &tempErr) {
		return tempErr.Temporary()
	}
	return IsConnectionError(err)
}
