package producer

import (
	"time"

	"github.com/rs/zerolog"
)

// Config represents the configuration for a Kafka producer
type Config struct {
	Brokers []string
	Topic   string

	BatchSize    int
	BatchTimeout time.Duration
	// -1 等待所有副本確認
	RequiredAcks  int
	RetryAttempts int
	WriteTimeout  time.Duration

	// ErrorLogger 為 nil 時用全域 log.Logger
	// 負責送 log 的 producer 要給不經 kafka 的 logger
	ErrorLogger *zerolog.Logger
}

// DefaultConfig returns a Config with default settings
func DefaultConfig(brokers []string, topic string) *Config {
	return &Config{
		Brokers:       brokers,
		Topic:         topic,
		BatchSize:     100,
		BatchTimeout:  50 * time.Millisecond,
		RequiredAcks:  -1,
		RetryAttempts: 3,
		WriteTimeout:  5 * time.Second,
	}
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return NewKafkaError("Validate", c.Topic, ErrInvalidateParameter)
	}
	if c.Topic == "" {
		return NewKafkaError("Validate", c.Topic, ErrInvalidateParameter)
	}
	if c.RetryAttempts < 0 {
		c.RetryAttempts = 0
	}
	return nil
}
