package producer

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// Header 代表 Kafka 消息的標頭
type Header struct {
	Key   string
	Value []byte
}

// Message 代表一個 Kafka 消息
// Key 相同會進到同一個分區，訂單事件以 order_id 當 key 保證同一張訂單的順序
type Message struct {
	Key     []byte
	Value   []byte
	Headers []Header
	Time    time.Time
}

// ToKafkaMessage converts our Message to kafka-go Message
func (m *Message) ToKafkaMessage() kafka.Message {
	headers := make([]kafka.Header, len(m.Headers))
	for i, h := range m.Headers {
		headers[i] = kafka.Header{
			Key:   h.Key,
			Value: h.Value,
		}
	}

	return kafka.Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: headers,
		Time:    m.Time,
	}
}

// Header 依 key 取值，找不到回傳 nil
func (m *Message) Header(key string) []byte {
	for _, h := range m.Headers {
		if h.Key == key {
			return h.Value
		}
	}
	return nil
}
