package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model/event"
)

const EventTypeHeader = "event_type"

//go:generate mockgen -destination=mock/order_producer.go -package=mock_producer . IOrderEventProducer

// IOrderEventProducer 訂單事件發送
type IOrderEventProducer interface {
	PublishOrderPlaced(ctx context.Context, evt *event.OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, evt *event.OrderStatusChangedEvent) error
}

type OrderProducer struct {
	producer Producer
}

var _ IOrderEventProducer = (*OrderProducer)(nil)

func NewOrderProducer(producer Producer) *OrderProducer {
	if producer == nil {
		panic("NewOrderProducer: producer cannot be nil")
	}
	return &OrderProducer{producer: producer}
}

func (o *OrderProducer) PublishOrderPlaced(ctx context.Context, evt *event.OrderPlacedEvent) error {
	msg, err := prepareEventMessage(evt.OrderID, evt)
	if err != nil {
		return err
	}
	return o.producer.Produce(ctx, []Message{msg})
}

func (o *OrderProducer) PublishOrderStatusChanged(ctx context.Context, evt *event.OrderStatusChangedEvent) error {
	msg, err := prepareEventMessage(evt.OrderID, evt)
	if err != nil {
		return err
	}
	return o.producer.Produce(ctx, []Message{msg})
}

// 以 order_id 當 key，header 帶事件類型給 consumer 分派
func prepareEventMessage(orderID string, evt event.Event) (Message, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s event: %w", evt.Type(), err)
	}

	return Message{
		Key:   []byte(orderID),
		Value: payload,
		Headers: []Header{
			{Key: EventTypeHeader, Value: []byte(evt.Type())},
		},
		Time: time.Now().UTC(),
	}, nil
}

// NoopOrderProducer 沒有設定 kafka 時使用
type NoopOrderProducer struct{}

var _ IOrderEventProducer = NoopOrderProducer{}

func (NoopOrderProducer) PublishOrderPlaced(ctx context.Context, evt *event.OrderPlacedEvent) error {
	return nil
}

func (NoopOrderProducer) PublishOrderStatusChanged(ctx context.Context, evt *event.OrderStatusChangedEvent) error {
	return nil
}
