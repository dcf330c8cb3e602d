package service

import (
	"context"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model/event"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/producer"
	"github.com/rs/zerolog/log"
)

const defaultPublishTimeout = 5 * time.Second

// EventPublisher 交易 commit 後以 goroutine 發送訂單事件
// 發送失敗只記 log，不影響請求結果
type EventPublisher struct {
	producer producer.IOrderEventProducer
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewEventPublisher(p producer.IOrderEventProducer) *EventPublisher {
	if p == nil {
		panic("NewEventPublisher: producer cannot be nil")
	}
	return &EventPublisher{producer: p, timeout: defaultPublishTimeout}
}

func (p *EventPublisher) OrderPlaced(evt *event.OrderPlacedEvent) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		if err := p.producer.PublishOrderPlaced(ctx, evt); err != nil {
			log.Error().Err(err).
				Str("order_id", evt.OrderID).
				Str("owner_id", evt.OwnerID).
				Msg("publish order placed event failed")
		}
	}()
}

func (p *EventPublisher) OrderStatusChanged(evt *event.OrderStatusChangedEvent) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		if err := p.producer.PublishOrderStatusChanged(ctx, evt); err != nil {
			log.Error().Err(err).
				Str("order_id", evt.OrderID).
				Str("to_status", string(evt.ToStatus)).
				Msg("publish order status changed event failed")
		}
	}()
}

// Wait 等待所有發送中的事件，關機時呼叫
func (p *EventPublisher) Wait() {
	p.wg.Wait()
}
