package event

import (
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/shopspring/decimal"
)

// OrderPlacedEvent 每個廚房各發一筆，AggregateID 為 order_id
type OrderPlacedEvent struct {
	BaseEvent
	OrderID     string            `json:"order_id"`
	OwnerID     string            `json:"owner_id"`
	CustomerID  string            `json:"customer_id"`
	Items       []model.OrderItem `json:"items"`
	Total       decimal.Decimal   `json:"total"`
	PaymentMode model.PaymentMode `json:"payment_mode"`
	OrderDate   time.Time         `json:"order_date"`
}

func (e *OrderPlacedEvent) Type() EventType {
	return OrderPlacedEventName
}

func NewOrderPlacedEvent(order *model.OwnerOrder, now time.Time) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseEvent:   NewBaseEvent(order.OrderID, OrderPlacedEventName, now),
		OrderID:     order.OrderID,
		OwnerID:     order.OwnerID,
		CustomerID:  order.CustomerID,
		Items:       order.Items,
		Total:       order.Total,
		PaymentMode: order.PaymentMode,
		OrderDate:   order.OrderDate,
	}
}

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID        string            `json:"order_id"`
	OwnerID        string            `json:"owner_id"`
	FromStatus     model.OrderStatus `json:"from_status"`
	ToStatus       model.OrderStatus `json:"to_status"`
	CustomerSynced bool              `json:"customer_synced"`
}

func (e *OrderStatusChangedEvent) Type() EventType {
	return OrderStatusChangedEventName
}

func NewOrderStatusChangedEvent(orderID, ownerID string, from, to model.OrderStatus, customerSynced bool, now time.Time) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent:      NewBaseEvent(orderID, OrderStatusChangedEventName, now),
		OrderID:        orderID,
		OwnerID:        ownerID,
		FromStatus:     from,
		ToStatus:       to,
		CustomerSynced: customerSynced,
	}
}
