package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model/event"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type IOrderService interface {
	UpdateStatus(ctx context.Context, ownerID, orderID string, status model.OrderStatus) (*model.OwnerOrder, error)
	GetOwnerOrders(ctx context.Context, ownerID string) ([]model.OwnerOrder, error)
	GetCustomerOrders(ctx context.Context, customerID string) ([]model.CustomerOrder, error)
	GetOrderStatusHistory(ctx context.Context, ownerID, orderID string) ([]model.OrderStatusHistory, error)
}

type OrderService struct {
	orderRepo db.IOrderRepository
	publisher *EventPublisher
	now       func() time.Time
}

var _ IOrderService = (*OrderService)(nil)

func NewOrderService(orderRepo db.IOrderRepository, publisher *EventPublisher) *OrderService {
	if orderRepo == nil {
		panic("NewOrderService: order repository cannot be nil")
	}
	if publisher == nil {
		panic("NewOrderService: publisher cannot be nil")
	}
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

/*
UpdateStatus 只有持有該訂單的 owner 可以修改
狀態轉換依訂單狀態圖檢查，owner 訂單與顧客訂單同一個 transaction 更新
顧客訂單不存在時 owner 端仍然更新，記 warn
*/
func (s *OrderService) UpdateStatus(ctx context.Context, ownerID, orderID string, status model.OrderStatus) (*model.OwnerOrder, error) {
	const op = "UpdateStatus"

	ctx, span := otel.Tracer(tracerName).Start(ctx, "OrderService.UpdateStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("owner.id", ownerID),
		attribute.String("order.id", orderID),
		attribute.String("order.status", string(status)),
	)

	order, err := s.updateStatus(ctx, op, ownerID, orderID, status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperr.KindOf(err).String())
		return nil, err
	}
	return order, nil
}

func (s *OrderService) updateStatus(ctx context.Context, op, ownerID, orderID string, status model.OrderStatus) (*model.OwnerOrder, error) {
	if !status.IsValid() {
		return nil, apperr.New(apperr.InvalidInput, op, fmt.Sprintf("unknown order status %q", status))
	}

	order, err := s.orderRepo.GetOwnerOrder(ctx, ownerID, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.NotFound, op, "order not found")
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to get order", err)
	}

	from := order.Status
	if !from.CanTransitionTo(status) {
		return nil, apperr.New(apperr.InvalidTransition, op, fmt.Sprintf("cannot change status from %s to %s", from, status))
	}

	now := s.now()
	customerSynced, err := s.orderRepo.UpdateOrderStatus(ctx, ownerID, orderID, from, status, now)
	if err != nil {
		if errors.Is(err, db.ErrStatusChanged) {
			return nil, apperr.Wrap(apperr.Conflict, op, "order status changed by another request, please retry", err)
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to update order status", err)
	}
	if !customerSynced {
		log.Warn().
			Str("order_id", orderID).
			Str("owner_id", ownerID).
			Str("status", string(status)).
			Msg("customer copy of order not updated, only owner copy changed")
	}

	s.publisher.OrderStatusChanged(event.NewOrderStatusChangedEvent(orderID, ownerID, from, status, customerSynced, now))

	order.Status = status
	return order, nil
}

func (s *OrderService) GetOwnerOrders(ctx context.Context, ownerID string) ([]model.OwnerOrder, error) {
	orders, err := s.orderRepo.ListOwnerOrders(ctx, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, "GetOwnerOrders", "failed to list orders", err)
	}
	return orders, nil
}

func (s *OrderService) GetCustomerOrders(ctx context.Context, customerID string) ([]model.CustomerOrder, error) {
	orders, err := s.orderRepo.ListCustomerOrders(ctx, customerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, "GetCustomerOrders", "failed to list orders", err)
	}
	return orders, nil
}

// GetOrderStatusHistory owner 必須持有該訂單
func (s *OrderService) GetOrderStatusHistory(ctx context.Context, ownerID, orderID string) ([]model.OrderStatusHistory, error) {
	const op = "GetOrderStatusHistory"

	if _, err := s.orderRepo.GetOwnerOrder(ctx, ownerID, orderID); err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.NotFound, op, "order not found")
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to get order", err)
	}

	histories, err := s.orderRepo.ListOrderStatusHistory(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to list status history", err)
	}
	return histories, nil
}
