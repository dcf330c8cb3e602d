package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model/event"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/util"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

// 結帳時同時查詢商品的上限
const productFetchLimit = 8

type CheckoutRequest struct {
	CustomerID  string
	Address     model.Address
	PaymentMode model.PaymentMode
}

// OrderConfirmation 結帳結果
// SkippedProductIDs 為結帳時已被刪除而略過的商品
type OrderConfirmation struct {
	OrderID           string                `json:"order_id"`
	Order             model.CustomerOrder   `json:"order"`
	OwnerOrders       []model.OwnerOrder    `json:"owner_orders"`
	OrderHistory      []model.CustomerOrder `json:"order_history"`
	SkippedProductIDs []string              `json:"skipped_product_ids"`
}

type ICheckoutService interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*OrderConfirmation, error)
}

type CheckoutService struct {
	customerRepo db.ICustomerRepository
	catalogRepo  db.ICatalogRepository
	orderRepo    db.IOrderRepository
	publisher    *EventPublisher
	now          func() time.Time
	newOrderID   func() string
}

var _ ICheckoutService = (*CheckoutService)(nil)

func NewCheckoutService(customerRepo db.ICustomerRepository, catalogRepo db.ICatalogRepository, orderRepo db.IOrderRepository, publisher *EventPublisher) *CheckoutService {
	if customerRepo == nil || catalogRepo == nil || orderRepo == nil {
		panic("NewCheckoutService: repository cannot be nil")
	}
	if publisher == nil {
		panic("NewCheckoutService: publisher cannot be nil")
	}
	return &CheckoutService{
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
		orderRepo:    orderRepo,
		publisher:    publisher,
		now:          func() time.Time { return time.Now().UTC() },
		newOrderID:   util.GenerateOrderID,
	}
}

/*
Checkout 一次結帳只產生一個 order id
依商品目前的 owner 分組，每個廚房一筆 owner 訂單(只含該廚房商品與小計)
顧客訂單包含所有商品，總額為各組小計加總
owner 訂單、顧客訂單與清空購物車在同一個 transaction 完成
*/
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*OrderConfirmation, error) {
	const op = "Checkout"

	ctx, span := otel.Tracer(tracerName).Start(ctx, "CheckoutService.Checkout")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", req.CustomerID))

	confirmation, err := s.checkout(ctx, op, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperr.KindOf(err).String())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("order.id", confirmation.OrderID),
		attribute.Int("order.kitchens", len(confirmation.OwnerOrders)),
	)
	return confirmation, nil
}

func (s *CheckoutService) checkout(ctx context.Context, op string, req CheckoutRequest) (*OrderConfirmation, error) {
	paymentMode := req.PaymentMode
	if paymentMode == "" {
		paymentMode = model.PaymentModeCOD
	}
	if !paymentMode.IsValid() {
		return nil, apperr.New(apperr.InvalidInput, op, "payment mode must be COD or UPI")
	}

	lines, err := s.customerRepo.ListCartLines(ctx, req.CustomerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to get cart", err)
	}
	if len(lines) == 0 {
		return nil, apperr.New(apperr.EmptyCart, op, "cart is empty")
	}

	products, err := s.fetchProducts(ctx, lines)
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to get products", err)
	}

	orderID := s.newOrderID()
	now := s.now()

	// 依 owner 分組，保留購物車順序
	var ownerIDs []string
	groups := map[string][]model.OrderItem{}
	allItems := []model.OrderItem{}
	skipped := []string{}
	cartProductIDs := make([]string, 0, len(lines))
	for i, line := range lines {
		cartProductIDs = append(cartProductIDs, line.ProductID)
		product := products[i]
		if product == nil {
			skipped = append(skipped, line.ProductID)
			continue
		}
		if _, ok := groups[product.OwnerID]; !ok {
			ownerIDs = append(ownerIDs, product.OwnerID)
		}
		item := model.NewOrderItem(line)
		groups[product.OwnerID] = append(groups[product.OwnerID], item)
		allItems = append(allItems, item)
	}
	if len(skipped) > 0 {
		log.Warn().
			Str("customer_id", req.CustomerID).
			Str("order_id", orderID).
			Strs("product_ids", skipped).
			Msg("checkout skipped deleted products")
	}

	ownerOrders := make([]model.OwnerOrder, 0, len(ownerIDs))
	for _, ownerID := range ownerIDs {
		items := groups[ownerID]
		ownerOrders = append(ownerOrders, model.OwnerOrder{
			OrderID:     orderID,
			OwnerID:     ownerID,
			CustomerID:  req.CustomerID,
			Items:       items,
			Total:       model.SumItems(items),
			OrderDate:   now,
			Status:      model.OrderStatusPending,
			Address:     req.Address,
			PaymentMode: paymentMode,
		})
	}

	customerOrder := &model.CustomerOrder{
		OrderID:     orderID,
		CustomerID:  req.CustomerID,
		Items:       allItems,
		Total:       model.SumItems(allItems),
		OrderDate:   now,
		Status:      model.OrderStatusPending,
		Address:     req.Address,
		PaymentMode: paymentMode,
	}

	if err := s.orderRepo.PlaceOrder(ctx, customerOrder, ownerOrders, cartProductIDs); err != nil {
		if errors.Is(err, db.ErrCartChanged) {
			return nil, apperr.Wrap(apperr.Conflict, op, "cart changed during checkout, please retry", err)
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to place order", err)
	}

	for i := range ownerOrders {
		s.publisher.OrderPlaced(event.NewOrderPlacedEvent(&ownerOrders[i], now))
	}

	history, err := s.orderRepo.ListCustomerOrders(ctx, req.CustomerID)
	if err != nil {
		// 訂單已經 commit，不能回報失敗
		log.Warn().Err(err).Str("customer_id", req.CustomerID).Msg("list order history after checkout failed")
		history = []model.CustomerOrder{*customerOrder}
	}

	return &OrderConfirmation{
		OrderID:           orderID,
		Order:             *customerOrder,
		OwnerOrders:       ownerOrders,
		OrderHistory:      history,
		SkippedProductIDs: skipped,
	}, nil
}

// fetchProducts 重新查詢每個購物車項目的商品，已刪除的商品位置為 nil
func (s *CheckoutService) fetchProducts(ctx context.Context, lines []model.CartLine) ([]*model.Product, error) {
	products := make([]*model.Product, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(productFetchLimit)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			product, err := s.catalogRepo.GetProductByID(gctx, line.ProductID)
			if err != nil {
				if db.IsNotFound(err) {
					return nil
				}
				return err
			}
			products[i] = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}
