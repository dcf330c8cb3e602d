package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model/event"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/producer"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *db.UnifiedDBImpl {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	store := db.NewUnifiedDB(conn)
	require.NoError(t, store.InitMigrate())
	return store
}

func seedOwner(t *testing.T, store db.UnifiedDB, ownerID, kitchen string) {
	t.Helper()
	require.NoError(t, store.CreateOwner(context.Background(), &model.Owner{
		OwnerID:      ownerID,
		Name:         "Owner " + ownerID,
		KitchenName:  kitchen,
		Email:        ownerID + "@kitchen.test",
		PasswordHash: "x",
	}))
}

func seedProduct(t *testing.T, store db.UnifiedDB, ownerID, productID string, price int64) {
	t.Helper()
	require.NoError(t, store.CreateProduct(context.Background(), &model.Product{
		ProductID: productID,
		OwnerID:   ownerID,
		Name:      "Dish " + productID,
		Price:     decimal.NewFromInt(price),
		ImageRef:  "img/" + productID + ".png",
	}))
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), err.Error())
}

// recordingProducer 記錄發送的事件
type recordingProducer struct {
	mu      sync.Mutex
	placed  []*event.OrderPlacedEvent
	changed []*event.OrderStatusChangedEvent
	err     error
}

var _ producer.IOrderEventProducer = (*recordingProducer)(nil)

func (p *recordingProducer) PublishOrderPlaced(ctx context.Context, evt *event.OrderPlacedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.placed = append(p.placed, evt)
	return nil
}

func (p *recordingProducer) PublishOrderStatusChanged(ctx context.Context, evt *event.OrderStatusChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.changed = append(p.changed, evt)
	return nil
}

func (p *recordingProducer) placedEvents() []*event.OrderPlacedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*event.OrderPlacedEvent{}, p.placed...)
}

func (p *recordingProducer) changedEvents() []*event.OrderStatusChangedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*event.OrderStatusChangedEvent{}, p.changed...)
}

// failingOrderRepo 讓指定操作回傳錯誤，其餘交給真正的 repository
type failingOrderRepo struct {
	db.IOrderRepository
	placeErr  error
	updateErr error
}

func (r *failingOrderRepo) PlaceOrder(ctx context.Context, customerOrder *model.CustomerOrder, ownerOrders []model.OwnerOrder, cartProductIDs []string) error {
	if r.placeErr != nil {
		return r.placeErr
	}
	return r.IOrderRepository.PlaceOrder(ctx, customerOrder, ownerOrders, cartProductIDs)
}

func (r *failingOrderRepo) UpdateOrderStatus(ctx context.Context, ownerID, orderID string, from, to model.OrderStatus, changedAt time.Time) (bool, error) {
	if r.updateErr != nil {
		return false, r.updateErr
	}
	return r.IOrderRepository.UpdateOrderStatus(ctx, ownerID, orderID, from, to, changedAt)
}
