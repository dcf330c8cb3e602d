package db

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"gorm.io/gorm"
)

// 同一個 order_id 會有一筆顧客訂單，以及每個廚房各一筆 owner 訂單
type OrderRepo struct {
	db *DbDao
}

var _ IOrderRepository = (*OrderRepo)(nil)

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// PlaceOrder 寫入所有 owner 訂單、顧客訂單並清掉結帳的購物車項目
// 購物車項目數量與讀取時不同代表有其他請求同時結帳或修改，整筆 rollback
func (s *OrderRepo) PlaceOrder(ctx context.Context, customerOrder *model.CustomerOrder, ownerOrders []model.OwnerOrder, cartProductIDs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range ownerOrders {
			if err := tx.Create(&ownerOrders[i]).Error; err != nil {
				return fmt.Errorf("create owner order %s/%s: %w", ownerOrders[i].OwnerID, ownerOrders[i].OrderID, err)
			}
		}

		if err := tx.Create(customerOrder).Error; err != nil {
			return fmt.Errorf("create customer order %s: %w", customerOrder.OrderID, err)
		}

		if len(cartProductIDs) == 0 {
			return nil
		}
		res := tx.Where("customer_id = ? AND product_id IN ?", customerOrder.CustomerID, cartProductIDs).Delete(&model.CartLine{})
		if res.Error != nil {
			return fmt.Errorf("clear cart of %s: %w", customerOrder.CustomerID, res.Error)
		}
		if res.RowsAffected != int64(len(cartProductIDs)) {
			return fmt.Errorf("clear cart of %s: %w", customerOrder.CustomerID, ErrCartChanged)
		}
		return nil
	})
}

func (s *OrderRepo) GetOwnerOrder(ctx context.Context, ownerID, orderID string) (*model.OwnerOrder, error) {
	var order model.OwnerOrder
	err := s.db.WithContext(ctx).First(&order, "owner_id = ? AND order_id = ?", ownerID, orderID).Error
	if err != nil {
		return nil, fmt.Errorf("get owner order %s/%s: %w", ownerID, orderID, err)
	}
	return &order, nil
}

func (s *OrderRepo) ListOwnerOrders(ctx context.Context, ownerID string) ([]model.OwnerOrder, error) {
	orders := []model.OwnerOrder{}
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("order_date desc, order_id").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list owner %s orders: %w", ownerID, err)
	}
	return orders, nil
}

func (s *OrderRepo) ListCustomerOrders(ctx context.Context, customerID string) ([]model.CustomerOrder, error) {
	orders := []model.CustomerOrder{}
	err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("order_date desc, order_id").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list customer %s orders: %w", customerID, err)
	}
	return orders, nil
}

/*
UpdateOrderStatus owner 訂單只在狀態仍為 from 時更新，失敗回傳 ErrStatusChanged
顧客訂單由多個廚房共用，只在其目前狀態能合法轉到 to 時才更新，不會倒退
顧客訂單已是 to 視為已同步；找不到或無法轉換不算錯誤，customerSynced 回傳 false
*/
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, ownerID, orderID string, from, to model.OrderStatus, changedAt time.Time) (bool, error) {
	customerSynced := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.OwnerOrder{}).
			Where("owner_id = ? AND order_id = ? AND status = ?", ownerID, orderID, from).
			Update("status", to)
		if res.Error != nil {
			return fmt.Errorf("update owner order %s/%s: %w", ownerID, orderID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("update owner order %s/%s: %w", ownerID, orderID, ErrStatusChanged)
		}

		res = tx.Model(&model.CustomerOrder{}).
			Where("order_id = ? AND status IN ?", orderID, to.PreviousStatuses()).
			Update("status", to)
		if res.Error != nil {
			return fmt.Errorf("update customer order %s: %w", orderID, res.Error)
		}
		customerSynced = res.RowsAffected > 0
		if !customerSynced {
			var count int64
			if err := tx.Model(&model.CustomerOrder{}).Where("order_id = ? AND status = ?", orderID, to).Count(&count).Error; err != nil {
				return fmt.Errorf("check customer order %s: %w", orderID, err)
			}
			customerSynced = count > 0
		}

		history := model.OrderStatusHistory{
			OrderID:    orderID,
			OwnerID:    ownerID,
			FromStatus: from,
			ToStatus:   to,
			ChangedAt:  changedAt,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("create status history %s: %w", orderID, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return customerSynced, nil
}

func (s *OrderRepo) ListOrderStatusHistory(ctx context.Context, orderID string) ([]model.OrderStatusHistory, error) {
	histories := []model.OrderStatusHistory{}
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&histories).Error
	if err != nil {
		return nil, fmt.Errorf("list status history %s: %w", orderID, err)
	}
	return histories, nil
}
