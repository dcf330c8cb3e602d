package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusAccepted       OrderStatus = "accepted"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusRejected       OrderStatus = "rejected"
	OrderStatusCanceled       OrderStatus = "canceled"
)

// 訂單狀態轉換圖，終態沒有出邊
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusAccepted, OrderStatusRejected, OrderStatusCanceled},
	OrderStatusAccepted:       {OrderStatusPreparing},
	OrderStatusPreparing:      {OrderStatusOutForDelivery, OrderStatusCanceled},
	OrderStatusOutForDelivery: {OrderStatusDelivered, OrderStatusCanceled},
	OrderStatusDelivered:      {},
	OrderStatusRejected:       {},
	OrderStatusCanceled:       {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusTransitions[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	next, ok := orderStatusTransitions[s]
	return ok && len(next) == 0
}

func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, next := range orderStatusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusRejected,
	OrderStatusCanceled,
}

// PreviousStatuses 回傳可以轉換到 s 的狀態
func (s OrderStatus) PreviousStatuses() []OrderStatus {
	var res []OrderStatus
	for _, from := range orderStatuses {
		if from.CanTransitionTo(s) {
			res = append(res, from)
		}
	}
	return res
}

// NextStatuses 回傳可轉換的下一個狀態
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := orderStatusTransitions[s]
	res := make([]OrderStatus, len(next))
	copy(res, next)
	return res
}

type PaymentMode string

const (
	PaymentModeCOD PaymentMode = "COD"
	PaymentModeUPI PaymentMode = "UPI"
)

func (p PaymentMode) IsValid() bool {
	return p == PaymentModeCOD || p == PaymentModeUPI
}

type Address struct {
	FullName   string `gorm:"type:varchar(255)" json:"full_name"`
	Street     string `gorm:"type:varchar(255)" json:"street"`
	City       string `gorm:"type:varchar(100)" json:"city"`
	State      string `gorm:"type:varchar(100)" json:"state"`
	PostalCode string `gorm:"type:varchar(20)" json:"postal_code"`
	Country    string `gorm:"type:varchar(100)" json:"country"`
	Phone      string `gorm:"type:varchar(32)" json:"phone"`
}

// MissingFields 回傳空白欄位名稱
func (a Address) MissingFields() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"full_name", a.FullName},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"postal_code", a.PostalCode},
		{"country", a.Country},
		{"phone", a.Phone},
	}
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// OrderItem 下單當下的商品快照
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageRef    string          `json:"image_ref"`
	KitchenName string          `json:"kitchen_name"`
}

func NewOrderItem(line CartLine) OrderItem {
	return OrderItem{
		ProductID:   line.ProductID,
		Name:        line.Name,
		Price:       line.Price,
		Quantity:    line.Quantity,
		ImageRef:    line.ImageRef,
		KitchenName: line.KitchenName,
	}
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CustomerOrder 顧客訂單歷史中的一筆，包含該次結帳所有廚房的商品
type CustomerOrder struct {
	OrderID     string          `gorm:"primaryKey;type:varchar(64)" json:"order_id"`
	CustomerID  string          `gorm:"not null;index;type:varchar(64)" json:"customer_id"`
	Items       []OrderItem     `gorm:"serializer:json;type:text" json:"items"`
	Total       decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"total"`
	OrderDate   time.Time       `gorm:"not null" json:"order_date"`
	Status      OrderStatus     `gorm:"not null;type:varchar(32)" json:"status"`
	Address     Address         `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	PaymentMode PaymentMode     `gorm:"not null;type:varchar(8)" json:"payment_mode"`
	BaseModel
}

// OwnerOrder 單一廚房看到的訂單，與顧客訂單共用 order_id，只含該廚房的商品與小計
type OwnerOrder struct {
	OrderID     string          `gorm:"primaryKey;type:varchar(64)" json:"order_id"`
	OwnerID     string          `gorm:"primaryKey;type:varchar(64)" json:"owner_id"`
	CustomerID  string          `gorm:"not null;index;type:varchar(64)" json:"customer_id"`
	Items       []OrderItem     `gorm:"serializer:json;type:text" json:"items"`
	Total       decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"total"`
	OrderDate   time.Time       `gorm:"not null" json:"order_date"`
	Status      OrderStatus     `gorm:"not null;type:varchar(32)" json:"status"`
	Address     Address         `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	PaymentMode PaymentMode     `gorm:"not null;type:varchar(8)" json:"payment_mode"`
	BaseModel
}

// OrderStatusHistory 狀態異動紀錄，只新增不修改
type OrderStatusHistory struct {
	ID         uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    string      `gorm:"not null;index;type:varchar(64)" json:"order_id"`
	OwnerID    string      `gorm:"not null;type:varchar(64)" json:"owner_id"`
	FromStatus OrderStatus `gorm:"not null;type:varchar(32)" json:"from_status"`
	ToStatus   OrderStatus `gorm:"not null;type:varchar(32)" json:"to_status"`
	ChangedAt  time.Time   `gorm:"not null" json:"changed_at"`
}
