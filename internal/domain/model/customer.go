package model

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Customer struct {
	CustomerID   string         `gorm:"primaryKey;type:varchar(64)" json:"customer_id"`
	FirstName    string         `gorm:"not null;type:varchar(100)" json:"first_name"`
	LastName     string         `gorm:"not null;type:varchar(100)" json:"last_name"`
	Email        string         `gorm:"not null;uniqueIndex;type:varchar(255)" json:"email"`
	PasswordHash string         `gorm:"not null;type:varchar(255)" json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	BaseModel
}

func (c *Customer) Identity() Identity {
	return Identity{
		ID:          c.CustomerID,
		Role:        RoleCustomer,
		Email:       c.Email,
		DisplayName: strings.TrimSpace(c.FirstName + " " + c.LastName),
	}
}

type CartLineStatus string

// 僅保留欄位，流程上一律為 pending
const (
	CartLineStatusPending CartLineStatus = "pending"
	CartLineStatusSuccess CartLineStatus = "success"
	CartLineStatusFailed  CartLineStatus = "failed"
)

// CartLine 購物車項目
// (customer_id, product_id) 為主鍵，同一商品在購物車內只會有一筆
// 商品資訊在加入購物車時快照，之後不隨商品異動
type CartLine struct {
	CustomerID  string          `gorm:"primaryKey;type:varchar(64)" json:"customer_id"`
	ProductID   string          `gorm:"primaryKey;type:varchar(64)" json:"product_id"`
	Name        string          `gorm:"not null;type:varchar(255)" json:"name"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	ImageRef    string          `gorm:"type:varchar(512)" json:"image_ref"`
	KitchenName string          `gorm:"type:varchar(255)" json:"kitchen_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Status      CartLineStatus  `gorm:"not null;type:varchar(16)" json:"status"`
	BaseModel
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
