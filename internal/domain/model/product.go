package model

import "github.com/shopspring/decimal"

// Product 商品目錄
type Product struct {
	ProductID   string          `gorm:"primaryKey;type:varchar(64)" json:"product_id"`
	OwnerID     string          `gorm:"not null;index;type:varchar(64)" json:"owner_id"`
	Name        string          `gorm:"not null;type:varchar(255)" json:"name"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	ImageRef    string          `gorm:"type:varchar(512)" json:"image_ref"`
	BaseModel
}

// OwnerProduct owner 自己的商品清單，與 Product 同步寫入與刪除
type OwnerProduct struct {
	OwnerID     string          `gorm:"primaryKey;type:varchar(64)" json:"owner_id"`
	ProductID   string          `gorm:"primaryKey;type:varchar(64)" json:"product_id"`
	Name        string          `gorm:"not null;type:varchar(255)" json:"name"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	ImageRef    string          `gorm:"type:varchar(512)" json:"image_ref"`
	BaseModel
}

func NewOwnerProduct(p *Product) OwnerProduct {
	return OwnerProduct{
		OwnerID:     p.OwnerID,
		ProductID:   p.ProductID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		ImageRef:    p.ImageRef,
	}
}
