package dto

import (
	"strings"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/shopspring/decimal"
)

type AddProductDTO struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageRef    string          `json:"image_ref"`
}

type AddToCartDTO struct {
	ProductID string `json:"product_id"`
}

type AdjustQuantityDTO struct {
	Direction string `json:"direction"` // increment | decrement
}

type AddressDTO struct {
	FullName   string `json:"full_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

func (a AddressDTO) ToModel() model.Address {
	return model.Address{
		FullName:   strings.TrimSpace(a.FullName),
		Street:     strings.TrimSpace(a.Street),
		City:       strings.TrimSpace(a.City),
		State:      strings.TrimSpace(a.State),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.TrimSpace(a.Country),
		Phone:      strings.TrimSpace(a.Phone),
	}
}

type CheckoutDTO struct {
	Address     AddressDTO `json:"address"`
	PaymentMode string     `json:"payment_mode"` // COD | UPI，空白為 COD
}

type UpdateOrderStatusDTO struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
