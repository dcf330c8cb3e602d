package service

import (
	"context"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/rs/zerolog/log"
)

type QuantityDirection string

const (
	QuantityIncrement QuantityDirection = "increment"
	QuantityDecrement QuantityDirection = "decrement"
)

type ICartService interface {
	AddToCart(ctx context.Context, customerID, productID string) (*model.CartLine, error)
	RemoveFromCart(ctx context.Context, customerID, productID string) error
	AdjustQuantity(ctx context.Context, customerID, productID string, direction QuantityDirection) (*model.CartLine, error)
	ListCart(ctx context.Context, customerID string) ([]model.CartLine, error)
}

type CartService struct {
	customerRepo db.ICustomerRepository
	catalogRepo  db.ICatalogRepository
	ownerRepo    db.IOwnerRepository
}

var _ ICartService = (*CartService)(nil)

func NewCartService(customerRepo db.ICustomerRepository, catalogRepo db.ICatalogRepository, ownerRepo db.IOwnerRepository) *CartService {
	if customerRepo == nil || catalogRepo == nil || ownerRepo == nil {
		panic("NewCartService: repository cannot be nil")
	}
	return &CartService{customerRepo: customerRepo, catalogRepo: catalogRepo, ownerRepo: ownerRepo}
}

// AddToCart 同一商品只能加入一次，數量調整走 AdjustQuantity
func (s *CartService) AddToCart(ctx context.Context, customerID, productID string) (*model.CartLine, error) {
	const op = "AddToCart"

	product, err := s.catalogRepo.GetProductByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.NotFound, op, "product not found")
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to get product", err)
	}

	_, err = s.customerRepo.GetCartLine(ctx, customerID, productID)
	if err == nil {
		return nil, apperr.New(apperr.Conflict, op, "product already in cart")
	}
	if !db.IsNotFound(err) {
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to get cart", err)
	}

	line := &model.CartLine{
		CustomerID:  customerID,
		ProductID:   product.ProductID,
		Name:        product.Name,
		Price:       product.Price,
		ImageRef:    product.ImageRef,
		KitchenName: s.kitchenName(ctx, product.OwnerID),
		Quantity:    1,
		Status:      model.CartLineStatusPending,
	}
	if err := s.customerRepo.CreateCartLine(ctx, line); err != nil {
		if db.IsDuplicated(err) {
			return nil, apperr.New(apperr.Conflict, op, "product already in cart")
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to add product to cart", err)
	}
	return line, nil
}

// 廚房名稱只是顯示用快照，查不到不擋加入購物車
func (s *CartService) kitchenName(ctx context.Context, ownerID string) string {
	owner, err := s.ownerRepo.GetOwnerByID(ctx, ownerID)
	if err != nil {
		log.Warn().Err(err).Str("owner_id", ownerID).Msg("kitchen name not resolved for cart line")
		return ""
	}
	return owner.KitchenName
}

func (s *CartService) RemoveFromCart(ctx context.Context, customerID, productID string) error {
	const op = "RemoveFromCart"

	if err := s.customerRepo.DeleteCartLine(ctx, customerID, productID); err != nil {
		if db.IsNotFound(err) {
			return apperr.New(apperr.NotFound, op, "product not in cart")
		}
		return apperr.Wrap(apperr.PersistenceFailure, op, "failed to remove product from cart", err)
	}
	return nil
}

// AdjustQuantity 數量下限為 1，數量 1 時 decrement 不做任何事
func (s *CartService) AdjustQuantity(ctx context.Context, customerID, productID string, direction QuantityDirection) (*model.CartLine, error) {
	const op = "AdjustQuantity"

	if direction != QuantityIncrement && direction != QuantityDecrement {
		return nil, apperr.New(apperr.InvalidInput, op, "direction must be increment or decrement")
	}

	line, err := s.customerRepo.GetCartLine(ctx, customerID, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.NotFound, op, "product not in cart")
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to get cart", err)
	}

	quantity := line.Quantity
	switch direction {
	case QuantityIncrement:
		quantity++
	case QuantityDecrement:
		if quantity <= 1 {
			return line, nil
		}
		quantity--
	}

	if err := s.customerRepo.UpdateCartLineQuantity(ctx, customerID, productID, quantity); err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.NotFound, op, "product not in cart")
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to update quantity", err)
	}
	line.Quantity = quantity
	return line, nil
}

func (s *CartService) ListCart(ctx context.Context, customerID string) ([]model.CartLine, error) {
	lines, err := s.customerRepo.ListCartLines(ctx, customerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, "ListCart", "failed to list cart", err)
	}
	return lines, nil
}
