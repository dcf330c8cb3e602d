package db

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"gorm.io/gorm"
)

type CustomerRepo struct {
	db *DbDao
}

var _ ICustomerRepository = (*CustomerRepo)(nil)

func NewCustomerRepo(db *DbDao) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) CreateCustomer(ctx context.Context, customer *model.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create customer %s: %w", customer.Email, gorm.ErrDuplicatedKey)
		}
		return fmt.Errorf("create customer %s: %w", customer.Email, err)
	}
	return nil
}

func (r *CustomerRepo) GetCustomerByID(ctx context.Context, customerID string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).First(&customer, "customer_id = ?", customerID).Error; err != nil {
		return nil, fmt.Errorf("get customer %s: %w", customerID, err)
	}
	return &customer, nil
}

func (r *CustomerRepo) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).First(&customer, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return &customer, nil
}

// ListCartLines 依加入順序回傳
func (r *CustomerRepo) ListCartLines(ctx context.Context, customerID string) ([]model.CartLine, error) {
	lines := []model.CartLine{}
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("created_at, product_id").Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("list cart of %s: %w", customerID, err)
	}
	return lines, nil
}

func (r *CustomerRepo) GetCartLine(ctx context.Context, customerID, productID string) (*model.CartLine, error) {
	var line model.CartLine
	err := r.db.WithContext(ctx).First(&line, "customer_id = ? AND product_id = ?", customerID, productID).Error
	if err != nil {
		return nil, fmt.Errorf("get cart line %s/%s: %w", customerID, productID, err)
	}
	return &line, nil
}

// CreateCartLine 主鍵衝突時回傳 gorm.ErrDuplicatedKey
func (r *CustomerRepo) CreateCartLine(ctx context.Context, line *model.CartLine) error {
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create cart line %s/%s: %w", line.CustomerID, line.ProductID, gorm.ErrDuplicatedKey)
		}
		return fmt.Errorf("create cart line %s/%s: %w", line.CustomerID, line.ProductID, err)
	}
	return nil
}

func (r *CustomerRepo) UpdateCartLineQuantity(ctx context.Context, customerID, productID string, quantity int) error {
	res := r.db.WithContext(ctx).Model(&model.CartLine{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("update cart line %s/%s: %w", customerID, productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update cart line %s/%s: %w", customerID, productID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *CustomerRepo) DeleteCartLine(ctx context.Context, customerID, productID string) error {
	res := r.db.WithContext(ctx).Where("customer_id = ? AND product_id = ?", customerID, productID).Delete(&model.CartLine{})
	if res.Error != nil {
		return fmt.Errorf("delete cart line %s/%s: %w", customerID, productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete cart line %s/%s: %w", customerID, productID, gorm.ErrRecordNotFound)
	}
	return nil
}
