package db

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"gorm.io/gorm"
)

type CatalogRepo struct {
	db *DbDao
}

var _ ICatalogRepository = (*CatalogRepo)(nil)

func NewCatalogRepo(db *DbDao) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// CreateProduct 商品目錄與 owner 商品清單同一個 transaction 寫入
func (r *CatalogRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			if isDuplicateKeyError(err) {
				return fmt.Errorf("create product %s: %w", product.ProductID, gorm.ErrDuplicatedKey)
			}
			return fmt.Errorf("create product %s: %w", product.ProductID, err)
		}

		ownerProduct := model.NewOwnerProduct(product)
		if err := tx.Create(&ownerProduct).Error; err != nil {
			return fmt.Errorf("create owner product %s/%s: %w", product.OwnerID, product.ProductID, err)
		}
		return nil
	})
}

func (r *CatalogRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "product_id = ?", productID).Error
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	return &product, nil
}

func (r *CatalogRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("created_at desc, product_id").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *CatalogRepo) ListOwnerProducts(ctx context.Context, ownerID string) ([]model.OwnerProduct, error) {
	var products []model.OwnerProduct
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at desc, product_id").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list owner %s products: %w", ownerID, err)
	}
	return products, nil
}

// DeleteOwnerProduct 兩邊都刪成功才 commit
// 商品不屬於該 owner 時回傳 gorm.ErrRecordNotFound
func (r *CatalogRepo) DeleteOwnerProduct(ctx context.Context, ownerID, productID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("product_id = ? AND owner_id = ?", productID, ownerID).Delete(&model.Product{})
		if res.Error != nil {
			return fmt.Errorf("delete product %s: %w", productID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete product %s of owner %s: %w", productID, ownerID, gorm.ErrRecordNotFound)
		}

		res = tx.Where("owner_id = ? AND product_id = ?", ownerID, productID).Delete(&model.OwnerProduct{})
		if res.Error != nil {
			return fmt.Errorf("delete owner product %s/%s: %w", ownerID, productID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete owner product %s/%s: %w", ownerID, productID, ErrCatalogOutOfSync)
		}
		return nil
	})
}
