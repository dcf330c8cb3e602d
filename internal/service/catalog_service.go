package service

import (
	"context"
	"strings"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/util"
	"github.com/shopspring/decimal"
)

type AddProductParams struct {
	OwnerID     string
	Name        string
	Price       decimal.Decimal
	Description string
	ImageRef    string
}

type ICatalogService interface {
	AddProduct(ctx context.Context, params AddProductParams) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListOwnerProducts(ctx context.Context, ownerID string) ([]model.OwnerProduct, error)
	DeleteProduct(ctx context.Context, ownerID, productID string) error
}

type CatalogService struct {
	catalogRepo db.ICatalogRepository
	newID       func() string
}

var _ ICatalogService = (*CatalogService)(nil)

func NewCatalogService(catalogRepo db.ICatalogRepository) *CatalogService {
	if catalogRepo == nil {
		panic("NewCatalogService: catalog repository cannot be nil")
	}
	return &CatalogService{catalogRepo: catalogRepo, newID: util.GenerateID}
}

func (s *CatalogService) AddProduct(ctx context.Context, params AddProductParams) (*model.Product, error) {
	const op = "AddProduct"

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperr.New(apperr.InvalidInput, op, "product name is required")
	}
	if params.Price.IsNegative() {
		return nil, apperr.New(apperr.InvalidInput, op, "price must not be negative")
	}

	product := &model.Product{
		ProductID:   s.newID(),
		OwnerID:     params.OwnerID,
		Name:        name,
		Price:       params.Price,
		Description: params.Description,
		ImageRef:    params.ImageRef,
	}
	if err := s.catalogRepo.CreateProduct(ctx, product); err != nil {
		if db.IsDuplicated(err) {
			return nil, apperr.Wrap(apperr.Conflict, op, "product already exists", err)
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to add product", err)
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.catalogRepo.ListProducts(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, "ListProducts", "failed to list products", err)
	}
	return products, nil
}

func (s *CatalogService) ListOwnerProducts(ctx context.Context, ownerID string) ([]model.OwnerProduct, error) {
	products, err := s.catalogRepo.ListOwnerProducts(ctx, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, "ListOwnerProducts", "failed to list products", err)
	}
	return products, nil
}

// DeleteProduct 商品目錄與 owner 商品清單都刪除成功才算成功
func (s *CatalogService) DeleteProduct(ctx context.Context, ownerID, productID string) error {
	const op = "DeleteProduct"

	if err := s.catalogRepo.DeleteOwnerProduct(ctx, ownerID, productID); err != nil {
		if db.IsNotFound(err) {
			return apperr.New(apperr.NotFound, op, "product not found")
		}
		return apperr.Wrap(apperr.PersistenceFailure, op, "failed to delete product", err)
	}
	return nil
}
