package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCatalogServiceAddAndList(t *testing.T) {
	store := newTestStore(t)
	service := NewCatalogService(store)
	ctx := context.Background()

	product, err := service.AddProduct(ctx, AddProductParams{
		OwnerID:     "o-x",
		Name:        "  Paneer Tikka ",
		Price:       decimal.RequireFromString("249.50"),
		Description: "smoky",
		ImageRef:    "img/paneer.png",
	})
	require.NoError(t, err)
	require.NotEmpty(t, product.ProductID)
	require.Equal(t, "Paneer Tikka", product.Name)

	products, err := service.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	ownerProducts, err := service.ListOwnerProducts(ctx, "o-x")
	require.NoError(t, err)
	require.Len(t, ownerProducts, 1)
	require.Equal(t, product.ProductID, ownerProducts[0].ProductID)
	require.True(t, ownerProducts[0].Price.Equal(decimal.RequireFromString("249.50")))

	others, err := service.ListOwnerProducts(ctx, "o-y")
	require.NoError(t, err)
	require.Empty(t, others)
}

func TestCatalogServiceAddValidation(t *testing.T) {
	service := NewCatalogService(newTestStore(t))
	ctx := context.Background()

	_, err := service.AddProduct(ctx, AddProductParams{OwnerID: "o-x", Name: " ", Price: decimal.NewFromInt(1)})
	requireKind(t, err, apperr.InvalidInput)

	_, err = service.AddProduct(ctx, AddProductParams{OwnerID: "o-x", Name: "Dosa", Price: decimal.NewFromInt(-1)})
	requireKind(t, err, apperr.InvalidInput)

	product, err := service.AddProduct(ctx, AddProductParams{OwnerID: "o-x", Name: "Water", Price: decimal.Zero})
	require.NoError(t, err)
	require.True(t, product.Price.IsZero())
}

// 刪除後商品目錄與 owner 清單都不存在
func TestCatalogServiceDelete(t *testing.T) {
	store := newTestStore(t)
	service := NewCatalogService(store)
	ctx := context.Background()

	seedOwner(t, store, "o-x", "Kitchen X")
	seedProduct(t, store, "o-x", "p-1", 10)

	err := service.DeleteProduct(ctx, "o-y", "p-1")
	requireKind(t, err, apperr.NotFound)

	ownerProducts, err := service.ListOwnerProducts(ctx, "o-x")
	require.NoError(t, err)
	require.Len(t, ownerProducts, 1)

	require.NoError(t, service.DeleteProduct(ctx, "o-x", "p-1"))

	products, err := service.ListProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, products)
	ownerProducts, err = service.ListOwnerProducts(ctx, "o-x")
	require.NoError(t, err)
	require.Empty(t, ownerProducts)

	_, err = NewCartService(store, store, store).AddToCart(ctx, "c-1", "p-1")
	requireKind(t, err, apperr.NotFound)

	err = service.DeleteProduct(ctx, "o-x", "p-1")
	requireKind(t, err, apperr.NotFound)
}
