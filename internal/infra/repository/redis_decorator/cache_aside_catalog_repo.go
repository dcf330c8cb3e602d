package redis_decorator

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog/log"
)

/*
商品讀取走 cache-aside
redis 失敗時一律退回 db，不影響請求結果
刪除商品後清除快取，清除失敗時延遲重試一次
*/
type CacheAsideCatalogRepo struct {
	db.ICatalogRepository
	redis redis_repo.IProductCacheRepository
}

var _ db.ICatalogRepository = (*CacheAsideCatalogRepo)(nil)

func NewCacheAsideCatalogRepo(dbRepo db.ICatalogRepository, redis redis_repo.IProductCacheRepository) *CacheAsideCatalogRepo {
	if dbRepo == nil {
		panic("NewCacheAsideCatalogRepo: db repository cannot be nil")
	}
	if redis == nil {
		panic("NewCacheAsideCatalogRepo: redis repository cannot be nil")
	}
	return &CacheAsideCatalogRepo{ICatalogRepository: dbRepo, redis: redis}
}

func (p *CacheAsideCatalogRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	product, err := p.redis.GetProduct(ctx, productID)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, redis_repo.ErrCacheMiss) {
		log.Warn().Err(err).Str("product_id", productID).Msg("product cache read failed, fallback to db")
	}

	product, err = p.ICatalogRepository.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := p.redis.SetProduct(ctx, product); err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("product cache fill failed")
	}
	return product, nil
}

func (p *CacheAsideCatalogRepo) DeleteOwnerProduct(ctx context.Context, ownerID, productID string) error {
	if err := p.ICatalogRepository.DeleteOwnerProduct(ctx, ownerID, productID); err != nil {
		return err
	}

	if err := p.redis.DeleteProduct(context.Background(), productID); err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("product cache invalidate failed, retrying")
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := p.redis.DeleteProduct(context.Background(), productID); err != nil {
				log.Error().Err(err).Str("product_id", productID).Msg("product cache invalidate retry failed")
			}
		}()
	}
	return nil
}
