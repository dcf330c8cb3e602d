package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

// IProductCacheRepository 商品快取，只做 cache-aside 讀取加速，db 為唯一真相來源
type IProductCacheRepository interface {
	// GetProduct 快取不存在時回傳 ErrCacheMiss
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	// SetProduct 已被刪除標記的商品不會再寫入
	SetProduct(ctx context.Context, product *model.Product) error
	// DeleteProduct 以刪除標記覆蓋快取，標記存活期間的回填一律略過
	DeleteProduct(ctx context.Context, productID string) error
}

var ErrCacheMiss = errors.New("cache miss")

const productTombstone = "__deleted__"

// 回填與刪除交錯時，先讀 db 的回填不能蓋掉刪除標記
var setProductScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[2] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 1
`)

const DefaultProductCacheTTL = 10 * time.Minute

type ProductCacheRepo struct {
	productCache *redis.Client
	ttl          time.Duration
}

var _ IProductCacheRepository = (*ProductCacheRepo)(nil)

func NewProductCacheRepo(productCache *redis.Client, ttl time.Duration) *ProductCacheRepo {
	if ttl <= 0 {
		ttl = DefaultProductCacheTTL
	}
	return &ProductCacheRepo{productCache: productCache, ttl: ttl}
}

func generateProductKey(productID string) string {
	return fmt.Sprintf("product:%s", productID)
}

func (s *ProductCacheRepo) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	data, err := s.productCache.Get(ctx, generateProductKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("get product cache %s: %w", productID, err)
	}
	if string(data) == productTombstone {
		return nil, ErrCacheMiss
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("decode product cache %s: %w", productID, err)
	}
	return &product, nil
}

func (s *ProductCacheRepo) SetProduct(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encode product cache %s: %w", product.ProductID, err)
	}
	keys := []string{generateProductKey(product.ProductID)}
	if err := setProductScript.Run(ctx, s.productCache, keys, data, productTombstone, s.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("set product cache %s: %w", product.ProductID, err)
	}
	return nil
}

func (s *ProductCacheRepo) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.productCache.Set(ctx, generateProductKey(productID), productTombstone, s.ttl).Err(); err != nil {
		return fmt.Errorf("delete product cache %s: %w", productID, err)
	}
	return nil
}
