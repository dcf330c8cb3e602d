package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"gorm.io/gorm"
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	GetDB() *gorm.DB
	InitMigrate() error

	ICatalogRepository
	ICustomerRepository
	IOwnerRepository
	IAdminRepository
	IOrderRepository
}

// ICatalogRepository 商品目錄，Product 與 OwnerProduct 一律同時寫入
type ICatalogRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListOwnerProducts(ctx context.Context, ownerID string) ([]model.OwnerProduct, error)
	DeleteOwnerProduct(ctx context.Context, ownerID, productID string) error
}

// ICustomerRepository 顧客帳號與購物車
type ICustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *model.Customer) error
	GetCustomerByID(ctx context.Context, customerID string) (*model.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error)
	ListCartLines(ctx context.Context, customerID string) ([]model.CartLine, error)
	GetCartLine(ctx context.Context, customerID, productID string) (*model.CartLine, error)
	CreateCartLine(ctx context.Context, line *model.CartLine) error
	UpdateCartLineQuantity(ctx context.Context, customerID, productID string, quantity int) error
	DeleteCartLine(ctx context.Context, customerID, productID string) error
}

type IOwnerRepository interface {
	CreateOwner(ctx context.Context, owner *model.Owner) error
	GetOwnerByID(ctx context.Context, ownerID string) (*model.Owner, error)
	GetOwnerByEmail(ctx context.Context, email string) (*model.Owner, error)
}

type IAdminRepository interface {
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	GetAdminByID(ctx context.Context, adminID string) (*model.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// IOrderRepository 訂單副本
// PlaceOrder 與 UpdateOrderStatus 內的多筆寫入在同一個 transaction 完成
type IOrderRepository interface {
	PlaceOrder(ctx context.Context, customerOrder *model.CustomerOrder, ownerOrders []model.OwnerOrder, cartProductIDs []string) error
	GetOwnerOrder(ctx context.Context, ownerID, orderID string) (*model.OwnerOrder, error)
	ListOwnerOrders(ctx context.Context, ownerID string) ([]model.OwnerOrder, error)
	ListCustomerOrders(ctx context.Context, customerID string) ([]model.CustomerOrder, error)
	UpdateOrderStatus(ctx context.Context, ownerID, orderID string, from, to model.OrderStatus, changedAt time.Time) (customerSynced bool, err error)
	ListOrderStatusHistory(ctx context.Context, orderID string) ([]model.OrderStatusHistory, error)
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*CatalogRepo
	*CustomerRepo
	*OwnerRepo
	*AdminRepo
	*OrderRepo
}

var _ UnifiedDB = (*UnifiedDBImpl)(nil)

func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:           db,
		dbDao:        dbDao,
		CatalogRepo:  NewCatalogRepo(dbDao),
		CustomerRepo: NewCustomerRepo(dbDao),
		OwnerRepo:    NewOwnerRepo(dbDao),
		AdminRepo:    NewAdminRepo(dbDao),
		OrderRepo:    NewOrderRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}
