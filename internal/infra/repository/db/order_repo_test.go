package db

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderRepoTestSuite struct {
	suite.Suite
	dao          *DbDao
	orderRepo    *OrderRepo
	customerRepo *CustomerRepo
	ctx          context.Context
}

func (suite *OrderRepoTestSuite) SetupTest() {
	suite.dao = newTestDbDao(suite.T())
	suite.orderRepo = NewOrderRepo(suite.dao)
	suite.customerRepo = NewCustomerRepo(suite.dao)
	suite.ctx = context.Background()
}

func TestOrderRepoSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) addCartLine(productID string, price int64) {
	require.NoError(suite.T(), suite.customerRepo.CreateCartLine(suite.ctx, &model.CartLine{
		CustomerID: "c-1",
		ProductID:  productID,
		Name:       "Dish " + productID,
		Price:      decimal.NewFromInt(price),
		Quantity:   1,
		Status:     model.CartLineStatusPending,
	}))
}

func testAddress() model.Address {
	return model.Address{
		FullName:   "Asha Rao",
		Street:     "12 MG Road",
		City:       "Pune",
		State:      "MH",
		PostalCode: "411001",
		Country:    "IN",
		Phone:      "9999999999",
	}
}

// 兩個廚房的訂單 fixture
func (suite *OrderRepoTestSuite) placeTwoKitchenOrder(orderID string) {
	suite.addCartLine("p-1", 100)
	suite.addCartLine("p-2", 40)

	now := time.Now().UTC().Truncate(time.Second)
	itemsX := []model.OrderItem{{ProductID: "p-1", Name: "Dish p-1", Price: decimal.NewFromInt(100), Quantity: 1}}
	itemsY := []model.OrderItem{{ProductID: "p-2", Name: "Dish p-2", Price: decimal.NewFromInt(40), Quantity: 1}}
	ownerOrders := []model.OwnerOrder{
		{OrderID: orderID, OwnerID: "o-x", CustomerID: "c-1", Items: itemsX, Total: model.SumItems(itemsX), OrderDate: now, Status: model.OrderStatusPending, Address: testAddress(), PaymentMode: model.PaymentModeCOD},
		{OrderID: orderID, OwnerID: "o-y", CustomerID: "c-1", Items: itemsY, Total: model.SumItems(itemsY), OrderDate: now, Status: model.OrderStatusPending, Address: testAddress(), PaymentMode: model.PaymentModeCOD},
	}
	all := append(append([]model.OrderItem{}, itemsX...), itemsY...)
	customerOrder := &model.CustomerOrder{
		OrderID: orderID, CustomerID: "c-1", Items: all, Total: model.SumItems(all), OrderDate: now,
		Status: model.OrderStatusPending, Address: testAddress(), PaymentMode: model.PaymentModeCOD,
	}

	require.NoError(suite.T(), suite.orderRepo.PlaceOrder(suite.ctx, customerOrder, ownerOrders, []string{"p-1", "p-2"}))
}

func (suite *OrderRepoTestSuite) TestPlaceOrder() {
	suite.placeTwoKitchenOrder("ORD-1")

	lines, err := suite.customerRepo.ListCartLines(suite.ctx, "c-1")
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), lines)

	customerOrders, err := suite.orderRepo.ListCustomerOrders(suite.ctx, "c-1")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), customerOrders, 1)
	require.Len(suite.T(), customerOrders[0].Items, 2)
	require.True(suite.T(), customerOrders[0].Total.Equal(decimal.NewFromInt(140)))
	require.Equal(suite.T(), "Pune", customerOrders[0].Address.City)

	xOrders, err := suite.orderRepo.ListOwnerOrders(suite.ctx, "o-x")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), xOrders, 1)
	require.Equal(suite.T(), "ORD-1", xOrders[0].OrderID)
	require.Len(suite.T(), xOrders[0].Items, 1)
	require.Equal(suite.T(), "p-1", xOrders[0].Items[0].ProductID)
	require.True(suite.T(), xOrders[0].Total.Equal(decimal.NewFromInt(100)))

	yOrder, err := suite.orderRepo.GetOwnerOrder(suite.ctx, "o-y", "ORD-1")
	require.NoError(suite.T(), err)
	require.True(suite.T(), yOrder.Total.Equal(decimal.NewFromInt(40)))
}

// 購物車已被其他請求清掉時整筆 rollback
func (suite *OrderRepoTestSuite) TestPlaceOrderRollsBackWhenCartChanged() {
	suite.addCartLine("p-1", 100)

	items := []model.OrderItem{{ProductID: "p-1", Name: "Dish p-1", Price: decimal.NewFromInt(100), Quantity: 1}}
	now := time.Now().UTC()
	err := suite.orderRepo.PlaceOrder(suite.ctx,
		&model.CustomerOrder{OrderID: "ORD-2", CustomerID: "c-1", Items: items, Total: decimal.NewFromInt(100), OrderDate: now, Status: model.OrderStatusPending, PaymentMode: model.PaymentModeCOD},
		[]model.OwnerOrder{{OrderID: "ORD-2", OwnerID: "o-x", CustomerID: "c-1", Items: items, Total: decimal.NewFromInt(100), OrderDate: now, Status: model.OrderStatusPending, PaymentMode: model.PaymentModeCOD}},
		[]string{"p-1", "p-gone"},
	)
	require.ErrorIs(suite.T(), err, ErrCartChanged)

	customerOrders, err := suite.orderRepo.ListCustomerOrders(suite.ctx, "c-1")
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), customerOrders)

	ownerOrders, err := suite.orderRepo.ListOwnerOrders(suite.ctx, "o-x")
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), ownerOrders)

	lines, err := suite.customerRepo.ListCartLines(suite.ctx, "c-1")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), lines, 1)
}

func (suite *OrderRepoTestSuite) TestUpdateOrderStatusSyncsBothCopies() {
	suite.placeTwoKitchenOrder("ORD-1")

	synced, err := suite.orderRepo.UpdateOrderStatus(suite.ctx, "o-x", "ORD-1", model.OrderStatusPending, model.OrderStatusAccepted, time.Now())
	require.NoError(suite.T(), err)
	require.True(suite.T(), synced)

	xOrder, err := suite.orderRepo.GetOwnerOrder(suite.ctx, "o-x", "ORD-1")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusAccepted, xOrder.Status)

	customerOrders, err := suite.orderRepo.ListCustomerOrders(suite.ctx, "c-1")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusAccepted, customerOrders[0].Status)

	// 其他廚房的副本不受影響
	yOrder, err := suite.orderRepo.GetOwnerOrder(suite.ctx, "o-y", "ORD-1")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusPending, yOrder.Status)

	histories, err := suite.orderRepo.ListOrderStatusHistory(suite.ctx, "ORD-1")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), histories, 1)
	require.Equal(suite.T(), model.OrderStatusPending, histories[0].FromStatus)
	require.Equal(suite.T(), model.OrderStatusAccepted, histories[0].ToStatus)
	require.Equal(suite.T(), "o-x", histories[0].OwnerID)
}

func (suite *OrderRepoTestSuite) TestUpdateOrderStatusStaleFrom() {
	suite.placeTwoKitchenOrder("ORD-1")

	_, err := suite.orderRepo.UpdateOrderStatus(suite.ctx, "o-x", "ORD-1", model.OrderStatusAccepted, model.OrderStatusPreparing, time.Now())
	require.ErrorIs(suite.T(), err, ErrStatusChanged)

	histories, err := suite.orderRepo.ListOrderStatusHistory(suite.ctx, "ORD-1")
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), histories)
}

// 其他廚房較慢的狀態不會讓顧客訂單倒退
func (suite *OrderRepoTestSuite) TestUpdateOrderStatusCustomerCopyNeverRegresses() {
	suite.placeTwoKitchenOrder("ORD-1")

	steps := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusAccepted,
		model.OrderStatusPreparing,
		model.OrderStatusOutForDelivery,
		model.OrderStatusDelivered,
	}
	for i := 1; i < len(steps); i++ {
		synced, err := suite.orderRepo.UpdateOrderStatus(suite.ctx, "o-x", "ORD-1", steps[i-1], steps[i], time.Now())
		require.NoError(suite.T(), err)
		require.True(suite.T(), synced)
	}

	synced, err := suite.orderRepo.UpdateOrderStatus(suite.ctx, "o-y", "ORD-1", model.OrderStatusPending, model.OrderStatusAccepted, time.Now())
	require.NoError(suite.T(), err)
	require.False(suite.T(), synced)

	yOrder, err := suite.orderRepo.GetOwnerOrder(suite.ctx, "o-y", "ORD-1")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusAccepted, yOrder.Status)

	customerOrders, err := suite.orderRepo.ListCustomerOrders(suite.ctx, "c-1")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusDelivered, customerOrders[0].Status)

	histories, err := suite.orderRepo.ListOrderStatusHistory(suite.ctx, "ORD-1")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), histories, 5)
}

// 兩個廚房走到同一狀態時顧客訂單視為已同步
func (suite *OrderRepoTestSuite) TestUpdateOrderStatusCustomerCopyAlreadyAtStatus() {
	suite.placeTwoKitchenOrder("ORD-1")

	for _, owner := range []string{"o-x", "o-y"} {
		synced, err := suite.orderRepo.UpdateOrderStatus(suite.ctx, owner, "ORD-1", model.OrderStatusPending, model.OrderStatusAccepted, time.Now())
		require.NoError(suite.T(), err)
		require.True(suite.T(), synced)
	}
}

// 沒有顧客副本時 owner 端仍然更新
func (suite *OrderRepoTestSuite) TestUpdateOrderStatusWithoutCustomerCopy() {
	now := time.Now().UTC()
	items := []model.OrderItem{{ProductID: "p-1", Name: "Dish", Price: decimal.NewFromInt(10), Quantity: 1}}
	require.NoError(suite.T(), suite.dao.Create(&model.OwnerOrder{
		OrderID: "ORD-9", OwnerID: "o-x", CustomerID: "c-gone", Items: items, Total: decimal.NewFromInt(10),
		OrderDate: now, Status: model.OrderStatusPending, PaymentMode: model.PaymentModeUPI,
	}).Error)

	synced, err := suite.orderRepo.UpdateOrderStatus(suite.ctx, "o-x", "ORD-9", model.OrderStatusPending, model.OrderStatusRejected, now)
	require.NoError(suite.T(), err)
	require.False(suite.T(), synced)

	order, err := suite.orderRepo.GetOwnerOrder(suite.ctx, "o-x", "ORD-9")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusRejected, order.Status)
}

func (suite *OrderRepoTestSuite) TestGetOwnerOrderNotFound() {
	suite.placeTwoKitchenOrder("ORD-1")

	_, err := suite.orderRepo.GetOwnerOrder(suite.ctx, "o-z", "ORD-1")
	require.True(suite.T(), IsNotFound(err))
}
