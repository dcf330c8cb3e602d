package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:        {OrderStatusAccepted, OrderStatusRejected, OrderStatusCanceled},
		OrderStatusAccepted:       {OrderStatusPreparing},
		OrderStatusPreparing:      {OrderStatusOutForDelivery, OrderStatusCanceled},
		OrderStatusOutForDelivery: {OrderStatusDelivered, OrderStatusCanceled},
	}
	all := []OrderStatus{
		OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusRejected, OrderStatusCanceled,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			require.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	require.True(t, OrderStatusDelivered.IsTerminal())
	require.True(t, OrderStatusRejected.IsTerminal())
	require.True(t, OrderStatusCanceled.IsTerminal())
	require.False(t, OrderStatusPending.IsTerminal())
	require.False(t, OrderStatus("shipped").IsTerminal())
	require.False(t, OrderStatus("shipped").IsValid())
	require.Empty(t, OrderStatusDelivered.NextStatuses())
}

func TestOrderStatus_NextStatusesIsCopy(t *testing.T) {
	next := OrderStatusPending.NextStatuses()
	next[0] = OrderStatusDelivered
	require.True(t, OrderStatusPending.CanTransitionTo(OrderStatusAccepted))
}

func TestOrderStatus_PreviousStatuses(t *testing.T) {
	require.Equal(t, []OrderStatus{OrderStatusPending, OrderStatusPreparing, OrderStatusOutForDelivery}, OrderStatusCanceled.PreviousStatuses())
	require.Equal(t, []OrderStatus{OrderStatusPending}, OrderStatusAccepted.PreviousStatuses())
	require.Empty(t, OrderStatusPending.PreviousStatuses())
}

func TestSumItems(t *testing.T) {
	items := []OrderItem{
		{ProductID: "a", Price: decimal.RequireFromString("12.50"), Quantity: 2},
		{ProductID: "b", Price: decimal.NewFromInt(100), Quantity: 1},
	}
	require.True(t, SumItems(items).Equal(decimal.NewFromInt(125)))
	require.True(t, SumItems(nil).IsZero())
}

func TestAddress_MissingFields(t *testing.T) {
	addr := Address{FullName: "A", Street: "1 Road", City: "Pune", Country: "IN"}
	require.Equal(t, []string{"state", "postal_code", "phone"}, addr.MissingFields())

	addr.State, addr.PostalCode, addr.Phone = "MH", "411001", "999"
	require.Empty(t, addr.MissingFields())
}

func TestPaymentMode_IsValid(t *testing.T) {
	require.True(t, PaymentModeCOD.IsValid())
	require.True(t, PaymentModeUPI.IsValid())
	require.False(t, PaymentMode("CARD").IsValid())
}
