package service_test

import (
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeTestOrder(t *testing.T, serverID string, history *MockOrderHistoryProvider) *service.Session {
	t.Helper()

	catalog := new(MockCatalogProvider)
	catalog.On("RetailerProducts", t.Context(), "R1").
		Return(testCatalog(), nil)

	placer := new(MockOrderPlacer)
	placer.On(
		"PlaceOrder", t.Context(), "testUserID", "R1",
		map[string]int{"P1": 2},
	).Return(serverID, nil)

	s := newTestSession(service.SessionDeps{
		Catalog: catalog, Placer: placer, History: history,
	})
	_, err := s.SelectStore(t.Context(), testStore())
	require.NoError(t, err)

	s.UpdateCart("P1", 2, domain.LineSnapshot{Name: "Milk", Price: 100})

	_, err = s.ConfirmOrder(t.Context())
	require.NoError(t, err)
	return s
}

func TestOrders(t *testing.T) {
	t.Run("MergesLocalOverRemote", func(t *testing.T) {
		remote := []domain.Order{{
			OrderID:    "ORD-1",
			RetailerID: "R9",
			Items:      domain.OrderItems{"P9": {Qty: 1, Price: 10}},
			Timestamp:  time.Now().Add(-time.Hour),
		}}
		history := new(MockOrderHistoryProvider)
		history.On("UserOrders", t.Context(), "testUserID").
			Return(remote, nil)

		s := placeTestOrder(t, "", history)

		orders, err := s.Orders(t.Context())
		require.NoError(t, err)
		require.Len(t, orders, 2)

		// newest first: the just-placed local order precedes history
		assert.True(t, orders[0].Pending)
		assert.Equal(t, "ORD-1", orders[1].OrderID)
		assert.Equal(t, domain.ViewOrders, s.View())
	})

	t.Run("PendingSupersededByCounterpart", func(t *testing.T) {
		remote := []domain.Order{{
			OrderID:    "ORD-2",
			RetailerID: "R1",
			Items:      domain.OrderItems{"P1": {Name: "Milk", Qty: 2, Price: 100}},
			Timestamp:  time.Now(),
		}}
		history := new(MockOrderHistoryProvider)
		history.On("UserOrders", t.Context(), "testUserID").
			Return(remote, nil)

		s := placeTestOrder(t, "", history)

		orders, err := s.Orders(t.Context())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "ORD-2", orders[0].OrderID)
		assert.False(t, orders[0].Pending)
	})

	t.Run("ServerIDOrderNotDeduplicated", func(t *testing.T) {
		history := new(MockOrderHistoryProvider)
		history.On("UserOrders", t.Context(), "testUserID").
			Return([]domain.Order{}, nil)

		s := placeTestOrder(t, "ORD-77", history)

		orders, err := s.Orders(t.Context())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "ORD-77", orders[0].OrderID)
	})

	t.Run("DifferentQuantitiesNotReconciled", func(t *testing.T) {
		remote := []domain.Order{{
			OrderID:    "ORD-3",
			RetailerID: "R1",
			Items:      domain.OrderItems{"P1": {Name: "Milk", Qty: 5, Price: 100}},
			Timestamp:  time.Now(),
		}}
		history := new(MockOrderHistoryProvider)
		history.On("UserOrders", t.Context(), "testUserID").
			Return(remote, nil)

		s := placeTestOrder(t, "", history)

		orders, err := s.Orders(t.Context())
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})
}

func TestBill(t *testing.T) {
	t.Run("LocalOrder", func(t *testing.T) {
		s := placeTestOrder(t, "ORD-77", new(MockOrderHistoryProvider))

		bill, err := s.Bill("ORD-77")
		require.NoError(t, err)

		// 2 x 100 subtotal, 5% tax, flat delivery
		assert.InDelta(t, 200, bill.Subtotal, 1e-9)
		assert.InDelta(t, 10, bill.Tax, 1e-9)
		assert.InDelta(t, 25, bill.DeliveryFee, 1e-9)
		assert.InDelta(t, 235, bill.GrandTotal, 1e-9)
		require.Len(t, bill.Lines, 1)
		assert.Equal(t, "Milk", bill.Lines[0].Name)
	})

	t.Run("FetchedOrder", func(t *testing.T) {
		remote := []domain.Order{{
			OrderID:    "ORD-8",
			RetailerID: "R1",
			Items:      domain.OrderItems{"P7": {Qty: 1, Price: 40}},
			Timestamp:  time.Now(),
		}}
		history := new(MockOrderHistoryProvider)
		history.On("UserOrders", t.Context(), "testUserID").
			Return(remote, nil)

		s := newTestSession(service.SessionDeps{History: history})
		_, err := s.Orders(t.Context())
		require.NoError(t, err)

		bill, err := s.Bill("ORD-8")
		require.NoError(t, err)
		require.Len(t, bill.Lines, 1)
		assert.Equal(t, "Item P7", bill.Lines[0].Name)
	})

	t.Run("UnknownOrder", func(t *testing.T) {
		s := newTestSession(service.SessionDeps{})

		_, err := s.Bill("ORD-404")
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})
}
