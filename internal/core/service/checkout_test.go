package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddresses(t *testing.T) {
	t.Run("SeededDefault", func(t *testing.T) {
		s := newTestSession(service.SessionDeps{})

		as, selected := s.Addresses()
		require.Len(t, as, 1)
		assert.Equal(t, 1, as[0].ID)
		assert.Equal(t, "Home", as[0].Label)
		assert.Equal(t, as[0].ID, selected)
	})

	t.Run("AddSelectsNew", func(t *testing.T) {
		s := newTestSession(service.SessionDeps{})

		a, err := s.AddAddress("221B Baker St")
		require.NoError(t, err)
		assert.Equal(t, 2, a.ID)
		assert.Equal(t, "New", a.Label)

		as, selected := s.Addresses()
		assert.Len(t, as, 2)
		assert.Equal(t, a.ID, selected)
	})

	t.Run("BlankRejected", func(t *testing.T) {
		s := newTestSession(service.SessionDeps{})

		_, err := s.AddAddress("   ")
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrBlankAddress)

		as, _ := s.Addresses()
		assert.Len(t, as, 1)
	})

	t.Run("SelectUnknownID", func(t *testing.T) {
		s := newTestSession(service.SessionDeps{})

		err := s.SelectAddress(42)
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrUnknownAddress)

		_, selected := s.Addresses()
		assert.Equal(t, 1, selected)
	})
}

func TestSelectPayment(t *testing.T) {
	s := newTestSession(service.SessionDeps{})

	for _, m := range []domain.PaymentMethod{
		domain.PaymentUPI, domain.PaymentCard, domain.PaymentCOD,
	} {
		require.NoError(t, s.SelectPayment(m))
	}

	err := s.SelectPayment("Cheque")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidPayment)
}

func TestConfirmOrder(t *testing.T) {
	readySession := func(t *testing.T, placer *MockOrderPlacer) *service.Session {
		t.Helper()

		catalog := new(MockCatalogProvider)
		catalog.On("RetailerProducts", t.Context(), "R1").
			Return(testCatalog(), nil)

		s := newTestSession(service.SessionDeps{Catalog: catalog, Placer: placer})
		_, err := s.SelectStore(t.Context(), testStore())
		require.NoError(t, err)

		s.UpdateCart("P1", 1, domain.LineSnapshot{Name: "Milk", Price: 25})
		s.UpdateCart("P2", 1, domain.LineSnapshot{Name: "Bread", Price: 50})
		return s
	}

	t.Run("Placed", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		placer.On(
			"PlaceOrder", t.Context(), "testUserID", "R1",
			map[string]int{"P1": 1, "P2": 1},
		).Return("ORD-77", nil)

		s := readySession(t, placer)

		order, err := s.ConfirmOrder(t.Context())
		require.NoError(t, err)

		assert.Equal(t, "ORD-77", order.OrderID)
		assert.False(t, order.Pending)
		assert.Equal(t, "R1", order.RetailerID)
		assert.InDelta(t, 100, order.Total, 1e-9)
		assert.Equal(t, "Processing", order.Status)
		assert.Equal(t, domain.PaymentCOD, order.Payment)

		assert.Empty(t, s.Cart())
		assert.Equal(t, domain.ViewOrderSuccess, s.View())
		placer.AssertNumberOfCalls(t, "PlaceOrder", 1)
	})

	t.Run("PendingIDWhenNotEchoed", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		placer.On(
			"PlaceOrder", t.Context(), "testUserID", "R1",
			map[string]int{"P1": 1, "P2": 1},
		).Return("", nil)

		s := readySession(t, placer)

		order, err := s.ConfirmOrder(t.Context())
		require.NoError(t, err)
		assert.NotEmpty(t, order.OrderID)
		assert.True(t, order.Pending)
	})

	t.Run("NoStore", func(t *testing.T) {
		s := newTestSession(service.SessionDeps{})
		s.UpdateCart("P1", 1, domain.LineSnapshot{Price: 25})

		_, err := s.ConfirmOrder(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrNoStore)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		catalog := new(MockCatalogProvider)
		catalog.On("RetailerProducts", t.Context(), "R1").
			Return(testCatalog(), nil)

		s := newTestSession(service.SessionDeps{Catalog: catalog})
		_, err := s.SelectStore(t.Context(), testStore())
		require.NoError(t, err)

		_, err = s.ConfirmOrder(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrEmptyCart)
	})

	t.Run("UpstreamFailureKeepsCart", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		placer.On(
			"PlaceOrder", t.Context(), "testUserID", "R1",
			map[string]int{"P1": 1, "P2": 1},
		).Return("", errors.New("order endpoint down"))

		s := readySession(t, placer)

		_, err := s.ConfirmOrder(t.Context())
		require.Error(t, err)

		assert.Len(t, s.Cart(), 2)
		assert.NotEqual(t, domain.ViewOrderSuccess, s.View())

		// the guard is released, a retry goes through
		placer.ExpectedCalls = nil
		placer.On(
			"PlaceOrder", t.Context(), "testUserID", "R1",
			map[string]int{"P1": 1, "P2": 1},
		).Return("ORD-78", nil)

		order, err := s.ConfirmOrder(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "ORD-78", order.OrderID)
	})

	t.Run("DoubleSubmitPlacesOnce", func(t *testing.T) {
		placer := &blockingPlacer{
			started: make(chan struct{}),
			release: make(chan struct{}),
		}
		s := readyBlockingSession(t, placer)

		firstDone := make(chan error, 1)
		go func() {
			_, err := s.ConfirmOrder(context.Background())
			firstDone <- err
		}()

		<-placer.started

		_, err := s.ConfirmOrder(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrPlacementInFlight)

		close(placer.release)
		require.NoError(t, <-firstDone)

		assert.EqualValues(t, 1, placer.calls.Load())
		assert.Empty(t, s.Cart())
	})
}

// blockingPlacer parks the first placement until released so a
// concurrent second submit hits the in-flight guard.
type blockingPlacer struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (p *blockingPlacer) PlaceOrder(
	ctx context.Context, userID, retailerID string, items map[string]int,
) (string, error) {
	p.calls.Add(1)
	close(p.started)
	<-p.release
	return "ORD-99", nil
}

func readyBlockingSession(t *testing.T, placer *blockingPlacer) *service.Session {
	t.Helper()

	catalog := new(MockCatalogProvider)
	catalog.On("RetailerProducts", t.Context(), "R1").
		Return(testCatalog(), nil)

	s := newTestSession(service.SessionDeps{Catalog: catalog, Placer: placer})
	_, err := s.SelectStore(t.Context(), testStore())
	require.NoError(t, err)

	s.UpdateCart("P1", 3, domain.LineSnapshot{Name: "Milk", Price: 25})
	return s
}
