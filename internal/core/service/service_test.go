package service_test

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/mock"
)

type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) Retailers(ctx context.Context) ([]domain.Store, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Store), args.Error(1)
}

func (m *MockCatalogProvider) RetailerProducts(
	ctx context.Context, retailerID string,
) ([]domain.Product, error) {
	args := m.Called(ctx, retailerID)
	return args.Get(0).([]domain.Product), args.Error(1)
}

type MockOrderPlacer struct {
	mock.Mock
}

func (m *MockOrderPlacer) PlaceOrder(
	ctx context.Context, userID, retailerID string, items map[string]int,
) (string, error) {
	args := m.Called(ctx, userID, retailerID, items)
	return args.String(0), args.Error(1)
}

type MockOrderHistoryProvider struct {
	mock.Mock
}

func (m *MockOrderHistoryProvider) UserOrders(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func newTestSession(deps service.SessionDeps) *service.Session {
	if deps.Pricing == (service.Pricing{}) {
		deps.Pricing = service.DefaultPricing()
	}
	return service.NewSession("testUserID", deps)
}

func testStore() domain.Store {
	return domain.Store{RetailerID: "R1", Name: "Fresh Mart", Location: "Bengaluru"}
}

func testCatalog() []domain.Product {
	return []domain.Product{
		{ProductID: "P1", Name: "Milk", Category: "Essentials", Price: 25, Stock: 10},
		{ProductID: "P2", Name: "Bread", Category: "Essentials", Price: 50, Stock: 5},
	}
}
