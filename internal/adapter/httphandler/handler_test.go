package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstreamStub struct {
	products []domain.Product
	orderID  string
	history  []domain.Order
}

func (s upstreamStub) Retailers(ctx context.Context) ([]domain.Store, error) {
	return []domain.Store{{RetailerID: "R1", Name: "Fresh Mart"}}, nil
}

func (s upstreamStub) RetailerProducts(
	ctx context.Context, retailerID string,
) ([]domain.Product, error) {
	return s.products, nil
}

func (s upstreamStub) PlaceOrder(
	ctx context.Context, userID, retailerID string, items map[string]int,
) (string, error) {
	return s.orderID, nil
}

func (s upstreamStub) UserOrders(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	return s.history, nil
}

func newShopServer(t *testing.T, stub upstreamStub) *httptest.Server {
	t.Helper()

	sessions := service.NewSessions(service.SessionDeps{
		Catalog: stub,
		Placer:  stub,
		History: stub,
		Pricing: service.DefaultPricing(),
	})

	mux := http.NewServeMux()
	httphandler.RegisterShop(mux, sessions, stub)

	srv := httptest.NewServer(httphandler.AllowContentTypes(mux))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return res
}

func TestShopFlow(t *testing.T) {
	stub := upstreamStub{
		products: []domain.Product{
			{ProductID: "P1", Name: "Milk", Price: 25},
			{ProductID: "P2", Name: "Bread", Price: 50},
		},
		orderID: "ORD-77",
	}
	srv := newShopServer(t, stub)

	res := postJSON(t, srv.URL+"/v1/shop/store",
		`{"user_id": "u1", "store": {"retailer_id": "R1", "name": "Fresh Mart"}}`)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = postJSON(t, srv.URL+"/v1/shop/cart",
		`{"user_id": "u1", "product_id": "P1",
		  "delta": 1, "snapshot": {"name": "Milk", "price": 25}}`)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = postJSON(t, srv.URL+"/v1/shop/cart",
		`{"user_id": "u1", "product_id": "P2",
		  "delta": 1, "snapshot": {"name": "Bread", "price": 50}}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var cart struct {
		Lines []struct {
			ProductID string `json:"product_id"`
			Qty       int    `json:"qty"`
		} `json:"lines"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&cart))
	res.Body.Close()
	assert.Len(t, cart.Lines, 2)
	assert.InDelta(t, 75, cart.Total, 1e-9)

	res = postJSON(t, srv.URL+"/v1/shop/checkout/confirm", `{"user_id": "u1"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var order struct {
		OrderID string  `json:"order_id"`
		Total   float64 `json:"total"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&order))
	res.Body.Close()
	assert.Equal(t, "ORD-77", order.OrderID)
	assert.InDelta(t, 100, order.Total, 1e-9)

	res, err := http.Get(srv.URL + "/v1/shop/orders/ORD-77/bill?user_id=u1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var bill struct {
		Subtotal   float64 `json:"subtotal"`
		Tax        float64 `json:"tax"`
		Delivery   float64 `json:"delivery_fee"`
		GrandTotal float64 `json:"grand_total"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&bill))
	res.Body.Close()
	assert.InDelta(t, 75, bill.Subtotal, 1e-9)
	assert.InDelta(t, 3.75, bill.Tax, 1e-9)
	assert.InDelta(t, 25, bill.Delivery, 1e-9)
	assert.InDelta(t, 103.75, bill.GrandTotal, 1e-9)
}

func TestShopErrors(t *testing.T) {
	srv := newShopServer(t, upstreamStub{})

	t.Run("MissingUserID", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/v1/shop/cart")
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("ConfirmEmptyCart", func(t *testing.T) {
		res := postJSON(t, srv.URL+"/v1/shop/store",
			`{"user_id": "u2", "store": {"retailer_id": "R1"}}`)
		res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = postJSON(t, srv.URL+"/v1/shop/checkout/confirm", `{"user_id": "u2"}`)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("UnknownBill", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/v1/shop/orders/ORD-404/bill?user_id=u3")
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("InvalidPayment", func(t *testing.T) {
		res := postJSON(t, srv.URL+"/v1/shop/payment",
			`{"user_id": "u4", "method": "Cheque"}`)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("UnsupportedContentType", func(t *testing.T) {
		res, err := http.Post(
			srv.URL+"/v1/shop/navigate", "text/plain",
			strings.NewReader("view=store"),
		)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
	})
}

func TestNavigateRedirect(t *testing.T) {
	srv := newShopServer(t, upstreamStub{})

	res := postJSON(t, srv.URL+"/v1/shop/navigate",
		`{"user_id": "u5", "view": "checkout"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		View string `json:"view"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	assert.Equal(t, "home", body.View)
}
