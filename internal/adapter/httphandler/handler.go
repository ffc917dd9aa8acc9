package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/adapter/restapi"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

// A SessionResolver hands out the shopping session for a user, creating
// it on first use.
type SessionResolver interface {
	Shopper(userID string) port.Shopper
}

type ShopHandler struct {
	sessions SessionResolver
	catalog  port.CatalogProvider
}

func RegisterShop(mux *http.ServeMux, sessions SessionResolver, catalog port.CatalogProvider) {
	h := ShopHandler{sessions, catalog}
	mux.HandleFunc("GET /v1/shop/retailers", h.GetRetailers)
	mux.HandleFunc("POST /v1/shop/store", h.PostStore)
	mux.HandleFunc("POST /v1/shop/store/exit", h.PostStoreExit)
	mux.HandleFunc("POST /v1/shop/navigate", h.PostNavigate)
	mux.HandleFunc("GET /v1/shop/catalog", h.GetCatalog)
	mux.HandleFunc("GET /v1/shop/cart", h.GetCart)
	mux.HandleFunc("POST /v1/shop/cart", h.PostCart)
	mux.HandleFunc("GET /v1/shop/addresses", h.GetAddresses)
	mux.HandleFunc("POST /v1/shop/addresses", h.PostAddress)
	mux.HandleFunc("POST /v1/shop/addresses/select", h.PostAddressSelect)
	mux.HandleFunc("POST /v1/shop/payment", h.PostPayment)
	mux.HandleFunc("POST /v1/shop/checkout/confirm", h.PostConfirm)
	mux.HandleFunc("GET /v1/shop/orders", h.GetOrders)
	mux.HandleFunc("GET /v1/shop/orders/{orderID}/bill", h.GetBill)
}

func (h ShopHandler) GetRetailers(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetRetailers"
	log := slog.With("op", op)

	stores, err := h.catalog.Retailers(r.Context())
	if err != nil {
		writeErr(w, log, err)
		return
	}

	views := make([]Store, len(stores))
	for i, s := range stores {
		views[i] = Store{RetailerID: s.RetailerID, Name: s.Name, Location: s.Location}
	}
	writeJSON(w, log, http.StatusOK, views)
}

func (h ShopHandler) PostStore(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.PostStore"
	log := slog.With("op", op)

	var body struct {
		UserID string `json:"user_id"`
		Store  Store  `json:"store"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.UserID == "" || body.Store.RetailerID == "" {
		http.Error(w, "user_id and store.retailer_id are required", http.StatusBadRequest)
		return
	}

	shopper := h.sessions.Shopper(body.UserID)
	ps, err := shopper.SelectStore(r.Context(), domain.Store{
		RetailerID: body.Store.RetailerID,
		Name:       body.Store.Name,
		Location:   body.Store.Location,
	})
	if err != nil {
		writeErr(w, log, err)
		return
	}

	log.Info("store selected", "userID", body.UserID, "retailerID", body.Store.RetailerID)
	writeJSON(w, log, http.StatusOK, toProductViews(ps))
}

func (h ShopHandler) PostStoreExit(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.PostStoreExit"
	log := slog.With("op", op)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	h.sessions.Shopper(userID).ExitStore(r.Context())
	log.Info("store exited", "userID", userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h ShopHandler) PostNavigate(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.PostNavigate"
	log := slog.With("op", op)

	var body struct {
		UserID string `json:"user_id"`
		View   string `json:"view"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	reached := h.sessions.Shopper(body.UserID).
		Navigate(r.Context(), domain.View(body.View))
	writeJSON(w, log, http.StatusOK, map[string]string{"view": string(reached)})
}

func (h ShopHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetCatalog"
	log := slog.With("op", op)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	ps := h.sessions.Shopper(userID).Catalog()
	writeJSON(w, log, http.StatusOK, toProductViews(ps))
}

func (h ShopHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetCart"
	log := slog.With("op", op)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	shopper := h.sessions.Shopper(userID)
	writeJSON(w, log, http.StatusOK, toCartView(shopper.Cart(), shopper.CartTotal()))
}

func (h ShopHandler) PostCart(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.PostCart"
	log := slog.With("op", op)

	var body struct {
		UserID    string       `json:"user_id"`
		ProductID string       `json:"product_id"`
		Delta     int          `json:"delta"`
		Snapshot  LineSnapshot `json:"snapshot"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.UserID == "" || body.ProductID == "" || body.Delta == 0 {
		http.Error(w, "user_id, product_id and delta are required", http.StatusBadRequest)
		return
	}

	shopper := h.sessions.Shopper(body.UserID)
	shopper.UpdateCart(body.ProductID, body.Delta, domain.LineSnapshot{
		Name:     body.Snapshot.Name,
		Price:    body.Snapshot.Price,
		ImageURL: body.Snapshot.ImageURL,
	})
	writeJSON(w, log, http.StatusOK, toCartView(shopper.Cart(), shopper.CartTotal()))
}

func (h ShopHandler) GetAddresses(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetAddresses"
	log := slog.With("op", op)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	as, selected := h.sessions.Shopper(userID).Addresses()
	writeJSON(w, log, http.StatusOK, toAddressBook(as, selected))
}

func (h ShopHandler) PostAddress(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.PostAddress"
	log := slog.With("op", op)

	var body struct {
		UserID string `json:"user_id"`
		Text   string `json:"text"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	a, err := h.sessions.Shopper(body.UserID).AddAddress(body.Text)
	if err != nil {
		writeErr(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, Address{ID: a.ID, Label: a.Label, Text: a.Text})
}

func (h ShopHandler) PostAddressSelect(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.PostAddressSelect"
	log := slog.With("op", op)

	var body struct {
		UserID string `json:"user_id"`
		ID     int    `json:"id"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	if err := h.sessions.Shopper(body.UserID).SelectAddress(body.ID); err != nil {
		writeErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h ShopHandler) PostPayment(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.PostPayment"
	log := slog.With("op", op)

	var body struct {
		UserID string `json:"user_id"`
		Method string `json:"method"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	err := h.sessions.Shopper(body.UserID).
		SelectPayment(domain.PaymentMethod(body.Method))
	if err != nil {
		writeErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h ShopHandler) PostConfirm(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.PostConfirm"
	log := slog.With("op", op)

	var body struct {
		UserID string `json:"user_id"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	order, err := h.sessions.Shopper(body.UserID).ConfirmOrder(r.Context())
	if err != nil {
		writeErr(w, log, err)
		return
	}

	log.Info("order placed", "userID", body.UserID,
		"orderID", order.OrderID, "total", order.Total)
	writeJSON(w, log, http.StatusCreated, toOrderView(order))
}

func (h ShopHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetOrders"
	log := slog.With("op", op)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	orders, err := h.sessions.Shopper(userID).Orders(r.Context())
	if err != nil {
		writeErr(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toOrderViews(orders))
}

func (h ShopHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetBill"
	log := slog.With("op", op)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	bill, err := h.sessions.Shopper(userID).Bill(r.PathValue("orderID"))
	if err != nil {
		writeErr(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toBillView(bill))
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return "", false
	}
	return userID, true
}

func decodeBody(w http.ResponseWriter, log *slog.Logger, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

// writeErr maps service and upstream errors onto HTTP statuses. Upstream
// detail text is passed through so the user sees what the backend said.
func writeErr(w http.ResponseWriter, log *slog.Logger, err error) {
	var apiErr *restapi.APIError
	switch {
	case errors.Is(err, service.ErrPlacementInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrNoStore),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrBlankAddress),
		errors.Is(err, service.ErrUnknownAddress),
		errors.Is(err, service.ErrInvalidPayment),
		errors.Is(err, service.ErrIncompleteReturn),
		errors.Is(err, service.ErrUnsupportedFile):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &apiErr):
		http.Error(w, apiErr.Error(), http.StatusBadGateway)
		log.Error("upstream request failed", "status", apiErr.Status, "err", err)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("unexpected failure", "err", err)
	}
}
