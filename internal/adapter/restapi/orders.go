package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.OrderPlacer = (*Client)(nil)
var _ port.OrderHistoryProvider = (*Client)(nil)

type (
	placeOrderPayload struct {
		UserID     string         `json:"user_id"`
		RetailerID string         `json:"retailer_id"`
		Items      map[string]int `json:"items"`
	}

	placeOrderResponse struct {
		OrderID string `json:"order_id"`
	}

	// orderPayload tolerates both upstream history shapes: "items" as an
	// inline JSON value or legacy "items_json" as an embedded string.
	orderPayload struct {
		OrderID     string          `json:"order_id"`
		RetailerID  string          `json:"retailer_id"`
		Items       json.RawMessage `json:"items"`
		ItemsJSON   string          `json:"items_json"`
		TotalAmount float64         `json:"total_amount"`
		Status      string          `json:"status"`
		Timestamp   string          `json:"timestamp"`
	}
)

func (c Client) PlaceOrder(
	ctx context.Context, userID, retailerID string, items map[string]int,
) (string, error) {
	const op = "Client.PlaceOrder"

	in := placeOrderPayload{UserID: userID, RetailerID: retailerID, Items: items}
	var out placeOrderResponse
	if err := c.postJSON(ctx, "/order", in, &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return out.OrderID, nil
}

func (c Client) UserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	const op = "Client.UserOrders"

	var payload []orderPayload
	if err := c.getJSON(ctx, "/users/"+userID+"/orders", &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders := make([]domain.Order, 0, len(payload))
	for _, p := range payload {
		o, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (p orderPayload) toDomain() (domain.Order, error) {
	raw := p.Items
	if len(raw) == 0 && p.ItemsJSON != "" {
		raw = json.RawMessage(p.ItemsJSON)
	}

	items, err := normalizeItems(raw)
	if err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		OrderID:    p.OrderID,
		RetailerID: p.RetailerID,
		Items:      items,
		Total:      p.TotalAmount,
		Timestamp:  parseTimestamp(p.Timestamp),
		Status:     p.Status,
	}, nil
}

// normalizeItems converts either upstream item representation, a plain
// quantity map {pid: qty} or an object map {pid: {name, qty, price}},
// into the single domain shape. Normalization happens here at the API
// boundary so nothing downstream branches on the wire format.
func normalizeItems(raw json.RawMessage) (domain.OrderItems, error) {
	items := domain.OrderItems{}
	if len(raw) == 0 {
		return items, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	for pid, entry := range entries {
		var qty int
		if err := json.Unmarshal(entry, &qty); err == nil {
			items[pid] = domain.OrderItem{Qty: qty}
			continue
		}

		var obj struct {
			Name  string  `json:"name"`
			Qty   int     `json:"qty"`
			Price float64 `json:"price"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			return nil, fmt.Errorf("item %s: %w", pid, err)
		}
		items[pid] = domain.OrderItem{Name: obj.Name, Qty: obj.Qty, Price: obj.Price}
	}
	return items, nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
