package domain

// A View is one state of the shopping session state machine.
type View string

const (
	ViewHome         View = "home"
	ViewStore        View = "store"
	ViewCart         View = "cart"
	ViewCheckout     View = "checkout"
	ViewOrderSuccess View = "order-success"
	ViewOrders       View = "orders"
)

// StoreRequired reports whether the view is reachable only with a
// selected store.
func (v View) StoreRequired() bool {
	switch v {
	case ViewStore, ViewCart, ViewCheckout:
		return true
	}
	return false
}

// SessionState is the persisted slice of a user session: the
// local-storage analog of the browser front-end. Explicit load/save
// boundaries, no ambient globals.
type SessionState struct {
	UserID     string
	RetailerID string
	Role       string
}

type (
	// A ClientEvent is a best-effort diagnostic record emitted when the
	// session changes view or places an order.
	ClientEvent struct {
		UserID     string
		Event      string
		View       string
		RetailerID string
		OrderID    string
		Total      float64
		UnixMilli  int64
	}
)

const (
	EventViewChanged = "view_changed"
	EventOrderPlaced = "order_placed"
)
