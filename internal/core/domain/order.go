package domain

import "time"

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "Card"
	PaymentCOD  PaymentMethod = "COD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentUPI, PaymentCard, PaymentCOD:
		return true
	}
	return false
}

type (
	// An OrderItem is the normalized representation of one ordered
	// product. The upstream may deliver either a plain quantity map or an
	// object map with name/qty/price, both are converted to this shape at
	// the API boundary.
	OrderItem struct {
		Name  string
		Qty   int
		Price float64
	}

	OrderItems map[string]OrderItem

	// An Order is synthesized client-side on successful placement and
	// superseded by the authoritative upstream record on the next history
	// refresh. Never mutated after creation.
	Order struct {
		OrderID    string
		RetailerID string
		StoreName  string
		Items      OrderItems
		Total      float64
		Timestamp  time.Time
		Status     string
		Address    Address
		Payment    PaymentMethod

		// Pending marks a client-generated id awaiting reconciliation
		// with the upstream-assigned one.
		Pending bool
	}

	// An Address is a checkout-session delivery target. Identifiers are
	// small integers assigned locally.
	Address struct {
		ID    int
		Label string
		Text  string
	}
)

// Subtotal sums price*qty over the item map.
func (items OrderItems) Subtotal() float64 {
	var t float64
	for _, it := range items {
		t += it.Price * float64(it.Qty)
	}
	return t
}
