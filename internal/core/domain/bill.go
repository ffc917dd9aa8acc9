package domain

import (
	"fmt"
	"sort"
	"strings"
)

type (
	BillLine struct {
		ProductID string
		Name      string
		Qty       int
		Price     float64
		Amount    float64
	}

	// A Bill is a line-itemized receipt derived from an order's item map.
	// Pure read transformation, idempotent over the same order.
	Bill struct {
		OrderID     string
		StoreName   string
		Lines       []BillLine
		Subtotal    float64
		Tax         float64
		DeliveryFee float64
		GrandTotal  float64
	}
)

// RenderBill computes the receipt for an order: subtotal over the item
// map, tax at taxRate, plus the flat delivery fee. Missing item fields
// fall back to safe placeholders.
func RenderBill(o Order, taxRate, deliveryFee float64) Bill {
	b := Bill{
		OrderID:     o.OrderID,
		StoreName:   o.StoreName,
		DeliveryFee: deliveryFee,
	}

	pids := make([]string, 0, len(o.Items))
	for pid := range o.Items {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	for _, pid := range pids {
		it := o.Items[pid]
		name := it.Name
		if name == "" {
			name = "Item " + pid
		}
		amount := it.Price * float64(it.Qty)
		b.Lines = append(b.Lines, BillLine{
			ProductID: pid,
			Name:      name,
			Qty:       it.Qty,
			Price:     it.Price,
			Amount:    amount,
		})
		b.Subtotal += amount
	}

	b.Tax = b.Subtotal * taxRate
	b.GrandTotal = b.Subtotal + b.Tax + b.DeliveryFee
	return b
}

func (b Bill) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Receipt %s", b.OrderID)
	if b.StoreName != "" {
		fmt.Fprintf(&sb, " (%s)", b.StoreName)
	}
	sb.WriteByte('\n')
	for _, l := range b.Lines {
		fmt.Fprintf(&sb, "%-24s x%-3d %8.2f\n", l.Name, l.Qty, l.Amount)
	}
	fmt.Fprintf(&sb, "Subtotal %.2f\nTax %.2f\nDelivery %.2f\nTotal %.2f\n",
		b.Subtotal, b.Tax, b.DeliveryFee, b.GrandTotal)
	return sb.String()
}
