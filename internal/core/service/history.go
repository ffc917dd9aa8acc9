package service

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

// reconcileWindow bounds the timestamp distance between a pending local
// order and the upstream record it may correspond to.
const reconcileWindow = 5 * time.Minute

// Orders refreshes the history from the upstream and merges it over the
// locally synthesized records. A pending local order matching an
// upstream one by retailer, item quantities and timestamp proximity is
// superseded by the authoritative record.
func (s *Session) Orders(ctx context.Context) ([]domain.Order, error) {
	const op = "Session.Orders"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	remote, err := s.deps.History.UserOrders(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.local = unreconciled(s.local, remote)
	s.remote = remote
	merged := append(append([]domain.Order{}, remote...), s.local...)
	s.view = domain.ViewOrders
	s.mu.Unlock()

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return merged, nil
}

// Bill renders the receipt for an order known to the session, local or
// previously fetched. Lookup happens against the local records first so
// a just-placed order is billable before any history refresh.
func (s *Session) Bill(orderID string) (domain.Bill, error) {
	const op = "Session.Bill"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.local {
		if o.OrderID == orderID {
			return domain.RenderBill(o, s.deps.Pricing.TaxRate, s.deps.Pricing.DeliveryFee), nil
		}
	}
	for _, o := range s.remote {
		if o.OrderID == orderID {
			return domain.RenderBill(o, s.deps.Pricing.TaxRate, s.deps.Pricing.DeliveryFee), nil
		}
	}
	return domain.Bill{}, fmt.Errorf("%s: %w: %s", op, ErrOrderNotFound, orderID)
}

// unreconciled drops every pending local order that has an authoritative
// upstream counterpart.
func unreconciled(local, remote []domain.Order) []domain.Order {
	kept := local[:0]
	for _, lo := range local {
		if lo.Pending && hasCounterpart(lo, remote) {
			continue
		}
		kept = append(kept, lo)
	}
	return kept
}

func hasCounterpart(lo domain.Order, remote []domain.Order) bool {
	for _, ro := range remote {
		if ro.RetailerID != lo.RetailerID {
			continue
		}
		if !sameQuantities(lo.Items, ro.Items) {
			continue
		}
		d := ro.Timestamp.Sub(lo.Timestamp)
		if d < 0 {
			d = -d
		}
		if d <= reconcileWindow {
			return true
		}
	}
	return false
}

func sameQuantities(a, b domain.OrderItems) bool {
	qa := make(map[string]int, len(a))
	for pid, it := range a {
		qa[pid] = it.Qty
	}
	qb := make(map[string]int, len(b))
	for pid, it := range b {
		qb[pid] = it.Qty
	}
	return maps.Equal(qa, qb)
}
