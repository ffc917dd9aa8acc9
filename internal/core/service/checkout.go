package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
)

// Addresses returns the address book and the selected address id.
func (s *Session) Addresses() ([]domain.Address, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	as := make([]domain.Address, len(s.addresses))
	copy(as, s.addresses)
	return as, s.selAddr
}

// AddAddress appends an ad-hoc delivery address with a locally
// incremented id and selects it. Blank input is rejected.
func (s *Session) AddAddress(text string) (domain.Address, error) {
	const op = "Session.AddAddress"

	if strings.TrimSpace(text) == "" {
		return domain.Address{}, fmt.Errorf("%s: %w", op, ErrBlankAddress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.addrSeq++
	a := domain.Address{ID: s.addrSeq, Label: "New", Text: text}
	s.addresses = append(s.addresses, a)
	s.selAddr = a.ID
	return a, nil
}

func (s *Session) SelectAddress(id int) error {
	const op = "Session.SelectAddress"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.addresses {
		if a.ID == id {
			s.selAddr = id
			return nil
		}
	}
	return fmt.Errorf("%s: %w: %d", op, ErrUnknownAddress, id)
}

func (s *Session) SelectPayment(m domain.PaymentMethod) error {
	const op = "Session.SelectPayment"

	if !m.Valid() {
		return fmt.Errorf("%s: %w: %q", op, ErrInvalidPayment, m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment = m
	return nil
}

// ConfirmOrder places the cart as an order. A loading guard makes the
// placement at-most-once per press: a second call while the first is in
// flight fails with ErrPlacementInFlight and never reaches the upstream.
// On upstream failure the cart and session state are left unchanged.
func (s *Session) ConfirmOrder(ctx context.Context) (domain.Order, error) {
	const op = "Session.ConfirmOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	if s.placing {
		s.mu.Unlock()
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrPlacementInFlight)
	}
	if s.store == nil {
		s.mu.Unlock()
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrNoStore)
	}
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}
	addr, ok := s.selectedAddress()
	if !ok {
		s.mu.Unlock()
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrUnknownAddress)
	}
	store := *s.store
	payment := s.payment
	cart := s.cart.Clone()
	s.placing = true
	s.mu.Unlock()

	serverID, err := s.deps.Placer.PlaceOrder(ctx, s.userID, store.RetailerID, cart.Quantities())
	if err != nil {
		s.mu.Lock()
		s.placing = false
		s.mu.Unlock()
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order := s.synthesizeOrder(serverID, store, addr, payment, cart)

	s.mu.Lock()
	s.local = append(s.local, order)
	s.cart = domain.Cart{}
	s.view = domain.ViewOrderSuccess
	s.placing = false
	s.mu.Unlock()

	s.emit(ctx, domain.ClientEvent{
		Event:      domain.EventOrderPlaced,
		View:       string(domain.ViewOrderSuccess),
		RetailerID: store.RetailerID,
		OrderID:    order.OrderID,
		Total:      order.Total,
		UnixMilli:  order.Timestamp.UnixMilli(),
	})
	return order, nil
}

// synthesizeOrder snapshots the cart by value into a local order record.
// When the upstream did not echo an order id, a client-generated one is
// used and the order is marked pending for later reconciliation.
func (s *Session) synthesizeOrder(
	serverID string,
	store domain.Store,
	addr domain.Address,
	payment domain.PaymentMethod,
	cart domain.Cart,
) domain.Order {
	items := make(domain.OrderItems, len(cart))
	for pid, l := range cart {
		items[pid] = domain.OrderItem{
			Name:  l.Snapshot.Name,
			Qty:   l.Qty,
			Price: l.Snapshot.Price,
		}
	}

	o := domain.Order{
		OrderID:    serverID,
		RetailerID: store.RetailerID,
		StoreName:  store.Name,
		Items:      items,
		Total:      cart.Total() + s.deps.Pricing.DeliveryFee,
		Timestamp:  time.Now(),
		Status:     "Processing",
		Address:    addr,
		Payment:    payment,
	}
	if o.OrderID == "" {
		o.OrderID = uuid.NewString()
		o.Pending = true
	}
	return o
}

// selectedAddress is called with s.mu held.
func (s *Session) selectedAddress() (domain.Address, bool) {
	for _, a := range s.addresses {
		if a.ID == s.selAddr {
			return a, true
		}
	}
	return domain.Address{}, false
}
