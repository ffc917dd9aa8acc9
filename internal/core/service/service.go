package service

import (
	"errors"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	ErrNoStore           = errors.New("no store selected")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrBlankAddress      = errors.New("address text is blank")
	ErrUnknownAddress    = errors.New("unknown address id")
	ErrInvalidPayment    = errors.New("invalid payment method")
	ErrPlacementInFlight = errors.New("order placement already in flight")
	ErrOrderNotFound     = errors.New("order not found")
)

// Pricing holds the flat checkout constants applied on top of the cart
// subtotal.
type Pricing struct {
	DeliveryFee float64
	TaxRate     float64
}

func DefaultPricing() Pricing {
	return Pricing{DeliveryFee: 25, TaxRate: 0.05}
}

// SessionDeps are the outbound collaborators of a shopping session.
type SessionDeps struct {
	Catalog port.CatalogProvider
	Placer  port.OrderPlacer
	History port.OrderHistoryProvider
	Events  port.EventsEmitter
	Pricing Pricing
}

// Sessions owns the active shopping sessions keyed by user id. Each
// session is created on first use.
type Sessions struct {
	mu   sync.Mutex
	deps SessionDeps
	byID map[string]*Session
}

func NewSessions(deps SessionDeps) *Sessions {
	return &Sessions{deps: deps, byID: make(map[string]*Session)}
}

func (ss *Sessions) Get(userID string) *Session {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, ok := ss.byID[userID]
	if !ok {
		s = NewSession(userID, ss.deps)
		ss.byID[userID] = s
	}
	return s
}

// Shopper exposes the session behind its inbound port.
func (ss *Sessions) Shopper(userID string) port.Shopper {
	return ss.Get(userID)
}

func (ss *Sessions) Drop(userID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.byID, userID)
}

var _ port.Shopper = (*Session)(nil)

// A Session is the per-user shopping state machine:
// home → store → cart → checkout → order-success → orders.
// All state is owned by the session and guarded by one mutex; order
// placement is additionally guarded by a loading flag so a double submit
// fires at most one upstream call.
type Session struct {
	mu   sync.Mutex
	deps SessionDeps

	userID  string
	view    domain.View
	store   *domain.Store
	catalog []domain.Product
	cart    domain.Cart

	addresses []domain.Address
	addrSeq   int
	selAddr   int
	payment   domain.PaymentMethod

	placing bool
	local   []domain.Order
	remote  []domain.Order
}

func NewSession(userID string, deps SessionDeps) *Session {
	s := &Session{
		deps:    deps,
		userID:  userID,
		view:    domain.ViewHome,
		cart:    domain.Cart{},
		payment: domain.PaymentCOD,
	}
	s.addrSeq = 1
	home := domain.Address{ID: s.addrSeq, Label: "Home", Text: "12 MG Road, Bengaluru"}
	s.addresses = []domain.Address{home}
	s.selAddr = home.ID
	return s
}
