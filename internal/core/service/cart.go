package service

import (
	"sort"

	"github.com/niksmo/storefront/internal/core/domain"
)

// UpdateCart applies delta to the product's cart line, upserting with the
// supplied add-time snapshot. No I/O: the invariant (present lines have
// qty >= 1) lives in [domain.Cart].
func (s *Session) UpdateCart(productID string, delta int, snap domain.LineSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Update(productID, delta, snap)
}

// Cart returns the lines sorted by product id for stable rendering.
func (s *Session) Cart() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.CartLine, 0, len(s.cart))
	for _, l := range s.cart {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})
	return lines
}

func (s *Session) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}
