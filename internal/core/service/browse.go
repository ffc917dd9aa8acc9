package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
)

func (s *Session) View() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Navigate moves the session to v. A view that needs a selected store
// redirects back to home when none is set. Returns the view actually
// reached.
func (s *Session) Navigate(ctx context.Context, v domain.View) domain.View {
	s.mu.Lock()
	if v.StoreRequired() && s.store == nil {
		v = domain.ViewHome
	}
	s.view = v
	s.mu.Unlock()

	s.emit(ctx, domain.ClientEvent{Event: domain.EventViewChanged, View: string(v)})
	return v
}

// SelectStore starts a new shopping session for the retailer: the
// catalog is loaded through the API client and any in-progress cart is
// discarded. An empty or failed catalog response falls back to the fixed
// mock catalog so the browsing view is always populated.
func (s *Session) SelectStore(ctx context.Context, store domain.Store) ([]domain.Product, error) {
	const op = "Session.SelectStore"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.deps.Catalog.RetailerProducts(ctx, store.RetailerID)
	if err != nil {
		slog.Warn("catalog request failed, using mock catalog",
			"op", op, "retailerID", store.RetailerID, "err", err)
		ps = nil
	}
	if len(ps) == 0 {
		ps = domain.MockCatalog()
	}

	s.mu.Lock()
	s.store = &store
	s.catalog = ps
	s.cart = domain.Cart{}
	s.view = domain.ViewStore
	s.mu.Unlock()

	s.emit(ctx, domain.ClientEvent{
		Event:      domain.EventViewChanged,
		View:       string(domain.ViewStore),
		RetailerID: store.RetailerID,
	})
	return ps, nil
}

// ExitStore discards the current cart and returns the session to home.
func (s *Session) ExitStore(ctx context.Context) {
	s.mu.Lock()
	s.store = nil
	s.catalog = nil
	s.cart = domain.Cart{}
	s.view = domain.ViewHome
	s.mu.Unlock()

	s.emit(ctx, domain.ClientEvent{
		Event: domain.EventViewChanged,
		View:  string(domain.ViewHome),
	})
}

func (s *Session) SelectedStore() (domain.Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return domain.Store{}, false
	}
	return *s.store, true
}

func (s *Session) Catalog() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps := make([]domain.Product, len(s.catalog))
	copy(ps, s.catalog)
	return ps
}

// emit sends a diagnostic event, best-effort: failures are logged and
// ignored.
func (s *Session) emit(ctx context.Context, e domain.ClientEvent) {
	if s.deps.Events == nil {
		return
	}
	e.UserID = s.userID
	if err := s.deps.Events.EmitEvent(ctx, e); err != nil {
		slog.Debug("failed to emit client event", "event", e.Event, "err", err)
	}
}
