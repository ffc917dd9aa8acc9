package port

import (
	"context"
	"io"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Outbound: upstream retail API.

type CatalogProvider interface {
	Retailers(ctx context.Context) ([]domain.Store, error)
	RetailerProducts(ctx context.Context, retailerID string) ([]domain.Product, error)
}

type OrderPlacer interface {
	// PlaceOrder returns the upstream-assigned order id, empty when the
	// upstream does not echo one.
	PlaceOrder(ctx context.Context, userID, retailerID string, items map[string]int) (string, error)
}

type OrderHistoryProvider interface {
	UserOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

type ReturnSubmission struct {
	UserID    string
	OrderID   string
	ProductID string
	Reason    string
	Condition string
	ImageName string
	Image     io.Reader
}

type ReturnGateway interface {
	SubmitReturn(ctx context.Context, s ReturnSubmission) (domain.ReturnRequest, error)
	UserReturns(ctx context.Context, userID string) ([]domain.ReturnRequest, error)
}

type AuthGateway interface {
	Login(ctx context.Context, userID string) (domain.SessionState, error)
	Signup(ctx context.Context, name string) (domain.SessionState, error)
	SubmitSurvey(ctx context.Context, userID string, prefs map[string]bool) error
}

type AdminGateway interface {
	Stats(ctx context.Context) (domain.AdminStats, error)
	PendingReturns(ctx context.Context) ([]domain.ReturnRequest, error)
	ProcessReturn(ctx context.Context, requestID string, approve bool, notes string) error
	Users(ctx context.Context) ([]domain.AccountRecord, error)
	ToggleUser(ctx context.Context, userID string) error
	SupportTickets(ctx context.Context) ([]domain.SupportTicket, error)
	ResolveTicket(ctx context.Context, ticketID string) error
	Logs(ctx context.Context) ([]string, error)
	RegisterRetailer(ctx context.Context, name, location string) (domain.Store, error)
	ToggleRetailer(ctx context.Context, retailerID string) error
}

type BulkUploader interface {
	BulkUpload(ctx context.Context, retailerID, filename string, file io.Reader) (domain.BulkUploadReport, error)
}

// Outbound: local state and diagnostics.

type SessionStore interface {
	Load() (domain.SessionState, error)
	Save(domain.SessionState) error
	Clear() error
}

type EventsEmitter interface {
	EmitEvent(ctx context.Context, e domain.ClientEvent) error
	Close()
}

// Inbound: operations the HTTP surface drives.

type Shopper interface {
	View() domain.View
	Navigate(ctx context.Context, v domain.View) domain.View
	SelectStore(ctx context.Context, s domain.Store) ([]domain.Product, error)
	ExitStore(ctx context.Context)
	SelectedStore() (domain.Store, bool)
	Catalog() []domain.Product
	Cart() []domain.CartLine
	CartTotal() float64
	UpdateCart(productID string, delta int, s domain.LineSnapshot)
	Addresses() ([]domain.Address, int)
	AddAddress(text string) (domain.Address, error)
	SelectAddress(id int) error
	SelectPayment(m domain.PaymentMethod) error
	ConfirmOrder(ctx context.Context) (domain.Order, error)
	Orders(ctx context.Context) ([]domain.Order, error)
	Bill(orderID string) (domain.Bill, error)
}

type StatsBoard interface {
	Stats() (domain.AdminStats, bool)
	Refresh(ctx context.Context) error
}
