package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	Store struct {
		RetailerID string `json:"retailer_id"`
		Name       string `json:"name"`
		Location   string `json:"location"`
	}

	Product struct {
		ProductID string  `json:"product_id"`
		Name      string  `json:"name"`
		Category  string  `json:"category"`
		Price     float64 `json:"price"`
		Stock     int     `json:"stock"`
		ImageURL  string  `json:"image_url"`
	}

	LineSnapshot struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		ImageURL string  `json:"image_url"`
	}

	CartLine struct {
		ProductID string       `json:"product_id"`
		Qty       int          `json:"qty"`
		Snapshot  LineSnapshot `json:"snapshot"`
	}

	CartView struct {
		Lines []CartLine `json:"lines"`
		Total float64    `json:"total"`
	}

	Address struct {
		ID    int    `json:"id"`
		Label string `json:"label"`
		Text  string `json:"text"`
	}

	AddressBook struct {
		Addresses []Address `json:"addresses"`
		Selected  int       `json:"selected"`
	}

	OrderItem struct {
		Name  string  `json:"name"`
		Qty   int     `json:"qty"`
		Price float64 `json:"price"`
	}

	Order struct {
		OrderID    string               `json:"order_id"`
		RetailerID string               `json:"retailer_id"`
		StoreName  string               `json:"store_name"`
		Items      map[string]OrderItem `json:"items"`
		Total      float64              `json:"total"`
		Timestamp  time.Time            `json:"timestamp"`
		Status     string               `json:"status"`
		Payment    string               `json:"payment"`
		Pending    bool                 `json:"pending"`
	}

	BillLine struct {
		ProductID string  `json:"product_id"`
		Name      string  `json:"name"`
		Qty       int     `json:"qty"`
		Price     float64 `json:"price"`
		Amount    float64 `json:"amount"`
	}

	Bill struct {
		OrderID     string     `json:"order_id"`
		StoreName   string     `json:"store_name"`
		Lines       []BillLine `json:"lines"`
		Subtotal    float64    `json:"subtotal"`
		Tax         float64    `json:"tax"`
		DeliveryFee float64    `json:"delivery_fee"`
		GrandTotal  float64    `json:"grand_total"`
	}

	AdminStats struct {
		TotalUsers     int       `json:"total_users"`
		TotalRetailers int       `json:"total_retailers"`
		TotalOrders    int       `json:"total_orders"`
		PendingReturns int       `json:"pending_returns"`
		Revenue        float64   `json:"revenue"`
		FetchedAt      time.Time `json:"fetched_at"`
	}

	ReturnRequest struct {
		RequestID  string  `json:"request_id"`
		OrderID    string  `json:"order_id"`
		ProductID  string  `json:"product_id"`
		Reason     string  `json:"reason"`
		Condition  string  `json:"condition"`
		Status     string  `json:"status"`
		FraudScore float64 `json:"fraud_score"`
		AdminNotes string  `json:"admin_notes"`
	}

	BulkUploadReport struct {
		TotalRows  int      `json:"total_rows"`
		AddedCount int      `json:"added_count"`
		ErrorCount int      `json:"error_count"`
		Errors     []string `json:"errors"`
	}

	SessionState struct {
		UserID     string `json:"user_id"`
		RetailerID string `json:"retailer_id"`
		Role       string `json:"role"`
	}

	AccountRecord struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Role   string `json:"role"`
		Active bool   `json:"active"`
	}

	SupportTicket struct {
		TicketID string `json:"ticket_id"`
		UserID   string `json:"user_id"`
		Subject  string `json:"subject"`
		Message  string `json:"message"`
		Resolved bool   `json:"resolved"`
	}
)

func toProductViews(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = Product{
			ProductID: p.ProductID,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
			Stock:     p.Stock,
			ImageURL:  p.ImageURL,
		}
	}
	return out
}

func toCartView(lines []domain.CartLine, total float64) CartView {
	v := CartView{Lines: make([]CartLine, len(lines)), Total: total}
	for i, l := range lines {
		v.Lines[i] = CartLine{
			ProductID: l.ProductID,
			Qty:       l.Qty,
			Snapshot: LineSnapshot{
				Name:     l.Snapshot.Name,
				Price:    l.Snapshot.Price,
				ImageURL: l.Snapshot.ImageURL,
			},
		}
	}
	return v
}

func toAddressBook(as []domain.Address, selected int) AddressBook {
	b := AddressBook{Addresses: make([]Address, len(as)), Selected: selected}
	for i, a := range as {
		b.Addresses[i] = Address{ID: a.ID, Label: a.Label, Text: a.Text}
	}
	return b
}

func toOrderView(o domain.Order) Order {
	items := make(map[string]OrderItem, len(o.Items))
	for pid, it := range o.Items {
		items[pid] = OrderItem{Name: it.Name, Qty: it.Qty, Price: it.Price}
	}
	return Order{
		OrderID:    o.OrderID,
		RetailerID: o.RetailerID,
		StoreName:  o.StoreName,
		Items:      items,
		Total:      o.Total,
		Timestamp:  o.Timestamp,
		Status:     o.Status,
		Payment:    string(o.Payment),
		Pending:    o.Pending,
	}
}

func toOrderViews(os []domain.Order) []Order {
	out := make([]Order, len(os))
	for i, o := range os {
		out[i] = toOrderView(o)
	}
	return out
}

func toBillView(b domain.Bill) Bill {
	out := Bill{
		OrderID:     b.OrderID,
		StoreName:   b.StoreName,
		Lines:       make([]BillLine, len(b.Lines)),
		Subtotal:    b.Subtotal,
		Tax:         b.Tax,
		DeliveryFee: b.DeliveryFee,
		GrandTotal:  b.GrandTotal,
	}
	for i, l := range b.Lines {
		out.Lines[i] = BillLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Qty:       l.Qty,
			Price:     l.Price,
			Amount:    l.Amount,
		}
	}
	return out
}

func toReturnViews(rs []domain.ReturnRequest) []ReturnRequest {
	out := make([]ReturnRequest, len(rs))
	for i, r := range rs {
		out[i] = ReturnRequest{
			RequestID:  r.RequestID,
			OrderID:    r.OrderID,
			ProductID:  r.ProductID,
			Reason:     r.Reason,
			Condition:  r.Condition,
			Status:     r.Status,
			FraudScore: r.FraudScore,
			AdminNotes: r.AdminNotes,
		}
	}
	return out
}
