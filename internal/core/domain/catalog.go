package domain

type (
	// A Product is read-only catalog data sourced from the upstream API.
	// Immutable from the storefront's perspective within a session.
	Product struct {
		ProductID string
		Name      string
		Category  string
		Price     float64
		Stock     int
		ImageURL  string
	}

	// A Store is the retailer context that determines which catalog is
	// loaded and which retailer id is attached to placed orders.
	Store struct {
		RetailerID string
		Name       string
		Location   string
	}
)

// MockCatalog populates the browsing view when the upstream returns an
// empty product list or the request fails. Deliberate fallback, not an
// error state.
func MockCatalog() []Product {
	return []Product{
		{ProductID: "MOCK-P001", Name: "Fresh Orange Juice", Category: "Beverages", Price: 60, Stock: 40},
		{ProductID: "MOCK-P002", Name: "Potato Crisps", Category: "Junk", Price: 30, Stock: 80},
		{ProductID: "MOCK-P003", Name: "Garden Salad Box", Category: "Healthy", Price: 90, Stock: 25},
		{ProductID: "MOCK-P004", Name: "Daily Care Soap", Category: "Essentials", Price: 45, Stock: 100},
		{ProductID: "MOCK-P005", Name: "Sparkling Soda", Category: "Beverages", Price: 35, Stock: 60},
		{ProductID: "MOCK-P006", Name: "Trail Mix Bites", Category: "Junk", Price: 55, Stock: 45},
	}
}
