package domain

type (
	// A CartLine is one product's quantity-and-snapshot entry in the
	// active shopping cart. Snapshot fields are captured at add-time so
	// the cart renders without re-fetching the catalog.
	CartLine struct {
		ProductID string
		Qty       int
		Snapshot  LineSnapshot
	}

	LineSnapshot struct {
		Name     string
		Price    float64
		ImageURL string
	}
)

// A Cart maps product id to CartLine. A present line always has Qty >= 1,
// absence of a key means zero quantity.
type Cart map[string]CartLine

// Update adds delta to the current quantity of productID (0 when absent).
// A resulting quantity <= 0 removes the line, otherwise the line is
// upserted with the supplied snapshot.
func (c Cart) Update(productID string, delta int, s LineSnapshot) {
	qty := c[productID].Qty + delta
	if qty <= 0 {
		delete(c, productID)
		return
	}
	c[productID] = CartLine{ProductID: productID, Qty: qty, Snapshot: s}
}

// Total is the sum of price*qty over all lines, 0 for an empty cart.
func (c Cart) Total() float64 {
	var t float64
	for _, l := range c {
		t += l.Snapshot.Price * float64(l.Qty)
	}
	return t
}

// Quantities copies the cart into a plain product id to quantity map,
// the shape the upstream order endpoint accepts.
func (c Cart) Quantities() map[string]int {
	qs := make(map[string]int, len(c))
	for pid, l := range c {
		qs[pid] = l.Qty
	}
	return qs
}

// Clone copies the cart by value so a placed order cannot be affected by
// later cart mutations.
func (c Cart) Clone() Cart {
	cp := make(Cart, len(c))
	for pid, l := range c {
		cp[pid] = l
	}
	return cp
}
