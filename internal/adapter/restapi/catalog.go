package restapi

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogProvider = (*Client)(nil)

type (
	retailerPayload struct {
		RetailerID string `json:"retailer_id"`
		Name       string `json:"name"`
		Location   string `json:"location"`
	}

	productPayload struct {
		ProductID string  `json:"product_id"`
		Name      string  `json:"name"`
		Category  string  `json:"category"`
		Price     float64 `json:"price"`
		Stock     int     `json:"stock"`
		ImageURL  string  `json:"image_url"`
	}
)

func (c Client) Retailers(ctx context.Context) ([]domain.Store, error) {
	const op = "Client.Retailers"

	var payload []retailerPayload
	if err := c.getJSON(ctx, "/retailers", &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stores := make([]domain.Store, len(payload))
	for i, r := range payload {
		stores[i] = domain.Store{
			RetailerID: r.RetailerID,
			Name:       r.Name,
			Location:   r.Location,
		}
	}
	return stores, nil
}

func (c Client) RetailerProducts(
	ctx context.Context, retailerID string,
) ([]domain.Product, error) {
	const op = "Client.RetailerProducts"

	var payload []productPayload
	path := "/retailers/" + retailerID + "/products"
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, len(payload))
	for i, p := range payload {
		ps[i] = domain.Product{
			ProductID: p.ProductID,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
			Stock:     p.Stock,
			ImageURL:  p.ImageURL,
		}
	}
	return ps, nil
}
