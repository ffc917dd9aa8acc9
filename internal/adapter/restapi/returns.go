package restapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ReturnGateway = (*Client)(nil)

type returnPayload struct {
	RequestID  string  `json:"request_id"`
	OrderID    string  `json:"order_id"`
	ProductID  string  `json:"product_id"`
	Reason     string  `json:"reason"`
	Condition  string  `json:"condition"`
	Status     string  `json:"status"`
	FraudScore float64 `json:"fraud_score"`
	AdminNotes string  `json:"admin_notes"`
}

// SubmitReturn posts the claim as a multipart form with the photo proof
// attached, the one upstream surface that is not JSON-encoded.
func (c Client) SubmitReturn(
	ctx context.Context, s port.ReturnSubmission,
) (domain.ReturnRequest, error) {
	const op = "Client.SubmitReturn"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"user_id":    s.UserID,
		"order_id":   s.OrderID,
		"product_id": s.ProductID,
		"reason":     s.Reason,
		"condition":  s.Condition,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return domain.ReturnRequest{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	fw, err := mw.CreateFormFile("image", s.ImageName)
	if err != nil {
		return domain.ReturnRequest{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(fw, s.Image); err != nil {
		return domain.ReturnRequest{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return domain.ReturnRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	var payload returnPayload
	err = c.postMultipart(ctx, "/return/request", mw.FormDataContentType(), &buf, &payload)
	if err != nil {
		return domain.ReturnRequest{}, fmt.Errorf("%s: %w", op, err)
	}
	return payload.toDomain(), nil
}

func (c Client) UserReturns(ctx context.Context, userID string) ([]domain.ReturnRequest, error) {
	const op = "Client.UserReturns"

	var payload []returnPayload
	if err := c.getJSON(ctx, "/users/"+userID+"/returns", &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rs := make([]domain.ReturnRequest, len(payload))
	for i, p := range payload {
		rs[i] = p.toDomain()
	}
	return rs, nil
}

func (p returnPayload) toDomain() domain.ReturnRequest {
	return domain.ReturnRequest{
		RequestID:  p.RequestID,
		OrderID:    p.OrderID,
		ProductID:  p.ProductID,
		Reason:     p.Reason,
		Condition:  p.Condition,
		Status:     p.Status,
		FraudScore: p.FraudScore,
		AdminNotes: p.AdminNotes,
	}
}
