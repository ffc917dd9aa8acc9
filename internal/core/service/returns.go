package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var ErrIncompleteReturn = errors.New("incomplete return request")

// ReturnsFlow submits customer return claims with photo proof and lists
// their backend-audited status.
type ReturnsFlow struct {
	gateway port.ReturnGateway
}

func NewReturnsFlow(gateway port.ReturnGateway) ReturnsFlow {
	return ReturnsFlow{gateway}
}

// Submit validates the claim before any network call: order, product,
// reason, condition and image are all required.
func (f ReturnsFlow) Submit(ctx context.Context, s port.ReturnSubmission) (domain.ReturnRequest, error) {
	const op = "ReturnsFlow.Submit"

	if err := ctx.Err(); err != nil {
		return domain.ReturnRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	if s.UserID == "" || s.OrderID == "" || s.ProductID == "" ||
		s.Reason == "" || s.Condition == "" || s.Image == nil {
		return domain.ReturnRequest{}, fmt.Errorf("%s: %w", op, ErrIncompleteReturn)
	}

	req, err := f.gateway.SubmitReturn(ctx, s)
	if err != nil {
		return domain.ReturnRequest{}, fmt.Errorf("%s: %w", op, err)
	}
	return req, nil
}

func (f ReturnsFlow) UserReturns(ctx context.Context, userID string) ([]domain.ReturnRequest, error) {
	const op = "ReturnsFlow.UserReturns"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rs, err := f.gateway.UserReturns(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rs, nil
}
