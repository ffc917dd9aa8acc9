package restapi

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.AdminGateway = (*Client)(nil)

type (
	statsPayload struct {
		TotalUsers     int     `json:"total_users"`
		TotalRetailers int     `json:"total_retailers"`
		TotalOrders    int     `json:"total_orders"`
		PendingReturns int     `json:"pending_returns"`
		Revenue        float64 `json:"revenue"`
	}

	accountPayload struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Role   string `json:"role"`
		Active bool   `json:"active"`
	}

	ticketPayload struct {
		TicketID string `json:"ticket_id"`
		UserID   string `json:"user_id"`
		Subject  string `json:"subject"`
		Message  string `json:"message"`
		Resolved bool   `json:"resolved"`
	}
)

func (c Client) Stats(ctx context.Context) (domain.AdminStats, error) {
	const op = "Client.Stats"

	var p statsPayload
	if err := c.getJSON(ctx, "/admin/stats", &p); err != nil {
		return domain.AdminStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.AdminStats{
		TotalUsers:     p.TotalUsers,
		TotalRetailers: p.TotalRetailers,
		TotalOrders:    p.TotalOrders,
		PendingReturns: p.PendingReturns,
		Revenue:        p.Revenue,
	}, nil
}

func (c Client) PendingReturns(ctx context.Context) ([]domain.ReturnRequest, error) {
	const op = "Client.PendingReturns"

	var payload []returnPayload
	if err := c.getJSON(ctx, "/admin/returns/pending", &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rs := make([]domain.ReturnRequest, len(payload))
	for i, p := range payload {
		rs[i] = p.toDomain()
	}
	return rs, nil
}

func (c Client) ProcessReturn(
	ctx context.Context, requestID string, approve bool, notes string,
) error {
	const op = "Client.ProcessReturn"

	in := struct {
		RequestID string `json:"request_id"`
		Approve   bool   `json:"approve"`
		Notes     string `json:"notes"`
	}{requestID, approve, notes}

	if err := c.postJSON(ctx, "/admin/returns/process", in, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Client) Users(ctx context.Context) ([]domain.AccountRecord, error) {
	const op = "Client.Users"

	var payload []accountPayload
	if err := c.getJSON(ctx, "/admin/users", &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toAccounts(payload), nil
}

func (c Client) ToggleUser(ctx context.Context, userID string) error {
	const op = "Client.ToggleUser"

	if err := c.postJSON(ctx, "/admin/users/"+userID+"/toggle", nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Client) SupportTickets(ctx context.Context) ([]domain.SupportTicket, error) {
	const op = "Client.SupportTickets"

	var payload []ticketPayload
	if err := c.getJSON(ctx, "/admin/support", &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ts := make([]domain.SupportTicket, len(payload))
	for i, p := range payload {
		ts[i] = domain.SupportTicket{
			TicketID: p.TicketID,
			UserID:   p.UserID,
			Subject:  p.Subject,
			Message:  p.Message,
			Resolved: p.Resolved,
		}
	}
	return ts, nil
}

func (c Client) ResolveTicket(ctx context.Context, ticketID string) error {
	const op = "Client.ResolveTicket"

	in := map[string]string{"ticket_id": ticketID}
	if err := c.postJSON(ctx, "/admin/support/resolve", in, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Client) Logs(ctx context.Context) ([]string, error) {
	const op = "Client.Logs"

	var logs []string
	if err := c.getJSON(ctx, "/admin/logs", &logs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return logs, nil
}

func (c Client) RegisterRetailer(
	ctx context.Context, name, location string,
) (domain.Store, error) {
	const op = "Client.RegisterRetailer"

	in := map[string]string{"name": name, "location": location}
	var out retailerPayload
	if err := c.postJSON(ctx, "/retailers/register", in, &out); err != nil {
		return domain.Store{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.Store{
		RetailerID: out.RetailerID,
		Name:       out.Name,
		Location:   out.Location,
	}, nil
}

func (c Client) ToggleRetailer(ctx context.Context, retailerID string) error {
	const op = "Client.ToggleRetailer"

	path := "/admin/retailers/" + retailerID + "/toggle"
	if err := c.postJSON(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func toAccounts(payload []accountPayload) []domain.AccountRecord {
	as := make([]domain.AccountRecord, len(payload))
	for i, p := range payload {
		as[i] = domain.AccountRecord{
			ID:     p.ID,
			Name:   p.Name,
			Role:   p.Role,
			Active: p.Active,
		}
	}
	return as
}
