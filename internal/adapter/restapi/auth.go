package restapi

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.AuthGateway = (*Client)(nil)

type userPayload struct {
	UserID     string `json:"user_id"`
	RetailerID string `json:"retailer_id"`
	Role       string `json:"role"`
}

func (c Client) Login(ctx context.Context, userID string) (domain.SessionState, error) {
	const op = "Client.Login"

	in := map[string]string{"user_id": userID}
	var out userPayload
	if err := c.postJSON(ctx, "/users/login", in, &out); err != nil {
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}
	return out.toState(), nil
}

func (c Client) Signup(ctx context.Context, name string) (domain.SessionState, error) {
	const op = "Client.Signup"

	in := map[string]string{"name": name}
	var out userPayload
	if err := c.postJSON(ctx, "/users/signup", in, &out); err != nil {
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}
	return out.toState(), nil
}

func (c Client) SubmitSurvey(
	ctx context.Context, userID string, prefs map[string]bool,
) error {
	const op = "Client.SubmitSurvey"

	in := struct {
		UserID string          `json:"user_id"`
		Prefs  map[string]bool `json:"prefs"`
	}{userID, prefs}

	if err := c.postJSON(ctx, "/survey", in, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p userPayload) toState() domain.SessionState {
	return domain.SessionState{
		UserID:     p.UserID,
		RetailerID: p.RetailerID,
		Role:       p.Role,
	}
}
