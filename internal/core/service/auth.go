package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// AuthFlow wraps the upstream auth surface and owns the persisted
// session state: explicit load/save/clear, no ambient globals.
type AuthFlow struct {
	gateway port.AuthGateway
	store   port.SessionStore
}

func NewAuthFlow(gateway port.AuthGateway, store port.SessionStore) AuthFlow {
	return AuthFlow{gateway, store}
}

func (f AuthFlow) Login(ctx context.Context, userID string) (domain.SessionState, error) {
	const op = "AuthFlow.Login"

	if err := ctx.Err(); err != nil {
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}

	state, err := f.gateway.Login(ctx, userID)
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := f.store.Save(state); err != nil {
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}
	return state, nil
}

func (f AuthFlow) Signup(ctx context.Context, name string) (domain.SessionState, error) {
	const op = "AuthFlow.Signup"

	if err := ctx.Err(); err != nil {
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}

	state, err := f.gateway.Signup(ctx, name)
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := f.store.Save(state); err != nil {
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}
	return state, nil
}

func (f AuthFlow) Logout() error {
	const op = "AuthFlow.Logout"

	if err := f.store.Clear(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (f AuthFlow) Current() (domain.SessionState, error) {
	const op = "AuthFlow.Current"

	state, err := f.store.Load()
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}
	return state, nil
}

func (f AuthFlow) SubmitSurvey(ctx context.Context, userID string, prefs map[string]bool) error {
	const op = "AuthFlow.SubmitSurvey"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := f.gateway.SubmitSurvey(ctx, userID, prefs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
