package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReturnGateway struct {
	mock.Mock
}

func (m *MockReturnGateway) SubmitReturn(
	ctx context.Context, s port.ReturnSubmission,
) (domain.ReturnRequest, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.ReturnRequest), args.Error(1)
}

func (m *MockReturnGateway) UserReturns(
	ctx context.Context, userID string,
) ([]domain.ReturnRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ReturnRequest), args.Error(1)
}

func fullSubmission() port.ReturnSubmission {
	return port.ReturnSubmission{
		UserID:    "testUserID",
		OrderID:   "ORD-77",
		ProductID: "P1",
		Reason:    "damaged",
		Condition: "opened",
		ImageName: "proof.jpg",
		Image:     strings.NewReader("jpegbytes"),
	}
}

func TestReturnsFlow(t *testing.T) {
	t.Run("Submit", func(t *testing.T) {
		sub := fullSubmission()

		gateway := new(MockReturnGateway)
		gateway.On("SubmitReturn", t.Context(), sub).
			Return(domain.ReturnRequest{RequestID: "RET-1", Status: "Pending"}, nil)

		flow := service.NewReturnsFlow(gateway)

		req, err := flow.Submit(t.Context(), sub)
		require.NoError(t, err)
		assert.Equal(t, "RET-1", req.RequestID)
	})

	t.Run("IncompleteRejectedBeforeNetwork", func(t *testing.T) {
		gateway := new(MockReturnGateway)
		flow := service.NewReturnsFlow(gateway)

		incomplete := []port.ReturnSubmission{
			{},
			{UserID: "u", OrderID: "o", ProductID: "p", Reason: "r", Condition: "c"}, // no image
			{UserID: "u", OrderID: "o", ProductID: "p", Reason: "r",
				Image: strings.NewReader("x")}, // no condition
		}
		for _, sub := range incomplete {
			_, err := flow.Submit(t.Context(), sub)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrIncompleteReturn)
		}
		gateway.AssertNotCalled(t, "SubmitReturn", mock.Anything, mock.Anything)
	})

	t.Run("UserReturns", func(t *testing.T) {
		gateway := new(MockReturnGateway)
		gateway.On("UserReturns", t.Context(), "testUserID").
			Return([]domain.ReturnRequest{{RequestID: "RET-1"}}, nil)

		flow := service.NewReturnsFlow(gateway)

		rs, err := flow.UserReturns(t.Context(), "testUserID")
		require.NoError(t, err)
		assert.Len(t, rs, 1)
	})
}
